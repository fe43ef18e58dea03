package handlers

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order history and status
// transitions. Status changes are validated in the service layer; the
// handler only decides which targets each role may request.
type OrderHandler struct {
	orderService      *services.OrderService
	restaurantService *services.RestaurantService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, restaurantService *services.RestaurantService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers the authenticated order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, driverOnly, adminOnly fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/out-for-delivery", driverOnly, h.HandleGetOrdersAwaitingPickup)
	orderRoutes.Get("/restaurant/:restaurantId", h.HandleGetRestaurantOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id/status", h.HandleChangeStatus)

	router.Get("/admin/orders", adminOnly, h.HandleGetAllOrders)
}

// Targets a restaurant owner may request for orders of their restaurant.
// Confirmation is reserved for rider acceptance and admins.
var ownerAllowedTargets = map[models.OrderStatus]bool{
	models.OrderPreparing:      true,
	models.OrderOutForDelivery: true,
	models.OrderCancelled:      true,
}

// HandleGetMyOrders lists the caller's orders with their presented status.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetCustomerOrders(middleware.CallerID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}

	presented := make([]services.PresentedOrder, 0, len(orders))
	for i := range orders {
		p, err := h.orderService.Present(&orders[i])
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve orders",
				"error":   err.Error(),
			})
		}
		presented = append(presented, *p)
	}
	return c.JSON(presented)
}

// HandleGetOrdersAwaitingPickup lists pending orders with no rider yet,
// the board a driver picks jobs from.
func (h *OrderHandler) HandleGetOrdersAwaitingPickup(c *fiber.Ctx) error {
	orders, err := h.orderService.GetOrdersAwaitingPickup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetRestaurantOrders lists the orders of a restaurant the caller
// owns. Admins may list any restaurant.
func (h *OrderHandler) HandleGetRestaurantOrders(c *fiber.Ctx) error {
	restaurantID := c.Params("restaurantId")
	if !callerHasRole(c, models.RoleAdmin) {
		owned, err := h.restaurantService.IsOwnedBy(restaurantID, middleware.CallerID(c))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"message": "Could not retrieve restaurant",
				"error":   err.Error(),
			})
		}
		if !owned {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not own this restaurant",
			})
		}
	}

	orders, err := h.orderService.GetRestaurantOrders(restaurantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one order with its presented status. Only
// the ordering customer, the restaurant owner, or an admin may view it.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrderByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}

	if !h.mayViewOrder(c, order) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have access to this order",
		})
	}

	presented, err := h.orderService.Present(order)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(presented)
}

// HandleGetAllOrders lists every order for the admin console.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllPresented()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": orders,
		"meta": fiber.Map{"total": len(orders)},
	})
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// HandleChangeStatus applies a direct status transition. Restaurant
// owners may move their own orders to preparing, out_for_delivery or
// cancelled; admins may request any transition. The legality of the
// transition itself is decided by the service.
func (h *OrderHandler) HandleChangeStatus(c *fiber.Ctx) error {
	var req changeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	target := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(target) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown order status",
			"error":   services.ErrUnknownStatus.Error(),
		})
	}

	order, err := h.orderService.GetOrderByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}

	if !callerHasRole(c, models.RoleAdmin) {
		if !callerHasRole(c, models.RoleRestaurantOwner) || !ownerAllowedTargets[target] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You are not allowed to request this transition",
			})
		}
		owned, err := h.restaurantService.IsOwnedBy(order.RestaurantID, middleware.CallerID(c))
		if err != nil {
			return c.Status(statusForError(err)).JSON(fiber.Map{
				"message": "Could not verify restaurant ownership",
				"error":   err.Error(),
			})
		}
		if !owned {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not own the restaurant for this order",
			})
		}
	}

	updated, err := h.orderService.ChangeStatus(order.ID, target)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	presented, perr := h.orderService.Present(updated)
	if perr != nil {
		return c.JSON(updated)
	}
	return c.JSON(presented)
}

func (h *OrderHandler) mayViewOrder(c *fiber.Ctx, order *models.Order) bool {
	if order.CustomerID == middleware.CallerID(c) {
		return true
	}
	if callerHasRole(c, models.RoleAdmin) {
		return true
	}
	if callerHasRole(c, models.RoleRestaurantOwner) {
		owned, err := h.restaurantService.IsOwnedBy(order.RestaurantID, middleware.CallerID(c))
		return err == nil && owned
	}
	return false
}

func callerHasRole(c *fiber.Ctx, role models.Role) bool {
	roles, _ := c.Locals("roles").(string)
	return (&models.User{Roles: roles}).HasRole(role)
}
