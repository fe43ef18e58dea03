package handlers

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RestaurantHandler handles HTTP requests for restaurant listings, the
// admin approval gate, and the owner dashboard.
type RestaurantHandler struct {
	restaurantService *services.RestaurantService
	orderService      *services.OrderService
	validate          *validator.Validate
}

// NewRestaurantHandler creates a new RestaurantHandler.
func NewRestaurantHandler(restaurantService *services.RestaurantService, orderService *services.OrderService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		orderService:      orderService,
		validate:          validator.New(),
	}
}

// RegisterPublicRoutes registers the customer-facing browse routes.
func (h *RestaurantHandler) RegisterPublicRoutes(router fiber.Router) {
	restaurantRoutes := router.Group("/restaurants")
	restaurantRoutes.Get("/", h.HandleGetVisibleRestaurants)
}

// RegisterRoutes registers the authenticated restaurant routes. ownerOnly
// and adminOnly gate the owner and admin operations respectively.
func (h *RestaurantHandler) RegisterRoutes(router fiber.Router, ownerOnly, adminOnly fiber.Handler) {
	restaurantRoutes := router.Group("/restaurants")
	restaurantRoutes.Post("/", ownerOnly, h.HandleCreateRestaurant)
	restaurantRoutes.Get("/pending", adminOnly, h.HandleGetPendingRestaurants)
	restaurantRoutes.Get("/owner/:id/orders", ownerOnly, h.HandleGetOwnerOrders)
	restaurantRoutes.Get("/:id", h.HandleGetRestaurantByID)
	restaurantRoutes.Put("/:id", ownerOnly, h.HandleUpdateRestaurant)
	restaurantRoutes.Delete("/:id", adminOnly, h.HandleDeleteRestaurant)
	restaurantRoutes.Post("/:id/approve", adminOnly, h.HandleApprove)
	restaurantRoutes.Post("/:id/reject", adminOnly, h.HandleReject)
	restaurantRoutes.Patch("/:id/temporary-closure", ownerOnly, h.HandleTemporaryClosure)
}

// HandleGetVisibleRestaurants lists the restaurants open for browsing,
// paginated with page/limit query parameters.
func (h *RestaurantHandler) HandleGetVisibleRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.restaurantService.GetVisibleRestaurants()
	if err != nil {
		log.Printf("Error getting visible restaurants: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve restaurants",
			"error":   err.Error(),
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	total := len(restaurants)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return c.JSON(fiber.Map{
		"data": restaurants[start:end],
		"meta": fiber.Map{"total": total, "page": page, "limit": limit},
	})
}

// HandleGetRestaurantByID retrieves a single restaurant.
func (h *RestaurantHandler) HandleGetRestaurantByID(c *fiber.Ctx) error {
	restaurant, err := h.restaurantService.GetRestaurantByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve restaurant",
			"error":   err.Error(),
		})
	}
	return c.JSON(restaurant)
}

// HandleCreateRestaurant registers a restaurant for the calling owner.
func (h *RestaurantHandler) HandleCreateRestaurant(c *fiber.Ctx) error {
	var restaurant models.Restaurant
	if err := c.BodyParser(&restaurant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	restaurant.OwnerID = middleware.CallerID(c)

	if err := h.validate.Struct(restaurant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.restaurantService.CreateRestaurant(&restaurant); err != nil {
		log.Printf("Error creating restaurant: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create restaurant",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(restaurant)
}

// HandleGetPendingRestaurants lists restaurants awaiting approval.
func (h *RestaurantHandler) HandleGetPendingRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.restaurantService.GetPendingRestaurants()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve pending restaurants",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": restaurants,
		"meta": fiber.Map{"total": len(restaurants)},
	})
}

// HandleGetOwnerOrders lists the orders across every restaurant the owner
// holds, for the owner dashboard.
func (h *RestaurantHandler) HandleGetOwnerOrders(c *fiber.Ctx) error {
	ownerID := c.Params("id")
	if ownerID != middleware.CallerID(c) && !callerHasRole(c, models.RoleAdmin) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only view your own restaurants' orders",
		})
	}

	restaurants, err := h.restaurantService.GetOwnerRestaurants(ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve restaurants",
			"error":   err.Error(),
		})
	}

	orders := make([]models.Order, 0)
	for _, restaurant := range restaurants {
		restaurantOrders, err := h.orderService.GetRestaurantOrders(restaurant.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve orders",
				"error":   err.Error(),
			})
		}
		orders = append(orders, restaurantOrders...)
	}
	return c.JSON(orders)
}

// HandleUpdateRestaurant applies owner edits to a restaurant.
func (h *RestaurantHandler) HandleUpdateRestaurant(c *fiber.Ctx) error {
	var updated models.Restaurant
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Params("id"), middleware.CallerID(c), &updated)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update restaurant",
			"error":   err.Error(),
		})
	}
	return c.JSON(restaurant)
}

// HandleDeleteRestaurant removes a restaurant listing.
func (h *RestaurantHandler) HandleDeleteRestaurant(c *fiber.Ctx) error {
	if err := h.restaurantService.DeleteRestaurant(c.Params("id")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete restaurant",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Restaurant deleted"})
}

type approvalRequest struct {
	Notes string `json:"notes"`
}

// HandleApprove moves a restaurant through the approval gate.
func (h *RestaurantHandler) HandleApprove(c *fiber.Ctx) error {
	var req approvalRequest
	_ = c.BodyParser(&req) // notes are optional

	restaurant, err := h.restaurantService.Approve(c.Params("id"), req.Notes)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not approve restaurant",
			"error":   err.Error(),
		})
	}
	return c.JSON(restaurant)
}

// HandleReject marks a restaurant rejected.
func (h *RestaurantHandler) HandleReject(c *fiber.Ctx) error {
	var req approvalRequest
	_ = c.BodyParser(&req)

	restaurant, err := h.restaurantService.Reject(c.Params("id"), req.Notes)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not reject restaurant",
			"error":   err.Error(),
		})
	}
	return c.JSON(restaurant)
}

// HandleTemporaryClosure toggles the owner's temporary-closure flag.
func (h *RestaurantHandler) HandleTemporaryClosure(c *fiber.Ctx) error {
	var req struct {
		Closed bool `json:"closed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	restaurant, err := h.restaurantService.SetTemporaryClosure(c.Params("id"), middleware.CallerID(c), req.Closed)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update closure state",
			"error":   err.Error(),
		})
	}
	return c.JSON(restaurant)
}
