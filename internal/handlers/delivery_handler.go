package handlers

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DeliveryHandler handles HTTP requests for rider job acceptance and
// delivery progress updates.
type DeliveryHandler struct {
	deliveryService *services.DeliveryService
	userService     *services.UserService
	validate        *validator.Validate
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService *services.DeliveryService, userService *services.UserService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
		userService:     userService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the rider-only delivery routes.
func (h *DeliveryHandler) RegisterRoutes(router fiber.Router, driverOnly fiber.Handler) {
	deliveryRoutes := router.Group("/deliveries", driverOnly)
	deliveryRoutes.Post("/", h.HandleAcceptOrder)
	deliveryRoutes.Patch("/:id/status", h.HandleChangeStatus)
	deliveryRoutes.Get("/:driverId/by-driver-ongoing", h.HandleGetOngoing)
	deliveryRoutes.Get("/:driverId/by-driver-delivered", h.HandleGetDelivered)
}

type acceptOrderRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	DeliveryNotes string `json:"deliveryNotes"`
}

// HandleAcceptOrder assigns the calling rider to a pending order. The
// order is confirmed in the same operation; a second rider gets a
// conflict, the same rider gets the existing delivery back.
func (h *DeliveryHandler) HandleAcceptOrder(c *fiber.Ctx) error {
	var req acceptOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	driver, err := h.userService.GetUserByID(middleware.CallerID(c))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not load driver profile",
			"error":   err.Error(),
		})
	}

	delivery, err := h.deliveryService.AcceptOrder(driver, req.OrderID, req.DeliveryNotes)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not accept order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(delivery)
}

// HandleChangeStatus advances the rider's own delivery one step.
func (h *DeliveryHandler) HandleChangeStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	target := models.DeliveryStatus(req.Status)
	if !models.ValidDeliveryStatus(target) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown delivery status",
			"error":   services.ErrUnknownStatus.Error(),
		})
	}

	delivery, err := h.deliveryService.ChangeStatus(c.Params("id"), target, middleware.CallerID(c))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update delivery status",
			"error":   err.Error(),
		})
	}
	return c.JSON(delivery)
}

// HandleGetOngoing lists the rider's active deliveries.
func (h *DeliveryHandler) HandleGetOngoing(c *fiber.Ctx) error {
	driverID := c.Params("driverId")
	if driverID != middleware.CallerID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only view your own deliveries",
		})
	}

	deliveries, err := h.deliveryService.GetOngoingDeliveries(driverID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve deliveries",
			"error":   err.Error(),
		})
	}
	return c.JSON(deliveries)
}

// HandleGetDelivered lists the rider's completed deliveries.
func (h *DeliveryHandler) HandleGetDelivered(c *fiber.Ctx) error {
	driverID := c.Params("driverId")
	if driverID != middleware.CallerID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You can only view your own deliveries",
		})
	}

	deliveries, err := h.deliveryService.GetDeliveredDeliveries(driverID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve deliveries",
			"error":   err.Error(),
		})
	}
	return c.JSON(deliveries)
}
