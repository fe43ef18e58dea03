package handlers

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for menu browsing and the owner's
// dish management.
type MenuHandler struct {
	menuService *services.MenuService
	validate    *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the customer-facing browse routes.
func (h *MenuHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/menu", h.HandleGetAllMenuItems)
	router.Get("/menu/restaurant/:restaurantId", h.HandleGetRestaurantMenu)
	router.Get("/menu/:id", h.HandleGetMenuItemByID)
}

// RegisterRoutes registers the owner dish-management routes.
func (h *MenuHandler) RegisterRoutes(router fiber.Router, ownerOnly fiber.Handler) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Post("/", ownerOnly, h.HandleCreateMenuItem)
	menuRoutes.Put("/:id/availability", ownerOnly, h.HandleSetAvailability)
	menuRoutes.Put("/:id", ownerOnly, h.HandleUpdateMenuItem)
	menuRoutes.Delete("/:id", ownerOnly, h.HandleDeleteMenuItem)
}

// HandleGetAllMenuItems lists every dish across restaurants.
func (h *MenuHandler) HandleGetAllMenuItems(c *fiber.Ctx) error {
	items, err := h.menuService.GetAllMenuItems()
	if err != nil {
		log.Printf("Error getting menu items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve menu items",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"total": len(items)},
	})
}

// HandleGetRestaurantMenu lists the dishes of one restaurant.
func (h *MenuHandler) HandleGetRestaurantMenu(c *fiber.Ctx) error {
	items, err := h.menuService.GetRestaurantMenu(c.Params("restaurantId"))
	if err != nil {
		log.Printf("Error getting menu: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve menu",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"total": len(items)},
	})
}

// HandleGetMenuItemByID retrieves a single dish.
func (h *MenuHandler) HandleGetMenuItemByID(c *fiber.Ctx) error {
	item, err := h.menuService.GetMenuItemByID(c.Params("id"))
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve menu item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleCreateMenuItem adds a dish to a restaurant the caller owns.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.menuService.CreateMenuItem(&item, middleware.CallerID(c)); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not create menu item",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateMenuItem edits a dish on a restaurant the caller owns.
func (h *MenuHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")

	if err := h.menuService.UpdateMenuItem(&item, middleware.CallerID(c)); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update menu item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleDeleteMenuItem removes a dish.
func (h *MenuHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	if err := h.menuService.DeleteMenuItem(c.Params("id"), middleware.CallerID(c)); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete menu item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Menu item deleted"})
}

// HandleSetAvailability toggles whether a dish can be ordered.
func (h *MenuHandler) HandleSetAvailability(c *fiber.Ctx) error {
	var req struct {
		Available bool `json:"available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.menuService.SetAvailability(c.Params("id"), middleware.CallerID(c), req.Available); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update availability",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Availability updated"})
}
