package handlers

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the customer's cart and checkout.
// Every route is keyed by customer ID; callers may only touch their own
// cart unless they are an admin.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authenticated cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart/:customerId", h.requireCartAccess)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Put("/item/:itemId", h.HandleUpdateItemQuantity)
	cartRoutes.Delete("/item/:itemId", h.HandleRemoveItem)
	cartRoutes.Delete("/clear", h.HandleClearCart)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// requireCartAccess lets a customer at their own cart and admins at any.
func (h *CartHandler) requireCartAccess(c *fiber.Ctx) error {
	if c.Params("customerId") == middleware.CallerID(c) || callerHasRole(c, models.RoleAdmin) {
		return c.Next()
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "You do not have access to this cart",
	})
}

// HandleGetCart returns the cart, creating an empty one if needed.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.cartService.GetCart(c.Params("customerId"))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"cart":     cart,
		"subtotal": cart.Subtotal(),
	})
}

type addItemRequest struct {
	ItemID              string `json:"itemId" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions"`
}

// HandleAddItem puts a dish in the cart. Price and name come from the menu
// record, never from the request.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
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

	if err := h.cartService.AddItem(c.Params("customerId"), req.ItemID, req.Quantity, req.SpecialInstructions); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added to cart"})
}

// HandleUpdateItemQuantity changes the quantity of a cart line.
func (h *CartHandler) HandleUpdateItemQuantity(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity" validate:"required,gt=0"`
	}
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

	if err := h.cartService.UpdateItemQuantity(c.Params("customerId"), c.Params("itemId"), req.Quantity); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Cart updated"})
}

// HandleRemoveItem drops a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.cartService.RemoveItem(c.Params("customerId"), c.Params("itemId")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not remove item from cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.cartService.ClearCart(c.Params("customerId")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// HandleCheckout converts the cart into an order. The total is computed
// server side from the stored cart plus the delivery fee.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
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

	order, err := h.cartService.Checkout(c.Params("customerId"), req)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Checkout failed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
