package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/eventlog"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/rabbitmq"

	"github.com/google/uuid"
)

// CardDetails is the demo payment card captured at checkout. No real
// gateway sits behind this; the charge succeeds when the card is plausibly
// formed and not expired.
type CardDetails struct {
	Number   string `json:"number" validate:"required,min=12,max=19"`
	CVC      string `json:"cvc" validate:"required,min=3,max=4"`
	ExpMonth int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear  int    `json:"exp_year" validate:"required"`
}

// Charge is the payment section of a checkout request.
type Charge struct {
	Amount float64     `json:"amount"`
	Card   CardDetails `json:"card" validate:"required"`
}

// CheckoutRequest is the body of POST /cart/:customerId/checkout. The
// server-side cart is the source of truth for what is being bought; any
// item lines the client sends are ignored.
type CheckoutRequest struct {
	DeliveryAddress models.Address `json:"deliveryAddress" validate:"required"`
	Charge          Charge         `json:"charge" validate:"required"`
}

// CartService handles business logic for carts and checkout.
type CartService struct {
	cartRepo       repositories.CartRepository
	menuRepo       repositories.MenuRepository
	restaurantRepo repositories.RestaurantRepository
	orderRepo      repositories.OrderRepository
	mqClient       *rabbitmq.Client
	audit          *eventlog.Logger
	deliveryFee    float64 // flat fallback fee when the restaurant has none
}

// NewCartService creates a new CartService. mqClient and audit may be nil.
func NewCartService(
	cartRepo repositories.CartRepository,
	menuRepo repositories.MenuRepository,
	restaurantRepo repositories.RestaurantRepository,
	orderRepo repositories.OrderRepository,
	mqClient *rabbitmq.Client,
	audit *eventlog.Logger,
	deliveryFee float64,
) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
		orderRepo:      orderRepo,
		mqClient:       mqClient,
		audit:          audit,
		deliveryFee:    deliveryFee,
	}
}

// GetCart retrieves a customer's cart.
func (s *CartService) GetCart(customerID string) (*models.Cart, error) {
	return s.cartRepo.GetByCustomer(customerID)
}

// AddItem adds a menu item to the cart. Name and price come from the menu
// record, not from the client, so a tampered request cannot change what the
// customer pays.
func (s *CartService) AddItem(customerID, itemID string, quantity int, specialInstructions string) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	menuItem, err := s.menuRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if !menuItem.IsAvailable {
		return fmt.Errorf("menu item %s is currently unavailable", menuItem.Name)
	}

	return s.cartRepo.AddItem(customerID, models.CartItem{
		ItemID:              menuItem.ID,
		Name:                menuItem.Name,
		Price:               menuItem.Price,
		Quantity:            quantity,
		SpecialInstructions: specialInstructions,
	})
}

// UpdateItemQuantity sets the quantity of a cart line.
func (s *CartService) UpdateItemQuantity(customerID, itemID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	return s.cartRepo.UpdateItemQuantity(customerID, itemID, quantity)
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(customerID, itemID string) error {
	return s.cartRepo.RemoveItem(customerID, itemID)
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(customerID string) error {
	return s.cartRepo.Clear(customerID)
}

// Checkout converts a non-empty cart into a pending order. The total is
// fixed here as subtotal plus the delivery fee and never recomputed. On
// success the cart is cleared and an order.created event is published.
func (s *CartService) Checkout(customerID string, req CheckoutRequest) (*models.Order, error) {
	cart, err := s.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	restaurantID, err := s.cartRestaurant(cart)
	if err != nil {
		return nil, err
	}

	fee := s.deliveryFee
	if restaurant, err := s.restaurantRepo.GetByID(restaurantID); err == nil && restaurant.DeliveryFee > 0 {
		fee = restaurant.DeliveryFee
	}

	if err := validateCard(req.Charge.Card); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		Items:           items,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryFee:     fee,
		TotalAmount:     cart.Subtotal() + fee,
		PaymentStatus:   models.PaymentPaid,
		Status:          models.OrderPending,
	}
	order.OrderID = "QB-" + strings.ToUpper(order.ID[:8])

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order at checkout: %w", err)
	}

	if err := s.cartRepo.Clear(customerID); err != nil {
		// The order exists; a stale cart is recoverable by the client's
		// re-fetch, so only log.
		log.Printf("Warning: failed to clear cart after checkout for customer %s: %v", customerID, err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// cartRestaurant resolves the single restaurant a cart's items belong to.
func (s *CartService) cartRestaurant(cart *models.Cart) (string, error) {
	restaurantID := ""
	for _, line := range cart.Items {
		menuItem, err := s.menuRepo.GetByID(line.ItemID)
		if err != nil {
			return "", fmt.Errorf("cart references unknown menu item %s: %w", line.ItemID, err)
		}
		if restaurantID == "" {
			restaurantID = menuItem.RestaurantID
			continue
		}
		if menuItem.RestaurantID != restaurantID {
			return "", ErrMixedRestaurants
		}
	}
	return restaurantID, nil
}

func validateCard(card CardDetails) error {
	now := time.Now()
	if card.ExpYear < now.Year() || (card.ExpYear == now.Year() && time.Month(card.ExpMonth) < now.Month()) {
		return fmt.Errorf("card has expired")
	}
	return nil
}

func (s *CartService) publishOrderCreated(order *models.Order) {
	event := map[string]interface{}{
		"event":    "order.created",
		"orderId":  order.OrderID,
		"id":       order.ID,
		"customer": order.CustomerID,
		"total":    order.TotalAmount,
		"status":   string(order.Status),
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}
	if err := s.audit.Log(event); err != nil {
		log.Printf("Warning: failed to audit order created event for order %s: %v", order.ID, err)
	}
}
