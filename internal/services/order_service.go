package services

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/tracking"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/eventlog"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/rabbitmq"
)

// PresentedOrder is an order decorated with the single customer-facing
// status resolved from the order and its delivery (when one exists).
type PresentedOrder struct {
	models.Order
	PresentedStatus string `json:"presentedStatus"`
}

// OrderService is the authority boundary for the order side of the
// lifecycle: every status change goes through ChangeStatus, which enforces
// the transition table with a guarded conditional write.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	deliveryRepo repositories.DeliveryRepository
	mqClient     *rabbitmq.Client
	audit        *eventlog.Logger
	hub          *tracking.Hub
}

// NewOrderService creates a new OrderService. mqClient, audit and hub may
// each be nil; side effects are best-effort everywhere.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	deliveryRepo repositories.DeliveryRepository,
	mqClient *rabbitmq.Client,
	audit *eventlog.Logger,
	hub *tracking.Hub,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		mqClient:     mqClient,
		audit:        audit,
		hub:          hub,
	}
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetCustomerOrders retrieves a customer's order history.
func (s *OrderService) GetCustomerOrders(customerID string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomer(customerID)
}

// GetRestaurantOrders retrieves the orders of one restaurant for the owner
// dashboard.
func (s *OrderService) GetRestaurantOrders(restaurantID string) ([]models.Order, error) {
	return s.orderRepo.GetByRestaurant(restaurantID)
}

// GetOrdersAwaitingPickup retrieves the pending orders no rider has
// accepted yet, for the rider's available-orders board.
func (s *OrderService) GetOrdersAwaitingPickup() ([]models.Order, error) {
	return s.orderRepo.GetByStatus(models.OrderPending)
}

// GetAllPresented retrieves every order with its presented status resolved,
// for the admin order console.
func (s *OrderService) GetAllPresented() ([]PresentedOrder, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	presented := make([]PresentedOrder, 0, len(orders))
	for i := range orders {
		p, err := s.Present(&orders[i])
		if err != nil {
			return nil, err
		}
		presented = append(presented, *p)
	}
	return presented, nil
}

// Present resolves the single customer-facing status for one order.
func (s *OrderService) Present(order *models.Order) (*PresentedOrder, error) {
	delivery, err := s.deliveryRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	return &PresentedOrder{
		Order:           *order,
		PresentedStatus: models.PresentedStatus(order, delivery),
	}, nil
}

// ChangeStatus moves an order to the target status.
//
// The rules, in order:
//  1. an unknown target is rejected outright;
//  2. requesting the status the order already has is an idempotent no-op
//     that returns success;
//  3. a move outside the transition table is ErrInvalidTransition;
//  4. a legal move is applied with a conditional write — if another actor
//     moved the order first, nothing is written and ErrStatusConflict tells
//     the caller to re-fetch.
//
// Every applied transition emits one queue event, one audit record, and one
// tracking push; their failures never undo the transition.
func (s *OrderService) ChangeStatus(id string, target models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(target) {
		return nil, ErrUnknownStatus
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		return order, nil
	}

	if !models.CanOrderTransition(order.Status, target) {
		return nil, ErrInvalidTransition
	}

	affected, err := s.orderRepo.UpdateStatusGuard(id, order.Status, target)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	from := order.Status
	order.Status = target
	s.emitTransition(order, from, target)
	return order, nil
}

func (s *OrderService) emitTransition(order *models.Order, from, to models.OrderStatus) {
	event := map[string]interface{}{
		"event":   "order.status_changed",
		"orderId": order.OrderID,
		"id":      order.ID,
		"from":    string(from),
		"to":      string(to),
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish status change for order %s: %v", order.ID, err)
		}
	}
	if err := s.audit.Log(event); err != nil {
		log.Printf("Warning: failed to audit status change for order %s: %v", order.ID, err)
	}
	if p, err := s.Present(order); err == nil {
		s.hub.Broadcast(order.ID, map[string]interface{}{
			"orderId": order.ID,
			"status":  p.PresentedStatus,
		})
	}
}
