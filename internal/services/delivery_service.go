package services

import (
	"log"
	"time"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/tracking"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/eventlog"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/pkg/rabbitmq"
)

// defaultEstimatedDelivery is the ETA offered to customers when a rider
// accepts an order.
const defaultEstimatedDelivery = 30 * time.Minute

// DeliveryService is the authority boundary for the rider side of the
// lifecycle. Accepting an order is one atomic operation that creates the
// delivery and confirms the order, resolving the ambiguity of having
// separate rider-acceptance and order-confirmation paths.
type DeliveryService struct {
	deliveryRepo   repositories.DeliveryRepository
	orderRepo      repositories.OrderRepository
	userRepo       repositories.UserRepository
	restaurantRepo repositories.RestaurantRepository
	mqClient       *rabbitmq.Client
	audit          *eventlog.Logger
	hub            *tracking.Hub
}

// NewDeliveryService creates a new DeliveryService. mqClient, audit and hub
// may each be nil.
func NewDeliveryService(
	deliveryRepo repositories.DeliveryRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	restaurantRepo repositories.RestaurantRepository,
	mqClient *rabbitmq.Client,
	audit *eventlog.Logger,
	hub *tracking.Hub,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo:   deliveryRepo,
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		mqClient:       mqClient,
		audit:          audit,
		hub:            hub,
	}
}

// AcceptOrder assigns a pending order to a rider. It creates the delivery
// (status unassigned) and moves the order pending -> confirmed. The unique
// delivery-per-order constraint makes a second acceptance fail cleanly, and
// a rider re-accepting an order they already hold is an idempotent no-op.
func (s *DeliveryService) AcceptOrder(driver *models.User, orderID, deliveryNotes string) (*models.Delivery, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.deliveryRepo.GetByOrderID(orderID); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.DriverID == driver.ID {
			return existing, nil
		}
		return nil, ErrOrderAlreadyAssigned
	}

	if order.Status != models.OrderPending {
		return nil, ErrInvalidTransition
	}

	delivery := &models.Delivery{
		OrderID:               order.ID,
		DriverID:              driver.ID,
		DriverName:            driver.FullName,
		CustomerID:            order.CustomerID,
		DeliveryLocation:      order.DeliveryAddress,
		Status:                models.DeliveryUnassigned,
		EstimatedDeliveryTime: time.Now().Add(defaultEstimatedDelivery),
		DeliveryNotes:         deliveryNotes,
	}

	// Contact details and pickup address are denormalized onto the delivery
	// so the rider view needs no joins; lookups are best-effort.
	if customer, err := s.userRepo.GetByID(order.CustomerID); err == nil {
		delivery.CustomerName = customer.FullName
		delivery.CustomerPhone = customer.Phone
	}
	if restaurant, err := s.restaurantRepo.GetByID(order.RestaurantID); err == nil {
		delivery.PickupLocation = restaurant.Address
	}

	if err := s.deliveryRepo.Create(delivery); err != nil {
		// A concurrent rider won the unique order constraint.
		return nil, ErrOrderAlreadyAssigned
	}

	affected, err := s.orderRepo.UpdateStatusGuard(order.ID, models.OrderPending, models.OrderConfirmed)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// The order left pending between our read and the guard (most
		// likely cancelled). The delivery row stays; the rider's re-fetch
		// shows the order's real state.
		log.Printf("Warning: order %s left pending while rider %s accepted it", order.ID, driver.ID)
		return nil, ErrStatusConflict
	}

	s.emit("delivery.accepted", delivery, "", string(models.DeliveryUnassigned))
	return delivery, nil
}

// GetOngoingDeliveries retrieves a driver's active assignments.
func (s *DeliveryService) GetOngoingDeliveries(driverID string) ([]models.Delivery, error) {
	return s.deliveryRepo.GetOngoingByDriver(driverID)
}

// GetDeliveredDeliveries retrieves a driver's completed assignments.
func (s *DeliveryService) GetDeliveredDeliveries(driverID string) ([]models.Delivery, error) {
	return s.deliveryRepo.GetDeliveredByDriver(driverID)
}

// ChangeStatus moves a delivery along its strictly sequential chain:
// unassigned -> picked -> in_transit -> delivered. Only the assigned driver
// may move it. Re-requesting the current status is an idempotent no-op;
// skipping a stage is ErrInvalidTransition; losing a concurrent race is
// ErrStatusConflict. Reaching delivered also closes out the order when it
// is out for delivery.
func (s *DeliveryService) ChangeStatus(deliveryID string, target models.DeliveryStatus, driverID string) (*models.Delivery, error) {
	if !models.ValidDeliveryStatus(target) {
		return nil, ErrUnknownStatus
	}

	delivery, err := s.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, err
	}
	if delivery.DriverID != driverID {
		return nil, ErrNotOwner
	}

	if delivery.Status == target {
		return delivery, nil
	}

	if !models.CanDeliveryTransition(delivery.Status, target) {
		return nil, ErrInvalidTransition
	}

	affected, err := s.deliveryRepo.UpdateStatusGuard(deliveryID, delivery.Status, target)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	from := delivery.Status
	delivery.Status = target

	if target == models.DeliveryDelivered {
		if _, err := s.orderRepo.UpdateStatusGuard(delivery.OrderID, models.OrderOutForDelivery, models.OrderDelivered); err != nil {
			log.Printf("Warning: failed to close out order %s after delivery: %v", delivery.OrderID, err)
		}
	}

	s.emit("delivery.status_changed", delivery, string(from), string(target))
	return delivery, nil
}

func (s *DeliveryService) emit(name string, delivery *models.Delivery, from, to string) {
	event := map[string]interface{}{
		"event":    name,
		"orderId":  delivery.OrderID,
		"driverId": delivery.DriverID,
		"to":       to,
	}
	if from != "" {
		event["from"] = from
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish %s for order %s: %v", name, delivery.OrderID, err)
		}
	}
	if err := s.audit.Log(event); err != nil {
		log.Printf("Warning: failed to audit %s for order %s: %v", name, delivery.OrderID, err)
	}
	s.hub.Broadcast(delivery.OrderID, map[string]interface{}{
		"orderId": delivery.OrderID,
		"status":  string(delivery.Status),
	})
}
