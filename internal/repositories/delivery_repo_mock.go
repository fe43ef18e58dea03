package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"

	"github.com/google/uuid"
)

// MockDeliveryRepository is an in-memory implementation of DeliveryRepository.
type MockDeliveryRepository struct {
	deliveries map[string]models.Delivery
	byOrder    map[string]string // orderID -> delivery ID
	mu         sync.RWMutex
}

// NewMockDeliveryRepository creates a new instance of MockDeliveryRepository.
func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{
		deliveries: make(map[string]models.Delivery),
		byOrder:    make(map[string]string),
	}
}

// Create adds a new delivery, enforcing one delivery per order like the
// unique index in the GORM implementation.
func (r *MockDeliveryRepository) Create(delivery *models.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byOrder[delivery.OrderID]; exists {
		return fmt.Errorf("failed to create delivery: order %s already has a delivery", delivery.OrderID)
	}
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}
	delivery.CreatedAt = time.Now()
	delivery.UpdatedAt = time.Now()
	r.deliveries[delivery.ID] = *delivery
	r.byOrder[delivery.OrderID] = delivery.ID
	return nil
}

// GetByID returns a delivery by its ID.
func (r *MockDeliveryRepository) GetByID(id string) (*models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivery, ok := r.deliveries[id]
	if !ok {
		return nil, fmt.Errorf("delivery with ID %s not found", id)
	}
	return &delivery, nil
}

// GetByOrderID returns the delivery for an order, or nil when none exists.
func (r *MockDeliveryRepository) GetByOrderID(orderID string) (*models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	delivery := r.deliveries[id]
	return &delivery, nil
}

// GetOngoingByDriver returns a driver's not-yet-delivered assignments.
func (r *MockDeliveryRepository) GetOngoingByDriver(driverID string) ([]models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var deliveries []models.Delivery
	for _, d := range r.deliveries {
		if d.DriverID == driverID && d.Status != models.DeliveryDelivered {
			deliveries = append(deliveries, d)
		}
	}
	return deliveries, nil
}

// GetDeliveredByDriver returns a driver's completed assignments.
func (r *MockDeliveryRepository) GetDeliveredByDriver(driverID string) ([]models.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var deliveries []models.Delivery
	for _, d := range r.deliveries {
		if d.DriverID == driverID && d.Status == models.DeliveryDelivered {
			deliveries = append(deliveries, d)
		}
	}
	return deliveries, nil
}

// UpdateStatusGuard updates the status of a delivery only when it is still
// in the expected status.
func (r *MockDeliveryRepository) UpdateStatusGuard(id string, from, to models.DeliveryStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivery, ok := r.deliveries[id]
	if !ok {
		return 0, fmt.Errorf("delivery with ID %s not found for status update", id)
	}
	if delivery.Status != from {
		return 0, nil
	}
	delivery.Status = to
	if to == models.DeliveryDelivered {
		now := time.Now()
		delivery.ActualDeliveryTime = &now
	}
	delivery.UpdatedAt = time.Now()
	r.deliveries[id] = delivery
	return 1, nil
}
