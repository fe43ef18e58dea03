package repositories

import (
	"fmt"
	"time"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDeliveryRepository is a GORM implementation of DeliveryRepository.
type GORMDeliveryRepository struct {
	db *gorm.DB
}

// NewGORMDeliveryRepository creates a new instance of GORMDeliveryRepository.
func NewGORMDeliveryRepository(db *gorm.DB) *GORMDeliveryRepository {
	return &GORMDeliveryRepository{
		db: db,
	}
}

// Create creates a new delivery. The unique index on order_id makes a second
// acceptance of the same order fail here rather than silently double-assign.
func (r *GORMDeliveryRepository) Create(delivery *models.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}
	if err := r.db.Create(delivery).Error; err != nil {
		return fmt.Errorf("failed to create delivery: %w", err)
	}
	return nil
}

// GetByID retrieves a single delivery by its ID.
func (r *GORMDeliveryRepository) GetByID(id string) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.First(&delivery, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("delivery with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get delivery by ID %s: %w", id, err)
	}
	return &delivery, nil
}

// GetByOrderID retrieves the delivery for an order, or nil when the order
// has not been accepted by any rider yet.
func (r *GORMDeliveryRepository) GetByOrderID(orderID string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.First(&delivery, "order_id = ?", orderID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery for order %s: %w", orderID, err)
	}
	return &delivery, nil
}

// GetOngoingByDriver retrieves a driver's not-yet-delivered assignments.
func (r *GORMDeliveryRepository) GetOngoingByDriver(driverID string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.Order("created_at desc").
		Find(&deliveries, "driver_id = ? AND status <> ?", driverID, models.DeliveryDelivered).Error; err != nil {
		return nil, fmt.Errorf("failed to get ongoing deliveries for driver %s: %w", driverID, err)
	}
	return deliveries, nil
}

// GetDeliveredByDriver retrieves a driver's completed assignments.
func (r *GORMDeliveryRepository) GetDeliveredByDriver(driverID string) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	if err := r.db.Order("created_at desc").
		Find(&deliveries, "driver_id = ? AND status = ?", driverID, models.DeliveryDelivered).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivered deliveries for driver %s: %w", driverID, err)
	}
	return deliveries, nil
}

// UpdateStatusGuard moves a delivery from one status to another only when it
// is still in the expected status. Reaching delivered also stamps the
// actual delivery time.
func (r *GORMDeliveryRepository) UpdateStatusGuard(id string, from, to models.DeliveryStatus) (int64, error) {
	updates := map[string]interface{}{"status": to}
	if to == models.DeliveryDelivered {
		now := time.Now()
		updates["actual_delivery_time"] = &now
	}
	res := r.db.Model(&models.Delivery{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update status for delivery %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
