package repositories

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
)

// DeliveryRepository defines the interface for delivery data access.
// UpdateStatusGuard carries the same conditional-write contract as the
// order repository; a delivery that has reached delivered is immutable.
type DeliveryRepository interface {
	Create(delivery *models.Delivery) error
	GetByID(id string) (*models.Delivery, error)
	GetByOrderID(orderID string) (*models.Delivery, error)
	GetOngoingByDriver(driverID string) ([]models.Delivery, error)
	GetDeliveredByDriver(driverID string) ([]models.Delivery, error)
	UpdateStatusGuard(id string, from, to models.DeliveryStatus) (int64, error)
}
