package repositories

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// UpdateStatusGuard is the authority-boundary enforcement for the order
// lifecycle: the status write is conditional on the expected current status
// and reports how many rows it touched, so a stale or concurrent caller
// changes nothing. Orders are never deleted.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByCustomer(customerID string) ([]models.Order, error)
	GetByRestaurant(restaurantID string) ([]models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatusGuard(id string, from, to models.OrderStatus) (int64, error)
}
