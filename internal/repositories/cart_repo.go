package repositories

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
)

// CartRepository defines the interface for cart data access. A customer has
// at most one cart; GetByCustomer creates an empty one when none exists.
type CartRepository interface {
	GetByCustomer(customerID string) (*models.Cart, error)
	AddItem(customerID string, item models.CartItem) error
	UpdateItemQuantity(customerID, itemID string, quantity int) error
	RemoveItem(customerID, itemID string) error
	Clear(customerID string) error
}
