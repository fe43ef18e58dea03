package repositories

import (
	"fmt"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByCustomer retrieves a customer's cart with its items, creating an
// empty cart when the customer does not have one yet.
func (r *GORMCartRepository) GetByCustomer(customerID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items").First(&cart, "customer_id = ?", customerID).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{ID: uuid.New().String(), CustomerID: customerID}
		if createErr := r.db.Create(&cart).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create cart for customer %s: %w", customerID, createErr)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for customer %s: %w", customerID, err)
	}
	return &cart, nil
}

// AddItem adds an item line to the customer's cart. Adding an item that is
// already in the cart increments its quantity instead of duplicating the line.
func (r *GORMCartRepository) AddItem(customerID string, item models.CartItem) error {
	cart, err := r.GetByCustomer(customerID)
	if err != nil {
		return err
	}

	var existing models.CartItem
	err = r.db.First(&existing, "cart_id = ? AND item_id = ?", cart.ID, item.ItemID).Error
	if err == nil {
		existing.Quantity += item.Quantity
		if saveErr := r.db.Save(&existing).Error; saveErr != nil {
			return fmt.Errorf("failed to increment cart item %s: %w", item.ItemID, saveErr)
		}
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up cart item %s: %w", item.ItemID, err)
	}

	item.CartID = cart.ID
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add item %s to cart: %w", item.ItemID, err)
	}
	return nil
}

// UpdateItemQuantity sets the quantity on a cart line.
func (r *GORMCartRepository) UpdateItemQuantity(customerID, itemID string, quantity int) error {
	cart, err := r.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	res := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND item_id = ?", cart.ID, itemID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update quantity for cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s not found for customer %s", itemID, customerID)
	}
	return nil
}

// RemoveItem deletes one line from the customer's cart.
func (r *GORMCartRepository) RemoveItem(customerID, itemID string) error {
	cart, err := r.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	res := r.db.Delete(&models.CartItem{}, "cart_id = ? AND item_id = ?", cart.ID, itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s not found for customer %s", itemID, customerID)
	}
	return nil
}

// Clear removes every line from the customer's cart.
func (r *GORMCartRepository) Clear(customerID string) error {
	cart, err := r.GetByCustomer(customerID)
	if err != nil {
		return err
	}
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for customer %s: %w", customerID, err)
	}
	return nil
}
