package models

import "gorm.io/gorm"

// Cart is a customer's transient item selection. One cart per customer;
// it is cleared on checkout or on an explicit clear.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID string     `json:"customerId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	gorm.Model `json:"-"`
}

// CartItem is one menu item line inside a cart.
type CartItem struct {
	ID                  uint    `json:"-" gorm:"primaryKey"`
	CartID              string  `json:"-" gorm:"index;type:varchar(36)"`
	ItemID              string  `json:"itemId" gorm:"type:varchar(36)" validate:"required"`
	Name                string  `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Price               float64 `json:"price" validate:"required,gt=0"`
	Quantity            int     `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string  `json:"specialInstructions,omitempty" gorm:"type:text"`
}

// Subtotal is the sum of price times quantity over all cart lines.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
