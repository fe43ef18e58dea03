package models

import "time"

// PaymentStatus tracks whether the demo charge for an order went through.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// Address is the structured delivery address captured at checkout.
type Address struct {
	HouseNumber string `json:"houseNumber" validate:"required"`
	Lane1       string `json:"lane1" validate:"required"`
	Lane2       string `json:"lane2,omitempty"`
	City        string `json:"city" validate:"required"`
	District    string `json:"district" validate:"required"`
}

// OrderItem is one menu item line inside a placed order. Price is the unit
// price captured at order time; it never changes afterwards.
type OrderItem struct {
	ID      uint    `json:"-" gorm:"primaryKey"`
	OrderID string  `json:"-" gorm:"index;type:varchar(36)"`
	ItemID  string  `json:"itemId" gorm:"type:varchar(36)" validate:"required"`
	Name    string  `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Price   float64 `json:"price" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// Order represents a customer's placed purchase. TotalAmount is fixed at
// creation (subtotal plus delivery fee) and never recomputed. Orders are
// never deleted, only moved to a terminal status.
type Order struct {
	ID              string        `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string        `json:"orderId" gorm:"uniqueIndex;type:varchar(20)"`
	CustomerID      string        `json:"customerId" gorm:"index;type:varchar(36)" validate:"required"`
	RestaurantID    string        `json:"restaurantId" gorm:"index;type:varchar(36)" validate:"required"`
	Items           []OrderItem   `json:"items" gorm:"foreignKey:OrderID" validate:"required,min=1,dive"`
	DeliveryAddress Address       `json:"deliveryAddress" gorm:"embedded;embeddedPrefix:addr_"`
	DeliveryFee     float64       `json:"deliveryFee"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" gorm:"type:varchar(20)"`
	Status          OrderStatus   `json:"status" gorm:"index;type:varchar(20)"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
