package models

import "time"

// Delivery is a rider's assignment to fulfil exactly one order. It is
// created when a rider accepts a pending order and becomes immutable once
// delivered. The unique index on OrderID is what stops two riders from
// accepting the same order.
type Delivery struct {
	ID                    string         `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	OrderID               string         `json:"orderId" gorm:"uniqueIndex;type:varchar(36)" validate:"required"`
	DriverID              string         `json:"driverId" gorm:"index;type:varchar(36)" validate:"required"`
	DriverName            string         `json:"driverName" gorm:"type:varchar(100)"`
	CustomerID            string         `json:"customerId" gorm:"type:varchar(36)"`
	CustomerName          string         `json:"customerName" gorm:"type:varchar(100)"`
	CustomerPhone         string         `json:"customerPhone" gorm:"type:varchar(20)"`
	PickupLocation        string         `json:"pickupLocation" gorm:"type:varchar(255)"`
	DeliveryLocation      Address        `json:"deliveryLocation" gorm:"embedded;embeddedPrefix:dest_"`
	Status                DeliveryStatus `json:"status" gorm:"index;type:varchar(20)"`
	EstimatedDeliveryTime time.Time      `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time     `json:"actualDeliveryTime"`
	DeliveryNotes         string         `json:"deliveryNotes,omitempty" gorm:"type:text"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}
