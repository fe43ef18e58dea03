package models

import "gorm.io/gorm"

// ApprovalStatus is the admin-driven visibility gate for restaurants.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Restaurant represents a registered restaurant and its listing state.
type Restaurant struct {
	ID                  string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID             string           `json:"owner" gorm:"index;type:varchar(36)" validate:"required"`
	Name                string           `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Description         string           `json:"description" gorm:"type:text"`
	CuisineType         string           `json:"cuisineType" gorm:"type:varchar(50)"`
	Address             string           `json:"address" gorm:"type:varchar(255)" validate:"required"`
	Phone               string           `json:"phone" gorm:"type:varchar(20)"`
	Rating              float64          `json:"rating"`
	DeliveryFee         float64          `json:"deliveryFee"`
	ApprovalStatus      ApprovalStatus   `json:"approvalStatus" gorm:"type:varchar(20);default:pending"`
	ApprovalNotes       string           `json:"approvalNotes,omitempty" gorm:"type:text"`
	IsActive            bool             `json:"isActive" gorm:"default:true"`
	IsTemporarilyClosed bool             `json:"isTemporarilyClosed"`
	OperatingHours      []OperatingHours `json:"operatingHours" gorm:"foreignKey:RestaurantID"`
	gorm.Model          `json:"-"`
}

// OperatingHours is one weekday row of a restaurant's schedule.
type OperatingHours struct {
	ID           uint   `json:"-" gorm:"primaryKey"`
	RestaurantID string `json:"-" gorm:"index;type:varchar(36)"`
	Day          string `json:"day" validate:"required"`
	Open         string `json:"open"`
	Close        string `json:"close"`
	IsOpen       bool   `json:"isOpen"`
}

// Visible reports whether the restaurant should appear in customer listings.
// Temporary closure overrides everything else, including approval.
func (r *Restaurant) Visible() bool {
	return r.ApprovalStatus == ApprovalApproved && r.IsActive && !r.IsTemporarilyClosed
}
