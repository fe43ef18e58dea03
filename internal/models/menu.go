package models

import "gorm.io/gorm"

// MenuItem represents a single dish on a restaurant's menu.
type MenuItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	RestaurantID string  `json:"restaurantId" gorm:"index;type:varchar(36)" validate:"required"`
	Name         string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Category     string  `json:"category" gorm:"type:varchar(50)"`
	Image        string  `json:"image,omitempty" gorm:"type:varchar(255)"`
	IsAvailable  bool    `json:"isAvailable" gorm:"default:true"`
	gorm.Model   `json:"-"`
}
