package repositories

import (
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
)

// RestaurantRepository defines the interface for restaurant data access.
type RestaurantRepository interface {
	GetAll() ([]models.Restaurant, error)
	GetByApproval(status models.ApprovalStatus) ([]models.Restaurant, error)
	GetByID(id string) (*models.Restaurant, error)
	GetByOwner(ownerID string) ([]models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id string) error
}
