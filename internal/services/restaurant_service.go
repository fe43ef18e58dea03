package services

import (
	"fmt"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
)

// RestaurantService handles business logic for restaurant listings, the
// admin approval gate, and owner-side management.
type RestaurantService struct {
	restaurantRepo repositories.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService.
func NewRestaurantService(restaurantRepo repositories.RestaurantRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
	}
}

// CreateRestaurant registers a new restaurant for an owner. New restaurants
// always start unapproved regardless of what the request claims.
func (s *RestaurantService) CreateRestaurant(restaurant *models.Restaurant) error {
	restaurant.ApprovalStatus = models.ApprovalPending
	restaurant.IsActive = true
	restaurant.IsTemporarilyClosed = false
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}
	return nil
}

// GetVisibleRestaurants retrieves the restaurants customers may browse:
// approved, active, and not temporarily closed.
func (s *RestaurantService) GetVisibleRestaurants() ([]models.Restaurant, error) {
	all, err := s.restaurantRepo.GetByApproval(models.ApprovalApproved)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Restaurant, 0, len(all))
	for _, r := range all {
		if r.Visible() {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// GetRestaurantByID retrieves a single restaurant.
func (s *RestaurantService) GetRestaurantByID(id string) (*models.Restaurant, error) {
	return s.restaurantRepo.GetByID(id)
}

// GetPendingRestaurants retrieves restaurants awaiting admin approval.
func (s *RestaurantService) GetPendingRestaurants() ([]models.Restaurant, error) {
	return s.restaurantRepo.GetByApproval(models.ApprovalPending)
}

// GetOwnerRestaurants retrieves the restaurants an owner manages.
func (s *RestaurantService) GetOwnerRestaurants(ownerID string) ([]models.Restaurant, error) {
	return s.restaurantRepo.GetByOwner(ownerID)
}

// IsOwnedBy reports whether a restaurant belongs to the given owner.
func (s *RestaurantService) IsOwnedBy(restaurantID, ownerID string) (bool, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return false, err
	}
	return restaurant.OwnerID == ownerID, nil
}

// Approve moves a restaurant through the approval gate.
func (s *RestaurantService) Approve(id, notes string) (*models.Restaurant, error) {
	return s.setApproval(id, models.ApprovalApproved, notes)
}

// Reject marks a restaurant as rejected.
func (s *RestaurantService) Reject(id, notes string) (*models.Restaurant, error) {
	return s.setApproval(id, models.ApprovalRejected, notes)
}

func (s *RestaurantService) setApproval(id string, status models.ApprovalStatus, notes string) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	restaurant.ApprovalStatus = status
	restaurant.ApprovalNotes = notes
	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// SetTemporaryClosure toggles an owner's temporary-closure flag. Only the
// owner may flip it; closure hides the restaurant regardless of approval.
func (s *RestaurantService) SetTemporaryClosure(restaurantID, ownerID string, closed bool) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	restaurant.IsTemporarilyClosed = closed
	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// UpdateRestaurant applies owner edits to listing fields. Approval state and
// activity flags are not owner-editable here.
func (s *RestaurantService) UpdateRestaurant(restaurantID, ownerID string, updated *models.Restaurant) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if updated.Name != "" {
		restaurant.Name = updated.Name
	}
	if updated.Description != "" {
		restaurant.Description = updated.Description
	}
	if updated.CuisineType != "" {
		restaurant.CuisineType = updated.CuisineType
	}
	if updated.Address != "" {
		restaurant.Address = updated.Address
	}
	if updated.Phone != "" {
		restaurant.Phone = updated.Phone
	}
	if updated.DeliveryFee > 0 {
		restaurant.DeliveryFee = updated.DeliveryFee
	}
	if len(updated.OperatingHours) > 0 {
		restaurant.OperatingHours = updated.OperatingHours
	}

	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// DeleteRestaurant removes a restaurant listing.
func (s *RestaurantService) DeleteRestaurant(id string) error {
	return s.restaurantRepo.Delete(id)
}
