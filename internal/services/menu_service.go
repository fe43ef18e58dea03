package services

import (
	"fmt"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
)

// MenuService handles business logic for restaurant menus.
type MenuService struct {
	menuRepo       repositories.MenuRepository
	restaurantRepo repositories.RestaurantRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo repositories.MenuRepository, restaurantRepo repositories.RestaurantRepository) *MenuService {
	return &MenuService{
		menuRepo:       menuRepo,
		restaurantRepo: restaurantRepo,
	}
}

// GetAllMenuItems retrieves every menu item across restaurants.
func (s *MenuService) GetAllMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

// GetMenuItemByID retrieves a single menu item.
func (s *MenuService) GetMenuItemByID(id string) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(id)
}

// GetRestaurantMenu retrieves the menu of a restaurant.
func (s *MenuService) GetRestaurantMenu(restaurantID string) ([]models.MenuItem, error) {
	return s.menuRepo.GetByRestaurant(restaurantID)
}

// CreateMenuItem adds a dish to a restaurant the caller owns.
func (s *MenuService) CreateMenuItem(item *models.MenuItem, ownerID string) error {
	if err := s.checkOwnership(item.RestaurantID, ownerID); err != nil {
		return err
	}
	if err := s.menuRepo.Create(item); err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem edits a dish on a restaurant the caller owns.
func (s *MenuService) UpdateMenuItem(item *models.MenuItem, ownerID string) error {
	existing, err := s.menuRepo.GetByID(item.ID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(existing.RestaurantID, ownerID); err != nil {
		return err
	}
	// The dish cannot move between restaurants through an edit.
	item.RestaurantID = existing.RestaurantID
	return s.menuRepo.Update(item)
}

// DeleteMenuItem removes a dish from a restaurant the caller owns.
func (s *MenuService) DeleteMenuItem(id, ownerID string) error {
	existing, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(existing.RestaurantID, ownerID); err != nil {
		return err
	}
	return s.menuRepo.Delete(id)
}

// SetAvailability flips a dish's availability flag.
func (s *MenuService) SetAvailability(id, ownerID string, available bool) error {
	existing, err := s.menuRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(existing.RestaurantID, ownerID); err != nil {
		return err
	}
	return s.menuRepo.SetAvailability(id, available)
}

func (s *MenuService) checkOwnership(restaurantID, ownerID string) error {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
