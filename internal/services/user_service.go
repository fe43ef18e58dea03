package services

import (
	"fmt"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/repositories"
)

// UserService handles account management beyond authentication: the admin
// console's user list, role grants, and suspension.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves every account.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// GetUserByID retrieves a single account.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile updates the contact fields of an account. Roles, password
// and suspension state are managed through their own operations.
func (s *UserService) UpdateProfile(id, fullName, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		user.FullName = fullName
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GrantRole adds a role to an account's role set. Granting a role the
// account already holds is a no-op. Accounts keep their existing roles:
// membership is a set, not a single slot.
func (s *UserService) GrantRole(id string, role models.Role) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role: %s", role)
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.AddRole(role)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Suspend marks an account suspended; suspended accounts cannot log in.
func (s *UserService) Suspend(id string) error {
	return s.setSuspended(id, true)
}

// Reactivate clears an account's suspension.
func (s *UserService) Reactivate(id string) error {
	return s.setSuspended(id, false)
}

func (s *UserService) setSuspended(id string, suspended bool) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	user.IsSuspended = suspended
	return s.userRepo.Update(user)
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(id string) error {
	return s.userRepo.Delete(id)
}
