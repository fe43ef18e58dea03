package models

import (
	"strings"

	"gorm.io/gorm"
)

// Role names a capability a user account holds. Accounts may hold several
// roles at once (e.g. a restaurant owner who also orders food).
type Role string

const (
	RoleUser            Role = "user"
	RoleAdmin           Role = "admin"
	RoleRestaurantOwner Role = "restaurantOwner"
	RoleDriver          Role = "driver"
)

// ValidRole reports whether r is a known role name.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleRestaurantOwner, RoleDriver:
		return true
	}
	return false
}

// User represents an account on the platform.
type User struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FullName    string `json:"fullname" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone       string `json:"phone" gorm:"type:varchar(20)" validate:"required,min=9,max=15"`
	Password    string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Roles       string `json:"roles" gorm:"type:varchar(255)"` // comma-separated role set
	IsSuspended bool   `json:"isSuspended"`
	gorm.Model  `json:"-"`
}

// HasRole reports whether the user's role set contains r.
func (u *User) HasRole(r Role) bool {
	for _, part := range strings.Split(u.Roles, ",") {
		if Role(strings.TrimSpace(part)) == r {
			return true
		}
	}
	return false
}

// AddRole adds r to the user's role set if not already present.
func (u *User) AddRole(r Role) {
	if u.HasRole(r) {
		return
	}
	if u.Roles == "" {
		u.Roles = string(r)
		return
	}
	u.Roles = u.Roles + "," + string(r)
}

// RoleList returns the role set as a slice for clients that expect an array.
func (u *User) RoleList() []Role {
	var roles []Role
	for _, part := range strings.Split(u.Roles, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			roles = append(roles, Role(part))
		}
	}
	return roles
}
