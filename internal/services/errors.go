package services

import "errors"

// Sentinel errors surfaced by the lifecycle services. Handlers map these to
// HTTP statuses (409 for transition conflicts, 400 for bad input, 403 for
// ownership failures) instead of string-matching messages.
var (
	// ErrUnknownStatus is returned for a status value outside the vocabulary.
	ErrUnknownStatus = errors.New("unknown status value")

	// ErrInvalidTransition is returned when the requested move is not in the
	// transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStatusConflict is returned when a guarded status write touched no
	// rows: another actor moved the record first.
	ErrStatusConflict = errors.New("status changed concurrently, re-fetch and retry")

	// ErrOrderAlreadyAssigned is returned when a rider tries to accept an
	// order that already has a delivery.
	ErrOrderAlreadyAssigned = errors.New("order already assigned to a rider")

	// ErrNotOwner is returned when a caller acts on a resource they do not own.
	ErrNotOwner = errors.New("caller does not own this resource")

	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cannot check out an empty cart")

	// ErrMixedRestaurants is returned when a cart holds items from more than
	// one restaurant at checkout; an order references exactly one restaurant.
	ErrMixedRestaurants = errors.New("cart contains items from multiple restaurants")

	// ErrAccountSuspended is returned on login for suspended accounts.
	ErrAccountSuspended = errors.New("account is suspended")
)
