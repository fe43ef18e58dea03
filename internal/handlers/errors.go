package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors onto HTTP statuses: lifecycle
// conflicts are 409, bad input is 400, ownership failures are 403, unknown
// entities are 404, everything else is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrMixedRestaurants):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrStatusConflict),
		errors.Is(err, services.ErrOrderAlreadyAssigned):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotOwner):
		return fiber.StatusForbidden
	case strings.Contains(err.Error(), "not found"):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// validationMessages flattens validator errors into a field -> message map
// for the inline-error rendering the storefront does.
func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["body"] = err.Error()
	}
	return errorMessages
}
