package handlers

import (
	"log"

	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/middleware"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/models"
	"github.com/SajithPrawanthaFernando/quick-bite-fe/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the user management routes. adminOnly gates the
// admin console operations.
func (h *UserHandler) RegisterRoutes(router fiber.Router, adminOnly fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/all", adminOnly, h.HandleGetAllUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.HandleUpdateProfile)
	userRoutes.Put("/:id/role", adminOnly, h.HandleGrantRole)
	userRoutes.Patch("/:id/suspend", adminOnly, h.HandleSuspend)
	userRoutes.Patch("/:id/reactivate", adminOnly, h.HandleReactivate)
	userRoutes.Delete("/:id", adminOnly, h.HandleDeleteUser)
}

// HandleGetAllUsers lists every account for the admin console.
func (h *UserHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleGetUser retrieves one account. Non-admin callers may only read
// their own account.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.selfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You may only view your own account",
		})
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates the caller's own contact fields.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if !h.selfOrAdmin(c, id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You may only update your own account",
		})
	}

	var req struct {
		FullName string `json:"fullname"`
		Phone    string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.userService.UpdateProfile(id, req.FullName, req.Phone)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not update user",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleGrantRole adds a role to an account (admin console's change-role).
func (h *UserHandler) HandleGrantRole(c *fiber.Ctx) error {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.userService.GrantRole(c.Params("id"), req.Role)
	if err != nil {
		log.Printf("Error granting role: %v", err)
		status := statusForError(err)
		if status == fiber.StatusInternalServerError {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Could not update user role",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleSuspend suspends an account.
func (h *UserHandler) HandleSuspend(c *fiber.Ctx) error {
	if err := h.userService.Suspend(c.Params("id")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not suspend user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "User suspended"})
}

// HandleReactivate clears an account's suspension.
func (h *UserHandler) HandleReactivate(c *fiber.Ctx) error {
	if err := h.userService.Reactivate(c.Params("id")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not reactivate user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "User reactivated"})
}

// HandleDeleteUser removes an account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id")); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"message": "Could not delete user",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

func (h *UserHandler) selfOrAdmin(c *fiber.Ctx, id string) bool {
	if middleware.CallerID(c) == id {
		return true
	}
	return callerHasRole(c, models.RoleAdmin)
}
