package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thewhitewolf2411/TaskManager/internal/api/dto"
	"github.com/thewhitewolf2411/TaskManager/internal/auth"
	"github.com/thewhitewolf2411/TaskManager/internal/service"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

// UsersHandler serves the current-user profile and the admin user listing.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// GetCurrent handles GET /user for the authenticated principal.
func (h *UsersHandler) GetCurrent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden("")
	}

	user, err := h.users.GetByID(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserResponse(user))
}

// List handles GET /users on the admin surface.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserListResponse(users))
}
