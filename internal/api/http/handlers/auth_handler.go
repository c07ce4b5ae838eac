package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/thewhitewolf2411/TaskManager/internal/api/dto"
	"github.com/thewhitewolf2411/TaskManager/internal/service"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

// AuthHandler exposes login, registration and logout endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validate
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: authService, validate: validate}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewBadRequest(validationMessage(err), nil)
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password, c.Get("Time-Zone"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return err
	}

	return c.JSON(dto.NewAuthResponse(user, token))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewBadRequest(validationMessage(err), nil)
	}

	user, token, err := h.auth.Register(c.UserContext(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewAuthResponse(user, token))
}

// Logout handles GET /auth/logout. The header must carry a parseable token;
// it does not have to still verify, so expired sessions can log out too.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return apperrors.NewForbidden("")
	}

	if err := h.auth.Logout(c.UserContext(), header); err != nil {
		return err
	}

	return c.SendString("ok")
}

// validationMessage flattens the first validator failure into a short
// client-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("field '%s' failed validation (%s)", verrs[0].Field(), verrs[0].Tag())
	}
	return "invalid payload"
}
