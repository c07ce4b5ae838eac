package dto

import "github.com/thewhitewolf2411/TaskManager/internal/domain"

// LoginRequest payload for login. No minimum length on the password here: a
// short wrong password must read as bad credentials, not bad input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the session bootstrap payload. The browser client depends
// on exactly these keys; do not rename or nest them.
type AuthResponse struct {
	Token     string `json:"token"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// NewAuthResponse maps a user and token onto the wire shape.
func NewAuthResponse(user *domain.User, token string) AuthResponse {
	return AuthResponse{
		Token:     token,
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}
