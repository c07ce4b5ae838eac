package events

import (
	"time"

	"github.com/thewhitewolf2411/TaskManager/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventTokenRevoked   EventType = "token_revoked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	UserID   string      `json:"user_id"`
	Role     domain.Role `json:"role"`
	TimeZone string      `json:"time_zone,omitempty"`
}

// TokenRevokedPayload payload.
type TokenRevokedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}
