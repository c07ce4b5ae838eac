package dto

import "github.com/thewhitewolf2411/TaskManager/internal/domain"

// UserResponse is the profile shape served to clients. The password hash
// never leaves the service.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// NewUserResponse maps a user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
	}
}

// NewUserListResponse maps a list of users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}
