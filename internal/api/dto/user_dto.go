package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetManagerRequest assigns a manager by username.
type SetManagerRequest struct {
	Username        string `json:"username"`
	ManagerUsername string `json:"managerUsername"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UserSummary is the short form used for managers.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	UserType  domain.UserRole `json:"userType"`
	ManagerID *string         `json:"managerId"`
	Manager   *UserSummary    `json:"manager,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewUserResponse projects a user and an optional manager.
func NewUserResponse(user domain.User, manager *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		UserType:  user.Role,
		ManagerID: user.ManagerID,
		CreatedAt: user.CreatedAt,
	}
	if manager != nil {
		resp.Manager = &UserSummary{ID: manager.ID, Username: manager.Username, Name: manager.Name, Email: manager.Email}
	}
	return resp
}

// NewAuthResponse converts a service auth result.
func NewAuthResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: NewUserResponse(*res.User, nil)}
}

// NewUserList converts profiles.
func NewUserList(profiles []service.UserProfile) []UserResponse {
	out := make([]UserResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewUserResponse(p.User, p.Manager))
	}
	return out
}
