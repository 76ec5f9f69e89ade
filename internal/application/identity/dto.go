package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/identity"
)

// SignupRequest represents a request to create an organization with its
// first admin user
type SignupRequest struct {
	OrgName  string `json:"org_name" binding:"required,min=1,max=200"`
	OrgSlug  string `json:"org_slug" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResult bundles the token pair with the authenticated user
type AuthResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// CreateUserRequest represents a request to create a user within an
// organization
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	// CreatedBy is set from the JWT context, never from the request body
	CreatedBy *uuid.UUID `json:"-"`
}

// UpdateUserRequest represents a request to update a user's profile,
// role or status
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	Status   string `json:"status" binding:"omitempty,oneof=active disabled"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the service layer.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrgID       uuid.UUID  `json:"org_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserListFilter carries user list query parameters
type UserListFilter struct {
	Role     *string
	Status   *string
	Search   string
	Page     int
	PageSize int
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to a response
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		OrgID:       u.OrgID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// ToOrganizationResponse converts a domain organization to a response
func ToOrganizationResponse(o *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}
