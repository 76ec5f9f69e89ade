package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiendapro/backend/internal/domain/shared"
)

// UserRole represents the role of a user within an organization
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

// IsValid checks if the role is a valid UserRole
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleStaff
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User represents a back-office user belonging to one organization
type User struct {
	shared.OrgAggregateRoot
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_org_email,priority:2"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	FullName     string     `gorm:"type:varchar(200);not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'staff'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user. The password hash is produced by the
// application layer; the domain never sees the clear-text password.
func NewUser(orgID uuid.UUID, email, passwordHash, fullName string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Email address is not valid")
	}
	if passwordHash == "" {
		return nil, shared.NewValidationError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if fullName == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("INVALID_ROLE", "Role must be admin or staff")
	}

	return &User{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Email:            email,
		PasswordHash:     passwordHash,
		FullName:         fullName,
		Role:             role,
		Status:           UserStatusActive,
	}, nil
}

// UpdateProfile changes the user's display name and role
func (u *User) UpdateProfile(fullName string, role UserRole) error {
	if fullName == "" {
		return shared.NewValidationError("INVALID_NAME", "Full name cannot be empty")
	}
	if !role.IsValid() {
		return shared.NewValidationError("INVALID_ROLE", "Role must be admin or staff")
	}
	u.FullName = fullName
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}

// ChangePasswordHash replaces the stored password hash
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return shared.NewValidationError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// Disable blocks the user from logging in
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_DISABLED", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Enable re-activates a disabled user
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError(shared.KindInvalidState, "ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.Touch()
	u.IncrementVersion()
	return nil
}

// CanLogin returns true if the account is usable
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive
}

// IsAdmin returns true for organization administrators
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
