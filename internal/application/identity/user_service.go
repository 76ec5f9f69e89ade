package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/shared"
)

// UserService handles user management within an organization
type UserService struct {
	users identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create creates a new user in the organization
func (s *UserService) Create(ctx context.Context, orgID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.users.FindByEmail(ctx, orgID, req.Email); err == nil {
		return nil, shared.NewDomainError(shared.KindConflict, "EMAIL_TAKEN", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(orgID, req.Email, string(hash), req.FullName, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		user.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get returns a user by ID within the organization
func (s *UserService) Get(ctx context.Context, orgID, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns users matching the filter with the total match count
func (s *UserService) List(ctx context.Context, orgID uuid.UUID, filter UserListFilter) ([]UserResponse, int64, error) {
	domainFilter := identity.UserFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			Search:   filter.Search,
		},
	}
	if filter.Role != nil {
		role := identity.UserRole(*filter.Role)
		if !role.IsValid() {
			return nil, 0, shared.NewValidationError("INVALID_ROLE", "Unknown role filter")
		}
		domainFilter.Role = &role
	}
	if filter.Status != nil {
		status := identity.UserStatus(*filter.Status)
		if status != identity.UserStatusActive && status != identity.UserStatusDisabled {
			return nil, 0, shared.NewValidationError("INVALID_STATUS", "Unknown status filter")
		}
		domainFilter.Status = &status
	}

	users, err := s.users.FindAllForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.CountForOrg(ctx, orgID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update updates a user's profile, role, status and optionally password.
// Demoting or disabling the organization's last active admin is rejected.
func (s *UserService) Update(ctx context.Context, orgID, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	losingAdmin := user.IsAdmin() && user.Status == identity.UserStatusActive &&
		(identity.UserRole(req.Role) != identity.UserRoleAdmin || req.Status == string(identity.UserStatusDisabled))
	if losingAdmin {
		admins, err := s.users.CountAdmins(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, shared.NewDomainError(shared.KindInvalidState, "LAST_ADMIN", "Organization must keep at least one active admin")
		}
	}

	if err := user.UpdateProfile(req.FullName, identity.UserRole(req.Role)); err != nil {
		return nil, err
	}

	switch identity.UserStatus(req.Status) {
	case identity.UserStatusActive:
		if user.Status != identity.UserStatusActive {
			if err := user.Enable(); err != nil {
				return nil, err
			}
		}
	case identity.UserStatusDisabled:
		if user.Status != identity.UserStatusDisabled {
			if err := user.Disable(); err != nil {
				return nil, err
			}
		}
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		if err := user.ChangePasswordHash(string(hash)); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes a user. The organization's last active admin cannot be
// deleted.
func (s *UserService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	user, err := s.users.FindByIDForOrg(ctx, orgID, id)
	if err != nil {
		return err
	}

	if user.IsAdmin() && user.Status == identity.UserStatusActive {
		admins, err := s.users.CountAdmins(ctx, orgID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return shared.NewDomainError(shared.KindInvalidState, "LAST_ADMIN", "Organization must keep at least one active admin")
		}
	}

	return s.users.Delete(ctx, orgID, id)
}
