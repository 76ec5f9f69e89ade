package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/shared"
	"github.com/tiendapro/backend/internal/infrastructure/auth"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
)

// bcryptCost is the work factor for password hashing
const bcryptCost = 12

// AuthService handles signup, login and token lifecycle operations
type AuthService struct {
	db        *gorm.DB
	orgs      identity.OrganizationRepository
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	db *gorm.DB,
	orgs identity.OrganizationRepository,
	users identity.UserRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		db:        db,
		orgs:      orgs,
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Signup creates an organization and its first admin user in one
// transaction, then logs the admin in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	exists, err := s.orgs.ExistsBySlug(ctx, req.OrgSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.KindConflict, "SLUG_TAKEN", "An organization with this slug already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	var (
		org  *identity.Organization
		user *identity.User
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orgs := persistence.NewGormOrganizationRepository(tx)
		users := persistence.NewGormUserRepository(tx)

		org, err = identity.NewOrganization(req.OrgName, req.OrgSlug)
		if err != nil {
			return err
		}
		if err := orgs.Save(ctx, org); err != nil {
			return err
		}

		user, err = identity.NewUser(org.ID, req.Email, string(hash), req.FullName, identity.UserRoleAdmin)
		if err != nil {
			return err
		}
		return users.Save(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Organization created",
		zap.String("org_id", org.ID.String()),
		zap.String("slug", org.Slug),
	)

	return s.issueTokens(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.FindByEmailAnyOrg(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// same error as a bad password, no account enumeration
			return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", user.Email))
		return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_DISABLED", "Account has been disabled")
	}

	org, err := s.orgs.FindByID(ctx, user.OrgID)
	if err != nil {
		return nil, err
	}
	if org.Status != identity.OrganizationStatusActive {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "ORG_SUSPENDED", "Organization is suspended")
	}

	user.RecordLogin(time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		// the login still succeeds, the timestamp is best-effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("org_id", user.OrgID.String()),
	)

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The user's
// current role and status are re-read, so a role change or disable takes
// effect on the next refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResult, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "TOKEN_REVOKED", "Refresh token has been revoked")
	}

	orgID, err := claims.GetOrgUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_TOKEN", "Refresh token is invalid")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_TOKEN", "Refresh token is invalid")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return nil, err
	}
	if invalidated {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "TOKEN_REVOKED", "Session has been invalidated")
	}

	user, err := s.users.FindByIDForOrg(ctx, orgID, userID)
	if err != nil {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "INVALID_TOKEN", "Account no longer exists")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_DISABLED", "Account has been disabled")
	}

	// the used refresh token is consumed
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist used refresh token", zap.Error(err))
	}

	return s.issueTokens(user)
}

// Logout revokes the presented access token and, when given, the refresh
// token.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err != nil {
		// an expired token has nothing left to revoke
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil
		}
		return shared.NewDomainError(shared.KindUnauthorized, "INVALID_TOKEN", "Access token is invalid")
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}

	if refreshToken != "" {
		if refreshClaims, err := s.jwt.ValidateRefreshToken(refreshToken); err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, refreshClaims.ID, refreshClaims.GetRemainingTTL()); err != nil {
				return err
			}
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*AuthResult, error) {
	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		OrgID:  user.OrgID,
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  ToUserResponse(user),
	}, nil
}
