package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/shared"
)

func TestUserService_Create(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	staff, err := svc.Create(ctx, admin.User.OrgID, CreateUserRequest{
		Email:    "Luis@Example.com",
		Password: "other-password",
		FullName: "Luis Paredes",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "luis@example.com", staff.Email)
	assert.Equal(t, "staff", staff.Role)
	assert.Equal(t, "active", staff.Status)
}

func TestUserService_Create_EmailTaken(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)

	_, err := svc.Create(context.Background(), admin.User.OrgID, CreateUserRequest{
		Email:    "ANA@example.com",
		Password: "other-password",
		FullName: "Ana Duplicada",
		Role:     "staff",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestUserService_List(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	for _, email := range []string{"luis@example.com", "carla@example.com"} {
		_, err := svc.Create(ctx, admin.User.OrgID, CreateUserRequest{
			Email:    email,
			Password: "other-password",
			FullName: "Staff " + email,
			Role:     "staff",
		})
		require.NoError(t, err)
	}

	all, total, err := svc.List(ctx, admin.User.OrgID, UserListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	role := "staff"
	staffOnly, staffTotal, err := svc.List(ctx, admin.User.OrgID, UserListFilter{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(2), staffTotal)
	for _, u := range staffOnly {
		assert.Equal(t, "staff", u.Role)
	}

	bogus := "owner"
	_, _, err = svc.List(ctx, admin.User.OrgID, UserListFilter{Role: &bogus})
	require.Error(t, err)
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestUserService_Update_LastAdminProtected(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	// demoting the sole admin is rejected
	_, err := svc.Update(ctx, admin.User.OrgID, admin.User.ID, UpdateUserRequest{
		FullName: admin.User.FullName,
		Role:     "staff",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LAST_ADMIN", domainErr.Code)

	// so is disabling them
	_, err = svc.Update(ctx, admin.User.OrgID, admin.User.ID, UpdateUserRequest{
		FullName: admin.User.FullName,
		Role:     "admin",
		Status:   "disabled",
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LAST_ADMIN", domainErr.Code)
}

func TestUserService_Update_DemoteWithSecondAdmin(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	second, err := svc.Create(ctx, admin.User.OrgID, CreateUserRequest{
		Email:    "luis@example.com",
		Password: "other-password",
		FullName: "Luis Paredes",
		Role:     "admin",
	})
	require.NoError(t, err)

	demoted, err := svc.Update(ctx, admin.User.OrgID, second.ID, UpdateUserRequest{
		FullName: second.FullName,
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", demoted.Role)
}

func TestUserService_Update_ChangePassword(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	_, err := svc.Update(ctx, admin.User.OrgID, admin.User.ID, UpdateUserRequest{
		FullName: admin.User.FullName,
		Role:     "admin",
		Password: "brand-new-password",
	})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "correct-horse"})
	require.Error(t, err)

	_, err = authSvc.Login(ctx, LoginRequest{Email: "ana@example.com", Password: "brand-new-password"})
	require.NoError(t, err)
}

func TestUserService_Delete(t *testing.T) {
	authSvc, svc := newAuthService(t)
	admin := signup(t, authSvc)
	ctx := context.Background()

	// the sole admin cannot be removed
	err := svc.Delete(ctx, admin.User.OrgID, admin.User.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LAST_ADMIN", domainErr.Code)

	staff, err := svc.Create(ctx, admin.User.OrgID, CreateUserRequest{
		Email:    "luis@example.com",
		Password: "other-password",
		FullName: "Luis Paredes",
		Role:     "staff",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin.User.OrgID, staff.ID))

	_, err = svc.Get(ctx, admin.User.OrgID, staff.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
