package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/shared"
)

func TestGormOrganizationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrganizationRepository(db)
	ctx := context.Background()

	org, err := identity.NewOrganization("Tienda Don Pedro", "tienda-don-pedro")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, org))

	found, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Don Pedro", found.Name)

	bySlug, err := repo.FindBySlug(ctx, "tienda-don-pedro")
	require.NoError(t, err)
	assert.Equal(t, org.ID, bySlug.ID)

	exists, err := repo.ExistsBySlug(ctx, "tienda-don-pedro")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "otra-tienda")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindBySlug(ctx, "otra-tienda")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	user, err := identity.NewUser(orgID, "Ana@Example.com", "hashed-secret", "Ana Morales", identity.UserRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	found, err := repo.FindByIDForOrg(ctx, orgID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", found.Email)
	assert.Equal(t, identity.UserRoleAdmin, found.Role)

	// email lookup is normalized to lowercase
	byEmail, err := repo.FindByEmail(ctx, orgID, "ANA@example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	anyOrg, err := repo.FindByEmailAnyOrg(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, anyOrg.ID)
}

func TestGormUserRepository_CountAdmins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	admin, err := identity.NewUser(orgID, "ana@example.com", "hash", "Ana Morales", identity.UserRoleAdmin)
	require.NoError(t, err)
	staff, err := identity.NewUser(orgID, "luis@example.com", "hash", "Luis Paredes", identity.UserRoleStaff)
	require.NoError(t, err)
	disabledAdmin, err := identity.NewUser(orgID, "mar@example.com", "hash", "Mar Solis", identity.UserRoleAdmin)
	require.NoError(t, err)
	require.NoError(t, disabledAdmin.Disable())

	require.NoError(t, repo.Save(ctx, admin))
	require.NoError(t, repo.Save(ctx, staff))
	require.NoError(t, repo.Save(ctx, disabledAdmin))

	count, err := repo.CountAdmins(ctx, orgID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGormUserRepository_FindAllForOrg(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	admin, err := identity.NewUser(orgID, "ana@example.com", "hash", "Ana Morales", identity.UserRoleAdmin)
	require.NoError(t, err)
	staff, err := identity.NewUser(orgID, "luis@example.com", "hash", "Luis Paredes", identity.UserRoleStaff)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, admin))
	require.NoError(t, repo.Save(ctx, staff))

	all, err := repo.FindAllForOrg(ctx, orgID, identity.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	role := identity.UserRoleStaff
	staffOnly, err := repo.FindAllForOrg(ctx, orgID, identity.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, staffOnly, 1)
	assert.Equal(t, "luis@example.com", staffOnly[0].Email)
}

func TestGormUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()
	orgID := uuid.New()

	user, err := identity.NewUser(orgID, "ana@example.com", "hash", "Ana Morales", identity.UserRoleStaff)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	// wrong org must not delete
	assert.Equal(t, shared.ErrNotFound, repo.Delete(ctx, uuid.New(), user.ID))

	require.NoError(t, repo.Delete(ctx, orgID, user.ID))
	_, err = repo.FindByIDForOrg(ctx, orgID, user.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}
