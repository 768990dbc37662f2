package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contactagenda/internal/database"
	"contactagenda/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
	))
	return db
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("alice", "alice@x.com", "digest", "Alice A")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	// lookups fold case and whitespace
	found, err = repo.GetByEmail(ctx, "  Alice@X.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRoleRepository_GetAll(t *testing.T) {
	db := setupDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	for _, name := range []string{domain.RoleUser, domain.RoleAdmin, domain.RoleGuest} {
		role, err := domain.NewRole(name, "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, role))
	}

	roles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	// ordered by name
	assert.Equal(t, domain.RoleAdmin, roles[0].Name)
	assert.Equal(t, domain.RoleGuest, roles[1].Name)
	assert.Equal(t, domain.RoleUser, roles[2].Name)
}
