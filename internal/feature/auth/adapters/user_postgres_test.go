package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard/internal/feature/auth/domain/entity"
	"taskboard/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError makes sqlite unique violations surface as gorm.ErrDuplicatedKey,
// matching what the Postgres driver reports in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("success: persists the user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hashed"}
		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.NotZero(t, user.ID, "ID should be assigned")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("failure: duplicate email leaves no second row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		first := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hashed"}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "Imposter", Email: "a@x.com", Password: "hashed2"}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

		var count int64
		require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
		assert.Equal(t, int64(1), count, "duplicate registration must not create a row")
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	seeded := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hashed"}
	require.NoError(t, repo.Create(context.Background(), seeded))

	t.Run("success: existing user", func(t *testing.T) {
		found, err := repo.FindByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, found.ID)
		assert.Equal(t, "Alice", found.Name)
	})

	t.Run("failure: unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	seeded := &entity.User{Name: "Alice", Email: "a@x.com", Password: "hashed"}
	require.NoError(t, repo.Create(context.Background(), seeded))

	t.Run("success: existing user", func(t *testing.T) {
		found, err := repo.FindByID(context.Background(), seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", found.Email)
	})

	t.Run("failure: unknown id", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), 9999)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
