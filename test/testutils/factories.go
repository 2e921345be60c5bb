// Package testutils provides shared test fixtures and data factories
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/stockchef/stockchef/internal/domain/user"
	"github.com/stockchef/stockchef/internal/infrastructure/config"
	gormRepo "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
	"github.com/stockchef/stockchef/internal/infrastructure/persistence/sqlite"
)

// NewTestDB returns a migrated and seeded in-memory SQLite database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase("", gormLogger.Silent)
	require.NoError(t, err)
	require.NoError(t, sqlite.SeedDatabase(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// NewTestConfig returns a configuration suitable for tests. The bcrypt
// cost is lowered so password hashing does not dominate test time.
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "StockChef",
			Version:     "test",
			Environment: "test",
			LogLevel:    "debug",
			LogFormat:   "console",
		},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret-key",
			JWTExpiration: time.Hour,
			BCryptCost:    4,
		},
		Recipes: config.RecipesConfig{
			HistoryCap:     3,
			PreviousTitles: 2,
		},
		Storage: config.StorageConfig{
			MaxFileSize:  10 << 20,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp"},
		},
	}
}

// UserFactory produces persisted test users
type UserFactory struct {
	faker *gofakeit.Faker
	db    *gorm.DB
}

// NewUserFactory creates a user factory with a seeded faker
func NewUserFactory(db *gorm.DB, seed int64) *UserFactory {
	return &UserFactory{
		faker: gofakeit.New(seed),
		db:    db,
	}
}

// Email returns a unique fake email address
func (f *UserFactory) Email() string {
	return fmt.Sprintf("%s.%s@%s",
		f.faker.FirstName(),
		f.faker.LastName(),
		f.faker.DomainName(),
	)
}

// CreateUser persists a user without linked preferences and returns it.
func (f *UserFactory) CreateUser(t *testing.T) *user.User {
	t.Helper()

	entity, err := user.NewUser(f.Email(), "password123", f.faker.FirstName(), f.faker.LastName())
	require.NoError(t, err)

	repo := gormRepo.NewUserRepository(f.db)
	require.NoError(t, repo.Create(context.Background(), entity))

	return entity
}

// CreateUserWithPreferences persists a user linked to the given catalog
// entries, mirroring registration.
func (f *UserFactory) CreateUserWithPreferences(t *testing.T, dietaryID, cuisineID int) *user.User {
	t.Helper()

	entity := f.CreateUser(t)

	repo := gormRepo.NewUserRepository(f.db)
	require.NoError(t, repo.ReplacePreferences(context.Background(), entity.ID(), []int{dietaryID}, []int{cuisineID}))

	reloaded, err := repo.FindByID(context.Background(), entity.ID())
	require.NoError(t, err)
	return reloaded
}

// PantryNames returns n fake ingredient names
func (f *UserFactory) PantryNames(n int) []string {
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, fmt.Sprintf("%s %d", f.faker.Fruit(), i))
	}
	return names
}
