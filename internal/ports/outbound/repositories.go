// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockchef/stockchef/internal/domain/inventory"
	"github.com/stockchef/stockchef/internal/domain/recipe"
	"github.com/stockchef/stockchef/internal/domain/user"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ReplacePreferences swaps both preference associations for the user.
	ReplacePreferences(ctx context.Context, userID uuid.UUID, dietaryIDs, cuisineIDs []int) error
}

// ReferenceRepository reads the seeded preference catalogs.
type ReferenceRepository interface {
	ListDietaryPreferences(ctx context.Context) ([]user.DietaryPreference, error)
	ListCuisines(ctx context.Context) ([]user.Cuisine, error)
	FindDietaryPreference(ctx context.Context, id int) (*user.DietaryPreference, error)
	FindCuisine(ctx context.Context, id int) (*user.Cuisine, error)
}

// RecipeRepository defines the interface for recipe persistence.
// Recipes are shared across users; ingredient rows ride along with the recipe.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id uint) (*recipe.Recipe, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*recipe.Recipe, error)

	// DeleteWithIngredients removes the recipe and its ingredient rows.
	DeleteWithIngredients(ctx context.Context, id uint) error
}

// HistoryRepository defines the interface for per-user recipe history rows.
type HistoryRepository interface {
	Create(ctx context.Context, entry *recipe.HistoryEntry) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// OldestByUser returns the eviction candidate, ordered by created_at
	// then id so ties resolve deterministically.
	OldestByUser(ctx context.Context, userID uuid.UUID) (*recipe.HistoryEntry, error)

	// CountByRecipe counts history rows referencing the recipe across all users.
	CountByRecipe(ctx context.Context, recipeID uint) (int64, error)

	FindByUserAndRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) (*recipe.HistoryEntry, error)
	MarkCooked(ctx context.Context, entryID uint) error
	Delete(ctx context.Context, entryID uint) error

	// RecentByUser returns up to limit entries, newest first.
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*recipe.HistoryEntry, error)

	// RecentCookedTitles returns the titles of up to limit most recently
	// cooked recipes for the user, newest first.
	RecentCookedTitles(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
}

// InventoryRepository defines the interface for pantry persistence.
type InventoryRepository interface {
	Create(ctx context.Context, item *inventory.Item) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*inventory.Item, error)
	FindByID(ctx context.Context, userID uuid.UUID, itemID uint) (*inventory.Item, error)

	// FindByNameFold matches on case-insensitive full-string equality.
	FindByNameFold(ctx context.Context, userID uuid.UUID, name string) (*inventory.Item, error)

	Delete(ctx context.Context, userID uuid.UUID, itemID uint) error

	// DeleteOneByNameFold removes at most one case-insensitively matching
	// item and reports whether a row was removed.
	DeleteOneByNameFold(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}
