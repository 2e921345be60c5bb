// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP layer drives.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserService implements account and preference use cases
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetPreferenceCatalogs(ctx context.Context) (*PreferenceCatalogsDTO, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, dietaryID, cuisineID int) (*UserDTO, error)
}

// InventoryService implements pantry use cases
type InventoryService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, name string) (*ItemDTO, error)
	DeleteItem(ctx context.Context, userID uuid.UUID, itemID uint) error

	// AddItems reconciles a batch of names against the pantry and returns
	// how many were actually inserted.
	AddItems(ctx context.Context, userID uuid.UUID, names []string) (int, error)

	// AddItemsFromImage extracts item names from an uploaded photo and
	// reconciles them like AddItems.
	AddItemsFromImage(ctx context.Context, userID uuid.UUID, imageData []byte, contentType string) (int, error)
}

// RecipeService implements suggestion, saving, history and cooking use cases
type RecipeService interface {
	Suggest(ctx context.Context, userID uuid.UUID, cmd SuggestCommand) ([]SuggestionDTO, error)
	SaveRecipe(ctx context.Context, userID uuid.UUID, cmd SaveRecipeCommand) (*RecipeDTO, error)
	GetRecipe(ctx context.Context, recipeID uint) (*RecipeDTO, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]HistoryItemDTO, error)

	// CookRecipe marks the recipe cooked and consumes matching pantry
	// items, returning how many were used.
	CookRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) (int, error)
}

// RegisterCommand carries the registration payload
type RegisterCommand struct {
	Email               string
	Password            string
	FirstName           string
	LastName            string
	DietaryPreferenceID int
	CuisineID           int
}

// SuggestCommand carries suggestion options
type SuggestCommand struct {
	// CustomIngredients overrides the pantry as the ingredient source
	// when non-empty.
	CustomIngredients []string
	// IgnoreHistory drops previously cooked titles from the prompt.
	IgnoreHistory bool
}

// SaveRecipeCommand carries a suggestion chosen for saving
type SaveRecipeCommand struct {
	Name        string
	Description string
	Ingredients []string
	ApproxTime  string
	Steps       []string
}

// AuthResult is returned from register and login
type AuthResult struct {
	Token string
	User  UserDTO
}

// UserDTO is the outward representation of a user
type UserDTO struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	DietaryPreferences []string  `json:"dietary_preferences"`
	PreferredCuisines  []string  `json:"preferred_cuisines"`
	CreatedAt          time.Time `json:"created_at"`
}

// CatalogEntryDTO is one row of a preference catalog
type CatalogEntryDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PreferenceCatalogsDTO bundles both catalogs
type PreferenceCatalogsDTO struct {
	DietaryPreferences []CatalogEntryDTO `json:"dietary_preferences"`
	Cuisines           []CatalogEntryDTO `json:"cuisines"`
}

// ItemDTO is the outward representation of a pantry item
type ItemDTO struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// SuggestionDTO is one proposed recipe
type SuggestionDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	ApproxTime  string   `json:"approx_time"`
	Steps       []string `json:"steps"`
}

// RecipeDTO is the outward representation of a saved recipe
type RecipeDTO struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Ingredients      []string  `json:"ingredients"`
	Steps            []string  `json:"steps"`
	TotalTimeMinutes int       `json:"total_time_minutes"`
	CreatedAt        time.Time `json:"created_at"`
}

// HistoryItemDTO is one entry of the user's recipe history
type HistoryItemDTO struct {
	RecipeID  uint      `json:"recipe_id"`
	Title     string    `json:"title"`
	Cooked    bool      `json:"cooked"`
	CreatedAt time.Time `json:"created_at"`
}
