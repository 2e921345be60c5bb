// Package gorm provides GORM model definitions and repository implementations
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for users
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns an ID when none was set
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// DietaryPreferenceModel represents a dietary preference catalog row
type DietaryPreferenceModel struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for dietary preferences
func (DietaryPreferenceModel) TableName() string {
	return "dietary_preferences"
}

// CuisineModel represents a cuisine catalog row
type CuisineModel struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for cuisines
func (CuisineModel) TableName() string {
	return "cuisines"
}

// UserDietaryPreferenceModel links users to dietary preferences.
// Association rows are managed explicitly by the repository, replacement
// is delete plus insert in application code.
type UserDietaryPreferenceModel struct {
	UserID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	DietaryPreferenceID int       `gorm:"primaryKey"`
}

// TableName returns the table name for the user dietary preference join table
func (UserDietaryPreferenceModel) TableName() string {
	return "user_dietary_preferences"
}

// UserPreferredCuisineModel links users to preferred cuisines
type UserPreferredCuisineModel struct {
	UserID    uuid.UUID `gorm:"type:char(36);primaryKey"`
	CuisineID int       `gorm:"primaryKey"`
}

// TableName returns the table name for the user cuisine join table
func (UserPreferredCuisineModel) TableName() string {
	return "user_preferred_cuisines"
}

// InventoryItemModel represents a pantry item row.
// Name casing is preserved as submitted; no unique constraint on
// (user_id, name) since the duplicate check happens before insert.
type InventoryItemModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement"`
	UserID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
	AddedAt time.Time
}

// TableName returns the table name for inventory items
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// RecipeModel represents a shared recipe row
type RecipeModel struct {
	ID               uint   `gorm:"primaryKey;autoIncrement"`
	Title            string `gorm:"type:varchar(255);not null"`
	Description      string `gorm:"type:text"`
	Instructions     string `gorm:"type:text;not null"`
	TotalTimeMinutes int    `gorm:"column:total_time_minutes;default:0"`
	CreatedAt        time.Time
}

// TableName returns the table name for recipes
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel represents one ingredient of a recipe.
// Position preserves insertion order for reads.
type RecipeIngredientModel struct {
	RecipeID uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(255);primaryKey"`
	Position int    `gorm:"not null"`
}

// TableName returns the table name for recipe ingredients
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// UserRecipeHistoryModel links a user to a recipe they saved or cooked
type UserRecipeHistoryModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	RecipeID  uint      `gorm:"not null;index"`
	Cooked    bool      `gorm:"default:false"`
	CreatedAt time.Time
}

// TableName returns the table name for user recipe history
func (UserRecipeHistoryModel) TableName() string {
	return "user_recipe_history"
}

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&DietaryPreferenceModel{},
		&CuisineModel{},
		&UserDietaryPreferenceModel{},
		&UserPreferredCuisineModel{},
		&InventoryItemModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&UserRecipeHistoryModel{},
	}
}
