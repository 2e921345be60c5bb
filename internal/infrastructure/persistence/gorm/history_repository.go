package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/domain/recipe"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// HistoryRepository implements the history repository interface using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a history entry
func (r *HistoryRepository) Create(ctx context.Context, entry *recipe.HistoryEntry) error {
	model := historyToModel(entry)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	entry.ID = model.ID
	return nil
}

// CountByUser counts the user's history entries
func (r *HistoryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&UserRecipeHistoryModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// OldestByUser returns the user's oldest entry, ordered by created_at then
// id so ties resolve deterministically
func (r *HistoryRepository) OldestByUser(ctx context.Context, userID uuid.UUID) (*recipe.HistoryEntry, error) {
	var model UserRecipeHistoryModel
	result := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrHistoryNotFound
		}
		return nil, result.Error
	}
	return modelToHistory(&model), nil
}

// CountByRecipe counts history rows referencing the recipe across all users
func (r *HistoryRepository) CountByRecipe(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).
		Model(&UserRecipeHistoryModel{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	return count, err
}

// FindByUserAndRecipe returns the user's entry for the recipe
func (r *HistoryRepository) FindByUserAndRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) (*recipe.HistoryEntry, error) {
	var model UserRecipeHistoryModel
	result := dbFromContext(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrHistoryNotFound
		}
		return nil, result.Error
	}
	return modelToHistory(&model), nil
}

// MarkCooked flips the entry to cooked
func (r *HistoryRepository) MarkCooked(ctx context.Context, entryID uint) error {
	return dbFromContext(ctx, r.db).
		Model(&UserRecipeHistoryModel{}).
		Where("id = ?", entryID).
		Update("cooked", true).Error
}

// Delete removes a history entry
func (r *HistoryRepository) Delete(ctx context.Context, entryID uint) error {
	return dbFromContext(ctx, r.db).
		Delete(&UserRecipeHistoryModel{}, "id = ?", entryID).Error
}

// RecentByUser returns up to limit entries, newest first
func (r *HistoryRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*recipe.HistoryEntry, error) {
	var models []UserRecipeHistoryModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*recipe.HistoryEntry, 0, len(models))
	for i := range models {
		entries = append(entries, modelToHistory(&models[i]))
	}
	return entries, nil
}

// RecentCookedTitles returns the titles of up to limit most recently
// cooked recipes for the user, newest first
func (r *HistoryRepository) RecentCookedTitles(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	var titles []string
	err := dbFromContext(ctx, r.db).
		Model(&UserRecipeHistoryModel{}).
		Select("recipes.title").
		Joins("JOIN recipes ON recipes.id = user_recipe_history.recipe_id").
		Where("user_recipe_history.user_id = ? AND user_recipe_history.cooked = ?", userID, true).
		Order("user_recipe_history.created_at DESC, user_recipe_history.id DESC").
		Limit(limit).
		Pluck("recipes.title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}
