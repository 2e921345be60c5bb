package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/domain/recipe"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts the recipe and its ingredient rows
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	db := dbFromContext(ctx, r.db)

	model := recipeToModel(rec)
	if err := db.Create(model).Error; err != nil {
		return err
	}
	rec.SetID(model.ID)

	for pos, name := range rec.Ingredients() {
		row := RecipeIngredientModel{RecipeID: model.ID, Name: name, Position: pos}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

// FindByID loads a recipe with its ingredients in insertion order
func (r *RecipeRepository) FindByID(ctx context.Context, id uint) (*recipe.Recipe, error) {
	db := dbFromContext(ctx, r.db)

	var model RecipeModel
	result := db.First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	ingredients, err := r.loadIngredients(db, id)
	if err != nil {
		return nil, err
	}

	return modelToRecipe(&model, ingredients), nil
}

// FindByIDs loads multiple recipes, preserving the order of ids.
// Missing ids are skipped.
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []uint) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	db := dbFromContext(ctx, r.db)

	var models []RecipeModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*RecipeModel, len(models))
	for i := range models {
		byID[models[i].ID] = &models[i]
	}

	recipes := make([]*recipe.Recipe, 0, len(ids))
	for _, id := range ids {
		model, ok := byID[id]
		if !ok {
			continue
		}
		ingredients, err := r.loadIngredients(db, id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, modelToRecipe(model, ingredients))
	}

	return recipes, nil
}

// DeleteWithIngredients removes the recipe and its ingredient rows
func (r *RecipeRepository) DeleteWithIngredients(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("recipe_id = ?", id).Delete(&RecipeIngredientModel{}).Error; err != nil {
		return err
	}

	return db.Delete(&RecipeModel{}, "id = ?", id).Error
}

func (r *RecipeRepository) loadIngredients(db *gorm.DB, recipeID uint) ([]string, error) {
	var rows []RecipeIngredientModel
	err := db.
		Where("recipe_id = ?", recipeID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}
