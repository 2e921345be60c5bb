package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/domain/user"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// ReferenceRepository reads the seeded preference catalogs using GORM
type ReferenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db *gorm.DB) outbound.ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListDietaryPreferences returns all dietary preference catalog entries
func (r *ReferenceRepository) ListDietaryPreferences(ctx context.Context) ([]user.DietaryPreference, error) {
	var models []DietaryPreferenceModel
	if err := dbFromContext(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	prefs := make([]user.DietaryPreference, 0, len(models))
	for _, m := range models {
		prefs = append(prefs, user.DietaryPreference{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return prefs, nil
}

// ListCuisines returns all cuisine catalog entries
func (r *ReferenceRepository) ListCuisines(ctx context.Context) ([]user.Cuisine, error) {
	var models []CuisineModel
	if err := dbFromContext(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	cuisines := make([]user.Cuisine, 0, len(models))
	for _, m := range models {
		cuisines = append(cuisines, user.Cuisine{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return cuisines, nil
}

// FindDietaryPreference returns the catalog entry with the given id
func (r *ReferenceRepository) FindDietaryPreference(ctx context.Context, id int) (*user.DietaryPreference, error) {
	var model DietaryPreferenceModel
	result := dbFromContext(ctx, r.db).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("dietary preference %d not found", id)
		}
		return nil, result.Error
	}
	return &user.DietaryPreference{ID: model.ID, Name: model.Name, Description: model.Description}, nil
}

// FindCuisine returns the catalog entry with the given id
func (r *ReferenceRepository) FindCuisine(ctx context.Context, id int) (*user.Cuisine, error) {
	var model CuisineModel
	result := dbFromContext(ctx, r.db).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cuisine %d not found", id)
		}
		return nil, result.Error
	}
	return &user.Cuisine{ID: model.ID, Name: model.Name, Description: model.Description}, nil
}
