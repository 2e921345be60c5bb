package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/domain/user"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// ErrUserNotFound is returned when a user row does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert hits the email unique index.
var ErrDuplicateEmail = errors.New("user with this email already exists")

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := userToModel(u)

	result := dbFromContext(ctx, r.db).Create(model)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint failed") ||
			strings.Contains(result.Error.Error(), "duplicate key") {
			return ErrDuplicateEmail
		}
		return result.Error
	}

	return nil
}

// FindByID finds a user by ID, loading both preference associations
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	db := dbFromContext(ctx, r.db)

	var model UserModel
	result := db.First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	dietary, cuisines, err := r.loadPreferences(db, id)
	if err != nil {
		return nil, err
	}

	return modelToUser(&model, dietary, cuisines), nil
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	db := dbFromContext(ctx, r.db)

	var model UserModel
	result := db.First(&model, "email = ?", strings.ToLower(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	dietary, cuisines, err := r.loadPreferences(db, model.ID)
	if err != nil {
		return nil, err
	}

	return modelToUser(&model, dietary, cuisines), nil
}

// ExistsByEmail checks whether a user with the email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := dbFromContext(ctx, r.db).
		Model(&UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ReplacePreferences swaps both preference associations for the user
func (r *UserRepository) ReplacePreferences(ctx context.Context, userID uuid.UUID, dietaryIDs, cuisineIDs []int) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("user_id = ?", userID).Delete(&UserDietaryPreferenceModel{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&UserPreferredCuisineModel{}).Error; err != nil {
		return err
	}

	for _, id := range dietaryIDs {
		row := UserDietaryPreferenceModel{UserID: userID, DietaryPreferenceID: id}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}
	for _, id := range cuisineIDs {
		row := UserPreferredCuisineModel{UserID: userID, CuisineID: id}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *UserRepository) loadPreferences(db *gorm.DB, userID uuid.UUID) ([]user.DietaryPreference, []user.Cuisine, error) {
	var dietaryModels []DietaryPreferenceModel
	err := db.
		Joins("JOIN user_dietary_preferences udp ON udp.dietary_preference_id = dietary_preferences.id").
		Where("udp.user_id = ?", userID).
		Order("dietary_preferences.id ASC").
		Find(&dietaryModels).Error
	if err != nil {
		return nil, nil, err
	}

	var cuisineModels []CuisineModel
	err = db.
		Joins("JOIN user_preferred_cuisines upc ON upc.cuisine_id = cuisines.id").
		Where("upc.user_id = ?", userID).
		Order("cuisines.id ASC").
		Find(&cuisineModels).Error
	if err != nil {
		return nil, nil, err
	}

	dietary := make([]user.DietaryPreference, 0, len(dietaryModels))
	for _, m := range dietaryModels {
		dietary = append(dietary, user.DietaryPreference{ID: m.ID, Name: m.Name, Description: m.Description})
	}

	cuisines := make([]user.Cuisine, 0, len(cuisineModels))
	for _, m := range cuisineModels {
		cuisines = append(cuisines, user.Cuisine{ID: m.ID, Name: m.Name, Description: m.Description})
	}

	return dietary, cuisines, nil
}
