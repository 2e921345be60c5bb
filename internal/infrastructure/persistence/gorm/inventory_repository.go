package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockchef/stockchef/internal/domain/inventory"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// InventoryRepository implements the inventory repository interface using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) outbound.InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create inserts a pantry item, preserving the submitted casing
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	model := itemToModel(item)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	item.SetID(model.ID)
	return nil
}

// ListByUser returns the user's items in insertion order
func (r *InventoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, 0, len(models))
	for i := range models {
		items = append(items, modelToItem(&models[i]))
	}
	return items, nil
}

// FindByID returns the user's item with the given id
func (r *InventoryRepository) FindByID(ctx context.Context, userID uuid.UUID, itemID uint) (*inventory.Item, error) {
	var model InventoryItemModel
	result := dbFromContext(ctx, r.db).
		Where("user_id = ? AND id = ?", userID, itemID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, result.Error
	}
	return modelToItem(&model), nil
}

// FindByNameFold matches on case-insensitive full-string equality.
// LOWER on both sides keeps the comparison portable across sqlite and
// postgres.
func (r *InventoryRepository) FindByNameFold(ctx context.Context, userID uuid.UUID, name string) (*inventory.Item, error) {
	var model InventoryItemModel
	result := dbFromContext(ctx, r.db).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, result.Error
	}
	return modelToItem(&model), nil
}

// Delete removes the user's item with the given id
func (r *InventoryRepository) Delete(ctx context.Context, userID uuid.UUID, itemID uint) error {
	result := dbFromContext(ctx, r.db).
		Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&InventoryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// DeleteOneByNameFold removes at most one case-insensitively matching item
// and reports whether a row was removed
func (r *InventoryRepository) DeleteOneByNameFold(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	db := dbFromContext(ctx, r.db)

	var model InventoryItemModel
	result := db.
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Order("id ASC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}

	if err := db.Delete(&InventoryItemModel{}, "id = ?", model.ID).Error; err != nil {
		return false, err
	}
	return true, nil
}
