// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/stockchef/stockchef/internal/domain/inventory"
	"github.com/stockchef/stockchef/internal/domain/recipe"
	"github.com/stockchef/stockchef/internal/domain/user"
)

func userToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func modelToUser(m *UserModel, dietary []user.DietaryPreference, cuisines []user.Cuisine) *user.User {
	return user.ReconstructUser(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		dietary,
		cuisines,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:               r.ID(),
		Title:            r.Title(),
		Description:      r.Description(),
		Instructions:     r.Instructions(),
		TotalTimeMinutes: r.TotalTimeMinutes(),
		CreatedAt:        r.CreatedAt(),
	}
}

func modelToRecipe(m *RecipeModel, ingredients []string) *recipe.Recipe {
	return recipe.ReconstructRecipe(
		m.ID,
		m.Title,
		m.Description,
		m.Instructions,
		m.TotalTimeMinutes,
		ingredients,
		m.CreatedAt,
	)
}

func itemToModel(i *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:      i.ID(),
		UserID:  i.UserID(),
		Name:    i.Name(),
		AddedAt: i.AddedAt(),
	}
}

func modelToItem(m *InventoryItemModel) *inventory.Item {
	return inventory.ReconstructItem(m.ID, m.UserID, m.Name, m.AddedAt)
}

func historyToModel(e *recipe.HistoryEntry) *UserRecipeHistoryModel {
	return &UserRecipeHistoryModel{
		ID:        e.ID,
		UserID:    e.UserID,
		RecipeID:  e.RecipeID,
		Cooked:    e.Cooked,
		CreatedAt: e.CreatedAt,
	}
}

func modelToHistory(m *UserRecipeHistoryModel) *recipe.HistoryEntry {
	return &recipe.HistoryEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		RecipeID:  m.RecipeID,
		Cooked:    m.Cooked,
		CreatedAt: m.CreatedAt,
	}
}
