// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the preference catalogs with initial data
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.DietaryPreferenceModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	dietaryPreferences := []gormModels.DietaryPreferenceModel{
		{Name: "Non-vegetarian", Description: "No dietary restrictions"},
		{Name: "Vegetarian", Description: "No meat, poultry, or fish"},
		{Name: "Vegan", Description: "No animal products of any kind"},
		{Name: "Pescatarian", Description: "Vegetarian plus fish and seafood"},
		{Name: "Halal", Description: "Prepared according to Islamic dietary law"},
		{Name: "Kosher", Description: "Prepared according to Jewish dietary law"},
		{Name: "Gluten-free", Description: "No wheat, barley, or rye"},
	}

	for _, pref := range dietaryPreferences {
		if err := db.Create(&pref).Error; err != nil {
			return fmt.Errorf("failed to seed dietary preference: %w", err)
		}
	}

	cuisines := []gormModels.CuisineModel{
		{Name: "American", Description: "Classic American comfort food"},
		{Name: "Italian", Description: "Pasta, risotto, and Mediterranean flavors"},
		{Name: "Mexican", Description: "Bold flavors with chiles and corn"},
		{Name: "Indian", Description: "Rich curries and aromatic spices"},
		{Name: "Chinese", Description: "Stir-fries, dumplings, and noodles"},
		{Name: "Japanese", Description: "Clean flavors, rice, and seafood"},
		{Name: "Thai", Description: "Balance of sweet, sour, salty, and spicy"},
		{Name: "Mediterranean", Description: "Olive oil, fresh vegetables, and grains"},
		{Name: "French", Description: "Classic techniques and rich sauces"},
		{Name: "Middle Eastern", Description: "Legumes, flatbreads, and warm spices"},
	}

	for _, cuisine := range cuisines {
		if err := db.Create(&cuisine).Error; err != nil {
			return fmt.Errorf("failed to seed cuisine: %w", err)
		}
	}

	return nil
}
