// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
	gormModels "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
)

// Connect opens a PostgreSQL connection with pooling from config
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("connected to postgres",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database),
	)

	return db, nil
}
