package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "StockChef", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Recipes.HistoryCap)
	assert.Equal(t, 2, cfg.Recipes.PreviousTitles)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxFileSize)
	assert.Contains(t, cfg.Storage.AllowedTypes, "image/jpeg")
	assert.False(t, cfg.Redis.Enabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Name: "StockChef", Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Database: "stockchef.db"},
			Recipes:  RecipesConfig{HistoryCap: 3, PreviousTitles: 2},
		}
	}

	t.Run("ValidConfig_Passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("MissingAppName_Fails", func(t *testing.T) {
		cfg := valid()
		cfg.App.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingJWTSecretInProduction_Fails", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("InvalidPort_Fails", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroHistoryCap_Fails", func(t *testing.T) {
		cfg := valid()
		cfg.Recipes.HistoryCap = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestGetDSN(t *testing.T) {
	t.Run("SQLite_ReturnsPath", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{Driver: "sqlite", Database: "stockchef.db"}}
		assert.Equal(t, "stockchef.db", cfg.GetDSN())
	})

	t.Run("Postgres_ReturnsKeyValueDSN", func(t *testing.T) {
		cfg := &Config{Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			Database: "stockchef",
			Username: "app",
			Password: "secret",
			SSLMode:  "disable",
		}}
		dsn := cfg.GetDSN()
		assert.Contains(t, dsn, "host=localhost")
		assert.Contains(t, dsn, "dbname=stockchef")
		assert.Contains(t, dsn, "sslmode=disable")
	})
}
