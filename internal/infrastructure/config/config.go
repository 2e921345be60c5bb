// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Recipes   RecipesConfig   `mapstructure:"recipes"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
	EnableMetrics   bool          `mapstructure:"enable_metrics"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	Database    int           `mapstructure:"database"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	PoolSize    int           `mapstructure:"pool_size"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiration time.Duration `mapstructure:"jwt_expiration"`
	BCryptCost    int           `mapstructure:"bcrypt_cost"`
}

// AIConfig contains AI service configuration
type AIConfig struct {
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	Model          string        `mapstructure:"model"`
	VisionModel    string        `mapstructure:"vision_model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// StorageConfig contains file storage configuration
type StorageConfig struct {
	LocalPath    string   `mapstructure:"local_path"`
	MaxFileSize  int64    `mapstructure:"max_file_size"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enable         bool `mapstructure:"enable"`
	RequestsPerMin int  `mapstructure:"requests_per_min"`
	BurstSize      int  `mapstructure:"burst_size"`
}

// RecipesConfig contains recipe behavior configuration
type RecipesConfig struct {
	// HistoryCap is the number of history entries retained per user.
	HistoryCap int `mapstructure:"history_cap"`
	// PreviousTitles is how many recently cooked titles the suggestion
	// prompt uses to avoid repeats.
	PreviousTitles int `mapstructure:"previous_titles"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/stockchef")
	}

	v.SetEnvPrefix("STOCKCHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "StockChef")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_metrics", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "stockchef.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.pool_size", 10)

	// Auth defaults
	v.SetDefault("auth.jwt_expiration", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)

	// AI defaults
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.vision_model", "gemini-2.0-flash")
	v.SetDefault("ai.request_timeout", "30s")

	// Storage defaults
	v.SetDefault("storage.local_path", "./uploads")
	v.SetDefault("storage.max_file_size", 10<<20)
	v.SetDefault("storage.allowed_types", []string{"image/jpeg", "image/png", "image/webp"})

	// Rate limit defaults
	v.SetDefault("rate_limit.enable", true)
	v.SetDefault("rate_limit.requests_per_min", 60)
	v.SetDefault("rate_limit.burst_size", 10)

	// Recipe defaults
	v.SetDefault("recipes.history_cap", 3)
	v.SetDefault("recipes.previous_titles", 2)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}

	if c.Auth.JWTSecret == "" && c.App.Environment == "production" {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Recipes.HistoryCap < 1 {
		return fmt.Errorf("recipes.history_cap must be at least 1")
	}

	if c.Recipes.PreviousTitles < 0 {
		return fmt.Errorf("recipes.previous_titles must not be negative")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Database
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
