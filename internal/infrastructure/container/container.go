// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	inventoryApp "github.com/stockchef/stockchef/internal/application/inventory"
	recipeApp "github.com/stockchef/stockchef/internal/application/recipe"
	userApp "github.com/stockchef/stockchef/internal/application/user"
	"github.com/stockchef/stockchef/internal/infrastructure/ai/gemini"
	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/internal/infrastructure/http/server"
	gormRepo "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
	"github.com/stockchef/stockchef/internal/infrastructure/persistence/postgres"
	"github.com/stockchef/stockchef/internal/infrastructure/persistence/sqlite"
	"github.com/stockchef/stockchef/internal/infrastructure/security"
	"github.com/stockchef/stockchef/internal/infrastructure/storage"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	"github.com/stockchef/stockchef/pkg/logger"
)

// Module assembles the full application dependency graph.
func Module(configPath string) fx.Option {
	return fx.Options(
		fx.Provide(func() (*config.Config, error) {
			return config.Load(configPath)
		}),
		LoggerModule,
		DatabaseModule,
		CacheModule,
		RepositoryModule,
		AIModule,
		StorageModule,
		SecurityModule,
		ServiceModule,
		HTTPModule,
		LifecycleModule,
	)
}

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "postgres":
			return postgres.Connect(cfg, log)
		case "sqlite", "":
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}

			db, err := sqlite.SetupDatabase(cfg.Database.Database, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}

			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed database", zap.Error(err))
			}

			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Database),
			)

			return db, nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	},
)

// CacheModule provides the Redis client used for token revocation.
// When Redis is disabled the client is nil and revocation is skipped.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *redis.Client {
		if !cfg.Redis.Enabled {
			log.Info("Redis disabled, token revocation unavailable")
			return nil
		}

		client := redis.NewClient(&redis.Options{
			Addr:        cfg.RedisAddr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.Database,
			DialTimeout: cfg.Redis.DialTimeout,
			PoolSize:    cfg.Redis.PoolSize,
		})

		log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr()))
		return client
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewUserRepository,
	gormRepo.NewReferenceRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewHistoryRepository,
	gormRepo.NewInventoryRepository,
	gormRepo.NewTxManager,
)

// AIModule provides the Gemini client behind both engine ports
var AIModule = fx.Provide(
	gemini.NewClient,
	func(c *gemini.Client) outbound.SuggestionEngine { return c },
	func(c *gemini.Client) outbound.ImageExtractionEngine { return c },
)

// StorageModule provides file storage
var StorageModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.FileStore, error) {
		return storage.NewLocalStore(cfg.Storage.LocalPath, log)
	},
)

// SecurityModule provides authentication services
var SecurityModule = fx.Provide(
	security.NewAuthService,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	userApp.NewUserService,
	inventoryApp.NewInventoryService,
	recipeApp.NewRecipeService,
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts and stops the HTTP server with the app.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting StockChef application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down StockChef application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
