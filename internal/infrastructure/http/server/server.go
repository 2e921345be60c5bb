// Package server provides the HTTP server and route wiring
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/internal/infrastructure/http/handlers"
	"github.com/stockchef/stockchef/internal/infrastructure/http/middleware"
	"github.com/stockchef/stockchef/internal/infrastructure/security"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authService *security.AuthService,
	userService inbound.UserService,
	inventoryService inbound.InventoryService,
	recipeService inbound.RecipeService,
	fileStore outbound.FileStore,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.Server.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.Server.TrustedProxies)
	}

	s := &Server{
		config: cfg,
		logger: logger,
		engine: engine,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	s.setupRoutes(authService, userService, inventoryService, recipeService, fileStore)

	return s
}

func (s *Server) setupRoutes(
	authService *security.AuthService,
	userService inbound.UserService,
	inventoryService inbound.InventoryService,
	recipeService inbound.RecipeService,
	fileStore outbound.FileStore,
) {
	m := middleware.New(s.config, s.logger)

	s.engine.Use(m.RequestID())
	s.engine.Use(m.Logger())
	s.engine.Use(m.Recovery())
	s.engine.Use(m.Security())
	s.engine.Use(m.CORS())
	s.engine.Use(m.RateLimit())
	s.engine.Use(m.ErrorHandler())

	s.engine.GET("/health", handlers.HealthCheck(s.config.App.Version))
	if s.config.Server.EnableMetrics {
		s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	authHandlers := handlers.NewAuthHandlers(userService, s.logger)
	userHandlers := handlers.NewUserHandlers(userService, s.logger)
	inventoryHandlers := handlers.NewInventoryHandlers(inventoryService, fileStore, s.config, s.logger)
	recipeHandlers := handlers.NewRecipeHandlers(recipeService, s.logger)

	v1 := s.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandlers.Register)
		auth.POST("/login", authHandlers.Login)
		auth.POST("/logout", authService.AuthMiddleware(), authHandlers.Logout)
	}

	users := v1.Group("/users")
	{
		users.GET("/me", authService.AuthMiddleware(), userHandlers.GetProfile)
		users.GET("/preferences", userHandlers.GetPreferenceCatalogs)
		users.PUT("/preferences", authService.AuthMiddleware(), userHandlers.UpdatePreferences)
	}

	inventoryGroup := v1.Group("/inventory", authService.AuthMiddleware())
	{
		inventoryGroup.GET("", inventoryHandlers.ListItems)
		inventoryGroup.POST("/items", inventoryHandlers.AddItem)
		inventoryGroup.DELETE("/items/:id", inventoryHandlers.DeleteItem)
		inventoryGroup.POST("/items/bulk", inventoryHandlers.AddItemsBulk)
		inventoryGroup.POST("/image", inventoryHandlers.UploadImage)
	}

	recipes := v1.Group("/recipes", authService.AuthMiddleware())
	{
		recipes.GET("/history", recipeHandlers.GetHistory)
		recipes.POST("/suggest", recipeHandlers.Suggest)
		recipes.POST("", recipeHandlers.SaveRecipe)
		recipes.GET("/:id", recipeHandlers.GetRecipe)
		recipes.POST("/:id/cook", recipeHandlers.CookRecipe)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
