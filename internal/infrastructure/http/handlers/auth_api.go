package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/pkg/errors"
)

// AuthHandlers handles registration, login and logout
type AuthHandlers struct {
	userService inbound.UserService
	logger      *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userService inbound.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		userService: userService,
		logger:      logger.Named("auth-handlers"),
	}
}

type registerRequest struct {
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8,max=128"`
	FirstName           string `json:"first_name" binding:"required,max=100"`
	LastName            string `json:"last_name" binding:"required,max=100"`
	DietaryPreferenceID int    `json:"dietary_preference_id" binding:"required"`
	CuisineID           int    `json:"cuisine_id" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        inbound.UserDTO `json:"user"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Register(c.Request.Context(), inbound.RegisterCommand{
		Email:               req.Email,
		Password:            req.Password,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DietaryPreferenceID: req.DietaryPreferenceID,
		CuisineID:           req.CuisineID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		User:        result.User,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		User:        result.User,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		respondError(c, errors.NewUnauthorizedError(""))
		return
	}

	if err := h.userService.Logout(c.Request.Context(), parts[1]); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
