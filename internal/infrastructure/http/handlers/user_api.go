package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/ports/inbound"
)

// UserHandlers handles profile and preference endpoints
type UserHandlers struct {
	userService inbound.UserService
	logger      *zap.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService inbound.UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		logger:      logger.Named("user-handlers"),
	}
}

type updatePreferencesRequest struct {
	DietaryPreferenceID int `json:"dietary_preference_id" binding:"required"`
	CuisineID           int `json:"cuisine_id" binding:"required"`
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandlers) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetPreferenceCatalogs handles GET /api/v1/users/preferences
func (h *UserHandlers) GetPreferenceCatalogs(c *gin.Context) {
	catalogs, err := h.userService.GetPreferenceCatalogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, catalogs)
}

// UpdatePreferences handles PUT /api/v1/users/preferences
func (h *UserHandlers) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req updatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdatePreferences(c.Request.Context(), userID, req.DietaryPreferenceID, req.CuisineID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
