package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/pkg/errors"
)

// RecipeHandlers handles suggestion, saving, history and cooking endpoints
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		logger:        logger.Named("recipe-handlers"),
	}
}

type suggestRequest struct {
	CustomIngredients []string `json:"custom_ingredients"`
	IgnoreHistory     bool     `json:"ignore_history"`
}

type saveRecipeRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients" binding:"required"`
	ApproxTime  string   `json:"approx_time"`
	Steps       []string `json:"steps" binding:"required,min=1"`
}

// Suggest handles POST /api/v1/recipes/suggest
func (h *RecipeHandlers) Suggest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Body is optional; an empty body means pantry ingredients and history on.
	var req suggestRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	suggestions, err := h.recipeService.Suggest(c.Request.Context(), userID, inbound.SuggestCommand{
		CustomIngredients: req.CustomIngredients,
		IgnoreHistory:     req.IgnoreHistory,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": suggestions})
}

// SaveRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req saveRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipeService.SaveRecipe(c.Request.Context(), userID, inbound.SaveRecipeCommand{
		Name:        req.Name,
		Description: req.Description,
		Ingredients: req.Ingredients,
		ApproxTime:  req.ApproxTime,
		Steps:       req.Steps,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// GetRecipe handles GET /api/v1/recipes/:id
func (h *RecipeHandlers) GetRecipe(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, errors.NewBadRequestError("Invalid recipe id"))
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), uint(recipeID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// GetHistory handles GET /api/v1/recipes/history
func (h *RecipeHandlers) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.recipeService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// CookRecipe handles POST /api/v1/recipes/:id/cook
func (h *RecipeHandlers) CookRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, errors.NewBadRequestError("Invalid recipe id"))
		return
	}

	used, err := h.recipeService.CookRecipe(c.Request.Context(), userID, uint(recipeID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients_used": used})
}
