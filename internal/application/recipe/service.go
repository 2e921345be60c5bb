// Package recipe provides the application layer for suggestions, saving,
// history retention and cooking.
package recipe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/domain/recipe"
	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	apperrors "github.com/stockchef/stockchef/pkg/errors"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo  outbound.RecipeRepository
	historyRepo outbound.HistoryRepository
	invRepo     outbound.InventoryRepository
	userRepo    outbound.UserRepository
	txMgr       outbound.TxManager
	engine      outbound.SuggestionEngine
	historyCap  int
	prevTitles  int
	logger      *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	historyRepo outbound.HistoryRepository,
	invRepo outbound.InventoryRepository,
	userRepo outbound.UserRepository,
	txMgr outbound.TxManager,
	engine outbound.SuggestionEngine,
	cfg *config.Config,
	logger *zap.Logger,
) inbound.RecipeService {
	historyCap := cfg.Recipes.HistoryCap
	if historyCap < 1 {
		historyCap = recipe.DefaultHistoryCap
	}

	return &RecipeService{
		recipeRepo:  recipeRepo,
		historyRepo: historyRepo,
		invRepo:     invRepo,
		userRepo:    userRepo,
		txMgr:       txMgr,
		engine:      engine,
		historyCap:  historyCap,
		prevTitles:  cfg.Recipes.PreviousTitles,
		logger:      logger.Named("recipe-service"),
	}
}

// Suggest asks the engine for up to three recipes. Engine failures show
// up as an empty list, never as an error.
func (s *RecipeService) Suggest(ctx context.Context, userID uuid.UUID, cmd inbound.SuggestCommand) ([]inbound.SuggestionDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUserNotFoundError(userID.String())
	}

	ingredients := cmd.CustomIngredients
	if len(ingredients) == 0 {
		items, err := s.invRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("list inventory", err)
		}
		for _, item := range items {
			ingredients = append(ingredients, item.Name())
		}
	}

	var previousTitles []string
	if !cmd.IgnoreHistory {
		previousTitles, err = s.historyRepo.RecentCookedTitles(ctx, userID, s.prevTitles)
		if err != nil {
			return nil, apperrors.NewDatabaseError("load cooked titles", err)
		}
	}

	suggestions := s.engine.Suggest(ctx, outbound.SuggestionRequest{
		Ingredients:       ingredients,
		DietaryPreference: u.EffectiveDietaryPreference(),
		Cuisine:           u.EffectiveCuisine(),
		PreviousTitles:    previousTitles,
	})

	dtos := make([]inbound.SuggestionDTO, 0, len(suggestions))
	for _, sug := range suggestions {
		dtos = append(dtos, inbound.SuggestionDTO{
			Name:        sug.Name,
			Description: sug.Description,
			Ingredients: sug.Ingredients,
			ApproxTime:  sug.ApproxTime,
			Steps:       sug.Steps,
		})
	}

	s.logger.Info("Suggested recipes",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(dtos)),
	)

	return dtos, nil
}

// SaveRecipe persists a chosen suggestion and applies history retention.
// When the user is at the cap the oldest entry is evicted first; its
// recipe and ingredient rows go with it when no other history entry
// references the recipe. Everything runs in one transaction.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := recipe.NewRecipe(cmd.Name, cmd.Description, cmd.Ingredients, cmd.ApproxTime, cmd.Steps)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = s.txMgr.InTx(ctx, func(ctx context.Context) error {
		count, err := s.historyRepo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}

		if count >= int64(s.historyCap) {
			if err := s.evictOldest(ctx, userID); err != nil {
				return err
			}
		}

		if err := s.recipeRepo.Create(ctx, entity); err != nil {
			return err
		}

		entry := &recipe.HistoryEntry{
			UserID:    userID,
			RecipeID:  entity.ID(),
			Cooked:    false,
			CreatedAt: time.Now(),
		}
		return s.historyRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("save recipe", err)
	}

	s.logger.Info("Saved recipe",
		zap.String("user_id", userID.String()),
		zap.Uint("recipe_id", entity.ID()),
	)

	dto := toRecipeDTO(entity)
	return &dto, nil
}

// evictOldest removes the user's oldest history entry and, when it held
// the last reference, the recipe itself.
func (s *RecipeService) evictOldest(ctx context.Context, userID uuid.UUID) error {
	oldest, err := s.historyRepo.OldestByUser(ctx, userID)
	if err != nil {
		return err
	}

	// Reference count is taken before the delete, so 1 means this entry
	// holds the only reference.
	refs, err := s.historyRepo.CountByRecipe(ctx, oldest.RecipeID)
	if err != nil {
		return err
	}

	if err := s.historyRepo.Delete(ctx, oldest.ID); err != nil {
		return err
	}

	if refs == 1 {
		if err := s.recipeRepo.DeleteWithIngredients(ctx, oldest.RecipeID); err != nil {
			return err
		}
		s.logger.Info("Evicted orphaned recipe",
			zap.String("user_id", userID.String()),
			zap.Uint("recipe_id", oldest.RecipeID),
		)
	}

	return nil
}

// GetRecipe returns the recipe with its ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID uint) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if errors.Is(err, recipe.ErrRecipeNotFound) {
		return nil, apperrors.NewRecipeNotFoundError(recipeID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("load recipe", err)
	}

	dto := toRecipeDTO(entity)
	return &dto, nil
}

// GetHistory returns the user's retained history, newest first
func (s *RecipeService) GetHistory(ctx context.Context, userID uuid.UUID) ([]inbound.HistoryItemDTO, error) {
	entries, err := s.historyRepo.RecentByUser(ctx, userID, s.historyCap)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load history", err)
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.RecipeID)
	}

	recipes, err := s.recipeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load history recipes", err)
	}

	titles := make(map[uint]string, len(recipes))
	for _, r := range recipes {
		titles[r.ID()] = r.Title()
	}

	items := make([]inbound.HistoryItemDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, inbound.HistoryItemDTO{
			RecipeID:  e.RecipeID,
			Title:     titles[e.RecipeID],
			Cooked:    e.Cooked,
			CreatedAt: e.CreatedAt,
		})
	}

	return items, nil
}

// CookRecipe marks the user's history entry cooked, creating it when
// absent, and consumes at most one pantry item per distinct ingredient
// name. Unmatched ingredients are not an error. One transaction.
func (s *RecipeService) CookRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) (int, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if errors.Is(err, recipe.ErrRecipeNotFound) {
		return 0, apperrors.NewRecipeNotFoundError(recipeID)
	}
	if err != nil {
		return 0, apperrors.NewDatabaseError("load recipe", err)
	}

	used := 0

	err = s.txMgr.InTx(ctx, func(ctx context.Context) error {
		entry, err := s.historyRepo.FindByUserAndRecipe(ctx, userID, recipeID)
		switch {
		case err == nil:
			if !entry.Cooked {
				if err := s.historyRepo.MarkCooked(ctx, entry.ID); err != nil {
					return err
				}
			}
		case errors.Is(err, recipe.ErrHistoryNotFound):
			entry = &recipe.HistoryEntry{
				UserID:    userID,
				RecipeID:  recipeID,
				Cooked:    true,
				CreatedAt: time.Now(),
			}
			if err := s.historyRepo.Create(ctx, entry); err != nil {
				return err
			}
		default:
			return err
		}

		seen := make(map[string]bool, len(entity.Ingredients()))
		for _, name := range entity.Ingredients() {
			folded := strings.ToLower(name)
			if seen[folded] {
				continue
			}
			seen[folded] = true

			deleted, err := s.invRepo.DeleteOneByNameFold(ctx, userID, name)
			if err != nil {
				return err
			}
			if deleted {
				used++
			}
		}

		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError("cook recipe", err)
	}

	s.logger.Info("Cooked recipe",
		zap.String("user_id", userID.String()),
		zap.Uint("recipe_id", recipeID),
		zap.Int("ingredients_used", used),
	)

	return used, nil
}

func toRecipeDTO(r *recipe.Recipe) inbound.RecipeDTO {
	return inbound.RecipeDTO{
		ID:               r.ID(),
		Title:            r.Title(),
		Description:      r.Description(),
		Ingredients:      r.Ingredients(),
		Steps:            r.Steps(),
		TotalTimeMinutes: r.TotalTimeMinutes(),
		CreatedAt:        r.CreatedAt(),
	}
}
