package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	inventoryDomain "github.com/stockchef/stockchef/internal/domain/inventory"
	recipeDomain "github.com/stockchef/stockchef/internal/domain/recipe"
	gormRepo "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	apperrors "github.com/stockchef/stockchef/pkg/errors"
	"github.com/stockchef/stockchef/test/testutils"
)

// stubEngine returns canned suggestions and records the last request
type stubEngine struct {
	suggestions []outbound.Suggestion
	lastRequest outbound.SuggestionRequest
	called      bool
}

func (e *stubEngine) Suggest(ctx context.Context, req outbound.SuggestionRequest) []outbound.Suggestion {
	e.called = true
	e.lastRequest = req
	return e.suggestions
}

type RecipeServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     inbound.RecipeService
	engine      *stubEngine
	recipeRepo  outbound.RecipeRepository
	historyRepo outbound.HistoryRepository
	invRepo     outbound.InventoryRepository
	userID      uuid.UUID
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.db = testutils.NewTestDB(s.T())
	s.engine = &stubEngine{}

	s.recipeRepo = gormRepo.NewRecipeRepository(s.db)
	s.historyRepo = gormRepo.NewHistoryRepository(s.db)
	s.invRepo = gormRepo.NewInventoryRepository(s.db)
	userRepo := gormRepo.NewUserRepository(s.db)
	txMgr := gormRepo.NewTxManager(s.db)

	s.service = NewRecipeService(
		s.recipeRepo,
		s.historyRepo,
		s.invRepo,
		userRepo,
		txMgr,
		s.engine,
		testutils.NewTestConfig(),
		zaptest.NewLogger(s.T()),
	)

	factory := testutils.NewUserFactory(s.db, time.Now().UnixNano())
	s.userID = factory.CreateUser(s.T()).ID()
}

func (s *RecipeServiceTestSuite) saveRecipe(name string) *inbound.RecipeDTO {
	dto, err := s.service.SaveRecipe(context.Background(), s.userID, inbound.SaveRecipeCommand{
		Name:        name,
		Description: "test recipe",
		Ingredients: []string{"Tomato", "Onion", "Pasta"},
		ApproxTime:  "25 minutes",
		Steps:       []string{"Chop", "Cook", "Serve"},
	})
	require.NoError(s.T(), err)
	return dto
}

func (s *RecipeServiceTestSuite) TestSaveRecipe() {
	s.Run("UnderCap_KeepsAllEntries", func() {
		s.SetupTest()

		s.saveRecipe("Recipe One")
		s.saveRecipe("Recipe Two")

		history, err := s.service.GetHistory(context.Background(), s.userID)
		require.NoError(s.T(), err)
		assert.Len(s.T(), history, 2)
	})

	s.Run("OverCap_EvictsOldestAndItsRecipe", func() {
		s.SetupTest()

		first := s.saveRecipe("Recipe One")
		s.saveRecipe("Recipe Two")
		s.saveRecipe("Recipe Three")
		s.saveRecipe("Recipe Four")

		history, err := s.service.GetHistory(context.Background(), s.userID)
		require.NoError(s.T(), err)
		require.Len(s.T(), history, 3)

		titles := make([]string, 0, len(history))
		for _, h := range history {
			titles = append(titles, h.Title)
		}
		assert.ElementsMatch(s.T(), []string{"Recipe Two", "Recipe Three", "Recipe Four"}, titles)

		// The evicted recipe had no other references, so its rows are gone.
		_, err = s.service.GetRecipe(context.Background(), first.ID)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})

	s.Run("OverCap_SharedRecipeSurvivesEviction", func() {
		s.SetupTest()

		first := s.saveRecipe("Shared Recipe")

		// A second user's history still references the oldest recipe.
		otherUser := testutils.NewUserFactory(s.db, 42).CreateUser(s.T())
		require.NoError(s.T(), s.historyRepo.Create(context.Background(), &recipeDomain.HistoryEntry{
			UserID:    otherUser.ID(),
			RecipeID:  first.ID,
			Cooked:    false,
			CreatedAt: time.Now(),
		}))

		s.saveRecipe("Recipe Two")
		s.saveRecipe("Recipe Three")
		s.saveRecipe("Recipe Four")

		history, err := s.service.GetHistory(context.Background(), s.userID)
		require.NoError(s.T(), err)
		assert.Len(s.T(), history, 3)

		// The recipe row itself must survive.
		got, err := s.service.GetRecipe(context.Background(), first.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Shared Recipe", got.Title)
	})

	s.Run("InvalidRecipe_ReturnsValidationError", func() {
		s.SetupTest()

		_, err := s.service.SaveRecipe(context.Background(), s.userID, inbound.SaveRecipeCommand{
			Name:  "",
			Steps: []string{"Cook"},
		})
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

func (s *RecipeServiceTestSuite) TestGetHistory() {
	s.Run("NewestFirstWithTitles", func() {
		s.SetupTest()

		s.saveRecipe("Oldest")
		s.saveRecipe("Middle")
		s.saveRecipe("Newest")

		history, err := s.service.GetHistory(context.Background(), s.userID)
		require.NoError(s.T(), err)
		require.Len(s.T(), history, 3)

		assert.Equal(s.T(), "Newest", history[0].Title)
		assert.Equal(s.T(), "Oldest", history[2].Title)
		assert.False(s.T(), history[0].Cooked)
	})
}

func (s *RecipeServiceTestSuite) TestCookRecipe() {
	s.Run("ConsumesMatchingPantryItems", func() {
		s.SetupTest()

		saved := s.saveRecipe("Pasta Night")

		ctx := context.Background()
		newTestInventoryItems(s.T(), s.invRepo, s.userID, []string{"pasta", "Tomato", "Basil"})

		used, err := s.service.CookRecipe(ctx, s.userID, saved.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 2, used)

		// Basil stays, the matched rows are consumed.
		remaining, err := s.invRepo.ListByUser(ctx, s.userID)
		require.NoError(s.T(), err)
		require.Len(s.T(), remaining, 1)
		assert.Equal(s.T(), "Basil", remaining[0].Name())

		entry, err := s.historyRepo.FindByUserAndRecipe(ctx, s.userID, saved.ID)
		require.NoError(s.T(), err)
		assert.True(s.T(), entry.Cooked)
	})

	s.Run("NoHistoryEntry_CreatesCookedEntry", func() {
		s.SetupTest()

		// Recipe saved by a different user, so the cook has no entry yet.
		otherUser := testutils.NewUserFactory(s.db, 7).CreateUser(s.T())
		dto, err := s.service.SaveRecipe(context.Background(), otherUser.ID(), inbound.SaveRecipeCommand{
			Name:        "Borrowed Recipe",
			Ingredients: []string{"Rice"},
			Steps:       []string{"Boil"},
		})
		require.NoError(s.T(), err)

		used, err := s.service.CookRecipe(context.Background(), s.userID, dto.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 0, used)

		entry, err := s.historyRepo.FindByUserAndRecipe(context.Background(), s.userID, dto.ID)
		require.NoError(s.T(), err)
		assert.True(s.T(), entry.Cooked)
	})

	s.Run("DuplicateIngredientNames_ConsumeAtMostOneRow", func() {
		s.SetupTest()

		dto, err := s.service.SaveRecipe(context.Background(), s.userID, inbound.SaveRecipeCommand{
			Name:        "Double Tomato",
			Ingredients: []string{"Tomato", "tomato"},
			Steps:       []string{"Cook"},
		})
		require.NoError(s.T(), err)

		newTestInventoryItems(s.T(), s.invRepo, s.userID, []string{"Tomato", "Tomato Paste"})

		used, err := s.service.CookRecipe(context.Background(), s.userID, dto.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1, used)
	})

	s.Run("UnknownRecipe_ReturnsNotFound", func() {
		s.SetupTest()

		_, err := s.service.CookRecipe(context.Background(), s.userID, 9999)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeRecipeNotFound, apperrors.GetCode(err))
	})
}

func (s *RecipeServiceTestSuite) TestSuggest() {
	s.Run("UsesPantryWhenNoCustomIngredients", func() {
		s.SetupTest()

		newTestInventoryItems(s.T(), s.invRepo, s.userID, []string{"Eggs", "Flour"})
		s.engine.suggestions = []outbound.Suggestion{
			{Name: "Pancakes", Ingredients: []string{"Eggs", "Flour"}, ApproxTime: "20 minutes", Steps: []string{"Mix", "Fry"}},
		}

		got, err := s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{})
		require.NoError(s.T(), err)
		require.Len(s.T(), got, 1)
		assert.Equal(s.T(), "Pancakes", got[0].Name)
		assert.ElementsMatch(s.T(), []string{"Eggs", "Flour"}, s.engine.lastRequest.Ingredients)
	})

	s.Run("CustomIngredientsOverridePantry", func() {
		s.SetupTest()

		newTestInventoryItems(s.T(), s.invRepo, s.userID, []string{"Eggs"})

		_, err := s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{
			CustomIngredients: []string{"Tofu", "Kale"},
		})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), []string{"Tofu", "Kale"}, s.engine.lastRequest.Ingredients)
	})

	s.Run("DefaultsApplyWithoutLinkedPreferences", func() {
		s.SetupTest()

		_, err := s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Non-vegetarian", s.engine.lastRequest.DietaryPreference)
		assert.Equal(s.T(), "American", s.engine.lastRequest.Cuisine)
	})

	s.Run("IgnoreHistory_SkipsPreviousTitles", func() {
		s.SetupTest()

		saved := s.saveRecipe("Cooked Before")
		_, err := s.service.CookRecipe(context.Background(), s.userID, saved.ID)
		require.NoError(s.T(), err)

		_, err = s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{IgnoreHistory: true})
		require.NoError(s.T(), err)
		assert.Empty(s.T(), s.engine.lastRequest.PreviousTitles)

		_, err = s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), []string{"Cooked Before"}, s.engine.lastRequest.PreviousTitles)
	})

	s.Run("EngineFailure_YieldsEmptyListNotError", func() {
		s.SetupTest()

		s.engine.suggestions = nil

		got, err := s.service.Suggest(context.Background(), s.userID, inbound.SuggestCommand{})
		require.NoError(s.T(), err)
		assert.Empty(s.T(), got)
	})

	s.Run("UnknownUser_ReturnsNotFound", func() {
		s.SetupTest()

		_, err := s.service.Suggest(context.Background(), uuid.New(), inbound.SuggestCommand{})
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeUserNotFound, apperrors.GetCode(err))
	})
}

// newTestInventoryItems persists pantry rows directly through the repository
func newTestInventoryItems(t *testing.T, repo outbound.InventoryRepository, userID uuid.UUID, names []string) {
	t.Helper()
	for _, name := range names {
		item, err := inventoryDomain.NewItem(userID, name)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), item))
	}
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}
