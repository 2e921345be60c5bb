package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	gormRepo "github.com/stockchef/stockchef/internal/infrastructure/persistence/gorm"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	apperrors "github.com/stockchef/stockchef/pkg/errors"
	"github.com/stockchef/stockchef/test/testutils"
)

// stubExtractor returns a fixed list of item names for any image
type stubExtractor struct {
	items []string
}

func (e *stubExtractor) ExtractItems(ctx context.Context, imageData []byte, contentType string) []string {
	return e.items
}

type InventoryServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   inbound.InventoryService
	extractor *stubExtractor
	userID    uuid.UUID
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.db = testutils.NewTestDB(s.T())
	s.extractor = &stubExtractor{}

	s.service = NewInventoryService(
		gormRepo.NewInventoryRepository(s.db),
		gormRepo.NewTxManager(s.db),
		s.extractor,
		zaptest.NewLogger(s.T()),
	)

	factory := testutils.NewUserFactory(s.db, 1)
	s.userID = factory.CreateUser(s.T()).ID()
}

func (s *InventoryServiceTestSuite) TestAddItem() {
	s.Run("NewItem_PersistsWithSubmittedCasing", func() {
		s.SetupTest()

		item, err := s.service.AddItem(context.Background(), s.userID, "Cherry Tomatoes")
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Cherry Tomatoes", item.Name)
		assert.NotZero(s.T(), item.ID)
	})

	s.Run("CaseInsensitiveDuplicate_ReturnsStoredRow", func() {
		s.SetupTest()

		first, err := s.service.AddItem(context.Background(), s.userID, "Basil")
		require.NoError(s.T(), err)

		second, err := s.service.AddItem(context.Background(), s.userID, "BASIL")
		require.NoError(s.T(), err)

		assert.Equal(s.T(), first.ID, second.ID)
		assert.Equal(s.T(), "Basil", second.Name)

		items, err := s.service.ListItems(context.Background(), s.userID)
		require.NoError(s.T(), err)
		assert.Len(s.T(), items, 1)
	})

	s.Run("BlankName_ReturnsValidationError", func() {
		s.SetupTest()

		_, err := s.service.AddItem(context.Background(), s.userID, "   ")
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

func (s *InventoryServiceTestSuite) TestAddItems() {
	s.Run("CountsOnlyNewItems", func() {
		s.SetupTest()

		_, err := s.service.AddItem(context.Background(), s.userID, "Milk")
		require.NoError(s.T(), err)

		added, err := s.service.AddItems(context.Background(), s.userID, []string{"milk", "Eggs", "Butter"})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 2, added)

		items, err := s.service.ListItems(context.Background(), s.userID)
		require.NoError(s.T(), err)
		assert.Len(s.T(), items, 3)
	})

	s.Run("BlankNamesAreSkipped", func() {
		s.SetupTest()

		added, err := s.service.AddItems(context.Background(), s.userID, []string{"", "  ", "Flour"})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1, added)
	})

	s.Run("InBatchDuplicates_CheckedAgainstPreBatchState", func() {
		s.SetupTest()

		// Both spellings are new relative to the pantry before the batch,
		// so both rows are inserted.
		added, err := s.service.AddItems(context.Background(), s.userID, []string{"Onion", "onion"})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 2, added)
	})

	s.Run("EmptyBatch_AddsNothing", func() {
		s.SetupTest()

		added, err := s.service.AddItems(context.Background(), s.userID, nil)
		require.NoError(s.T(), err)
		assert.Zero(s.T(), added)
	})
}

func (s *InventoryServiceTestSuite) TestAddItemsFromImage() {
	s.Run("ExtractedItemsAreReconciled", func() {
		s.SetupTest()

		s.extractor.items = []string{"Apples", "Oranges"}

		added, err := s.service.AddItemsFromImage(context.Background(), s.userID, []byte("fake-image"), "image/jpeg")
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 2, added)
	})

	s.Run("NoFoodDetected_SucceedsWithZero", func() {
		s.SetupTest()

		s.extractor.items = nil

		added, err := s.service.AddItemsFromImage(context.Background(), s.userID, []byte("fake-image"), "image/png")
		require.NoError(s.T(), err)
		assert.Zero(s.T(), added)
	})
}

func (s *InventoryServiceTestSuite) TestDeleteItem() {
	s.Run("ExistingItem_IsRemoved", func() {
		s.SetupTest()

		item, err := s.service.AddItem(context.Background(), s.userID, "Yogurt")
		require.NoError(s.T(), err)

		require.NoError(s.T(), s.service.DeleteItem(context.Background(), s.userID, item.ID))

		items, err := s.service.ListItems(context.Background(), s.userID)
		require.NoError(s.T(), err)
		assert.Empty(s.T(), items)
	})

	s.Run("UnknownItem_ReturnsNotFound", func() {
		s.SetupTest()

		err := s.service.DeleteItem(context.Background(), s.userID, 9999)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeItemNotFound, apperrors.GetCode(err))
	})

	s.Run("OtherUsersItem_IsNotVisible", func() {
		s.SetupTest()

		otherUser := testutils.NewUserFactory(s.db, 2).CreateUser(s.T())
		item, err := s.service.AddItem(context.Background(), otherUser.ID(), "Cheese")
		require.NoError(s.T(), err)

		err = s.service.DeleteItem(context.Background(), s.userID, item.ID)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeItemNotFound, apperrors.GetCode(err))
	})
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
