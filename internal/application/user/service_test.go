package user

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
	"github.com/stockchef/stockchef/internal/infrastructure/security"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	apperrors "github.com/stockchef/stockchef/pkg/errors"
	"github.com/stockchef/stockchef/test/testutils"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service inbound.UserService
	auth    *security.AuthService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = testutils.NewTestDB(s.T())
	cfg := testutils.NewTestConfig()
	logger := zaptest.NewLogger(s.T())

	s.auth = security.NewAuthService(cfg, logger, nil)

	s.service = NewUserService(
		gormRepo.NewUserRepository(s.db),
		gormRepo.NewReferenceRepository(s.db),
		gormRepo.NewTxManager(s.db),
		s.auth,
		logger,
	)
}

func (s *UserServiceTestSuite) registerCommand() inbound.RegisterCommand {
	return inbound.RegisterCommand{
		Email:               "alice@example.com",
		Password:            "password123",
		FirstName:           "Alice",
		LastName:            "Smith",
		DietaryPreferenceID: 2,
		CuisineID:           2,
	}
}

func (s *UserServiceTestSuite) TestRegister() {
	s.Run("ValidCommand_CreatesUserWithToken", func() {
		s.SetupTest()

		result, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)
		require.NotNil(s.T(), result)

		assert.NotEmpty(s.T(), result.Token)
		assert.Equal(s.T(), "alice@example.com", result.User.Email)
		assert.Equal(s.T(), []string{"Vegetarian"}, result.User.DietaryPreferences)
		assert.Equal(s.T(), []string{"Italian"}, result.User.PreferredCuisines)

		claims, err := s.auth.ValidateToken(context.Background(), result.Token)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), result.User.ID.String(), claims.Subject)
	})

	s.Run("DuplicateEmail_ReturnsConflict", func() {
		s.SetupTest()

		_, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		_, err = s.service.Register(context.Background(), s.registerCommand())
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeEmailAlreadyExists, apperrors.GetCode(err))
	})

	s.Run("UnknownDietaryPreference_ReturnsError", func() {
		s.SetupTest()

		cmd := s.registerCommand()
		cmd.DietaryPreferenceID = 999

		_, err := s.service.Register(context.Background(), cmd)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeInvalidPreference, apperrors.GetCode(err))
	})

	s.Run("UnknownCuisine_ReturnsError", func() {
		s.SetupTest()

		cmd := s.registerCommand()
		cmd.CuisineID = 999

		_, err := s.service.Register(context.Background(), cmd)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeInvalidPreference, apperrors.GetCode(err))
	})
}

func (s *UserServiceTestSuite) TestLogin() {
	s.Run("ValidCredentials_ReturnsToken", func() {
		s.SetupTest()

		_, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		result, err := s.service.Login(context.Background(), "alice@example.com", "password123")
		require.NoError(s.T(), err)
		assert.NotEmpty(s.T(), result.Token)
	})

	s.Run("WrongPassword_ReturnsInvalidCredentials", func() {
		s.SetupTest()

		_, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		_, err = s.service.Login(context.Background(), "alice@example.com", "wrong-password")
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
	})

	s.Run("UnknownEmail_ReturnsInvalidCredentials", func() {
		s.SetupTest()

		_, err := s.service.Login(context.Background(), "nobody@example.com", "password123")
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeInvalidCredentials, apperrors.GetCode(err))
	})
}

func (s *UserServiceTestSuite) TestLogout() {
	s.Run("ValidToken_SucceedsWithoutRedis", func() {
		s.SetupTest()

		result, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		// Revocation is skipped when Redis is not configured.
		require.NoError(s.T(), s.service.Logout(context.Background(), result.Token))
	})

	s.Run("InvalidToken_ReturnsUnauthorized", func() {
		s.SetupTest()

		err := s.service.Logout(context.Background(), "not-a-token")
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeUnauthorized, apperrors.GetCode(err))
	})
}

func (s *UserServiceTestSuite) TestPreferences() {
	s.Run("GetPreferenceCatalogs_ReturnsSeededEntries", func() {
		s.SetupTest()

		catalogs, err := s.service.GetPreferenceCatalogs(context.Background())
		require.NoError(s.T(), err)

		assert.Len(s.T(), catalogs.DietaryPreferences, 7)
		assert.Len(s.T(), catalogs.Cuisines, 10)
		assert.Equal(s.T(), "Non-vegetarian", catalogs.DietaryPreferences[0].Name)
		assert.Equal(s.T(), "American", catalogs.Cuisines[0].Name)
	})

	s.Run("UpdatePreferences_ReplacesBoth", func() {
		s.SetupTest()

		result, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		updated, err := s.service.UpdatePreferences(context.Background(), result.User.ID, 3, 4)
		require.NoError(s.T(), err)

		assert.Equal(s.T(), []string{"Vegan"}, updated.DietaryPreferences)
		assert.Equal(s.T(), []string{"Indian"}, updated.PreferredCuisines)
	})

	s.Run("UpdatePreferences_UnknownUser_ReturnsNotFound", func() {
		s.SetupTest()

		_, err := s.service.UpdatePreferences(context.Background(), uuid.New(), 1, 1)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeUserNotFound, apperrors.GetCode(err))
	})

	s.Run("UpdatePreferences_UnknownPreference_ReturnsError", func() {
		s.SetupTest()

		result, err := s.service.Register(context.Background(), s.registerCommand())
		require.NoError(s.T(), err)

		_, err = s.service.UpdatePreferences(context.Background(), result.User.ID, 999, 1)
		require.Error(s.T(), err)
		assert.Equal(s.T(), apperrors.CodeInvalidPreference, apperrors.GetCode(err))
	})
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
