// Package user provides the application layer for accounts and preferences
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/domain/user"
	"github.com/stockchef/stockchef/internal/infrastructure/security"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	"github.com/stockchef/stockchef/pkg/errors"
)

// UserService implements the user use cases
type UserService struct {
	userRepo outbound.UserRepository
	refRepo  outbound.ReferenceRepository
	txMgr    outbound.TxManager
	auth     *security.AuthService
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	refRepo outbound.ReferenceRepository,
	txMgr outbound.TxManager,
	auth *security.AuthService,
	logger *zap.Logger,
) inbound.UserService {
	return &UserService{
		userRepo: userRepo,
		refRepo:  refRepo,
		txMgr:    txMgr,
		auth:     auth,
		logger:   logger.Named("user-service"),
	}
}

// Register creates an account with one preference of each category and
// returns a bearer token
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	s.logger.Info("Registering user", zap.String("email", cmd.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email existence", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	dietary, err := s.refRepo.FindDietaryPreference(ctx, cmd.DietaryPreferenceID)
	if err != nil {
		return nil, errors.NewInvalidPreferenceError("dietary preference", cmd.DietaryPreferenceID)
	}
	cuisine, err := s.refRepo.FindCuisine(ctx, cmd.CuisineID)
	if err != nil {
		return nil, errors.NewInvalidPreferenceError("cuisine", cmd.CuisineID)
	}

	entity, err := user.NewUser(cmd.Email, cmd.Password, cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	entity.SetPreferences([]user.DietaryPreference{*dietary}, []user.Cuisine{*cuisine})

	err = s.txMgr.InTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, entity); err != nil {
			return err
		}
		return s.userRepo.ReplacePreferences(ctx, entity.ID(), []int{dietary.ID}, []int{cuisine.ID})
	})
	if err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	token, err := s.auth.GenerateAccessToken(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token")
	}

	s.logger.Info("User registered", zap.String("user_id", entity.ID().String()))

	return &inbound.AuthResult{Token: token, User: toUserDTO(entity)}, nil
}

// Login verifies credentials and returns a bearer token
func (s *UserService) Login(ctx context.Context, email, password string) (*inbound.AuthResult, error) {
	entity, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := entity.CheckPassword(password); err != nil {
		s.logger.Info("Login failed", zap.String("email", email))
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.auth.GenerateAccessToken(entity.ID(), entity.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token")
	}

	return &inbound.AuthResult{Token: token, User: toUserDTO(entity)}, nil
}

// Logout revokes the presented token
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.auth.ValidateToken(ctx, token)
	if err != nil {
		return errors.NewUnauthorizedError("")
	}

	if err := s.auth.RevokeToken(ctx, claims); err != nil {
		s.logger.Warn("Failed to revoke token", zap.Error(err))
	}
	return nil
}

// GetProfile returns the user's profile with preference names
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	entity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	dto := toUserDTO(entity)
	return &dto, nil
}

// GetPreferenceCatalogs returns both seeded catalogs
func (s *UserService) GetPreferenceCatalogs(ctx context.Context) (*inbound.PreferenceCatalogsDTO, error) {
	dietary, err := s.refRepo.ListDietaryPreferences(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list dietary preferences", err)
	}
	cuisines, err := s.refRepo.ListCuisines(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list cuisines", err)
	}

	catalogs := &inbound.PreferenceCatalogsDTO{
		DietaryPreferences: make([]inbound.CatalogEntryDTO, 0, len(dietary)),
		Cuisines:           make([]inbound.CatalogEntryDTO, 0, len(cuisines)),
	}
	for _, d := range dietary {
		catalogs.DietaryPreferences = append(catalogs.DietaryPreferences, inbound.CatalogEntryDTO{
			ID: d.ID, Name: d.Name, Description: d.Description,
		})
	}
	for _, c := range cuisines {
		catalogs.Cuisines = append(catalogs.Cuisines, inbound.CatalogEntryDTO{
			ID: c.ID, Name: c.Name, Description: c.Description,
		})
	}

	return catalogs, nil
}

// UpdatePreferences replaces both preference associations
func (s *UserService) UpdatePreferences(ctx context.Context, userID uuid.UUID, dietaryID, cuisineID int) (*inbound.UserDTO, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	dietary, err := s.refRepo.FindDietaryPreference(ctx, dietaryID)
	if err != nil {
		return nil, errors.NewInvalidPreferenceError("dietary preference", dietaryID)
	}
	cuisine, err := s.refRepo.FindCuisine(ctx, cuisineID)
	if err != nil {
		return nil, errors.NewInvalidPreferenceError("cuisine", cuisineID)
	}

	err = s.txMgr.InTx(ctx, func(ctx context.Context) error {
		return s.userRepo.ReplacePreferences(ctx, userID, []int{dietary.ID}, []int{cuisine.ID})
	})
	if err != nil {
		return nil, errors.NewDatabaseError("update preferences", err)
	}

	return s.GetProfile(ctx, userID)
}

func toUserDTO(u *user.User) inbound.UserDTO {
	dietary := make([]string, 0, len(u.DietaryPreferences()))
	for _, d := range u.DietaryPreferences() {
		dietary = append(dietary, d.Name)
	}
	cuisines := make([]string, 0, len(u.PreferredCuisines()))
	for _, c := range u.PreferredCuisines() {
		cuisines = append(cuisines, c.Name)
	}

	return inbound.UserDTO{
		ID:                 u.ID(),
		Email:              u.Email(),
		FirstName:          u.FirstName(),
		LastName:           u.LastName(),
		DietaryPreferences: dietary,
		PreferredCuisines:  cuisines,
		CreatedAt:          u.CreatedAt(),
	}
}
