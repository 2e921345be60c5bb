// Package inventory provides the application layer for pantry management
package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/domain/inventory"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	apperrors "github.com/stockchef/stockchef/pkg/errors"
)

// InventoryService implements the pantry use cases
type InventoryService struct {
	invRepo   outbound.InventoryRepository
	txMgr     outbound.TxManager
	extractor outbound.ImageExtractionEngine
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	invRepo outbound.InventoryRepository,
	txMgr outbound.TxManager,
	extractor outbound.ImageExtractionEngine,
	logger *zap.Logger,
) inbound.InventoryService {
	return &InventoryService{
		invRepo:   invRepo,
		txMgr:     txMgr,
		extractor: extractor,
		logger:    logger.Named("inventory-service"),
	}
}

// ListItems returns the user's pantry in insertion order
func (s *InventoryService) ListItems(ctx context.Context, userID uuid.UUID) ([]inbound.ItemDTO, error) {
	items, err := s.invRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list inventory", err)
	}

	dtos := make([]inbound.ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toItemDTO(item))
	}
	return dtos, nil
}

// AddItem adds a single item. When a case-insensitive match already
// exists the stored row is returned unchanged, so the call is idempotent.
func (s *InventoryService) AddItem(ctx context.Context, userID uuid.UUID, name string) (*inbound.ItemDTO, error) {
	existing, err := s.invRepo.FindByNameFold(ctx, userID, name)
	if err == nil {
		dto := toItemDTO(existing)
		return &dto, nil
	}
	if !errors.Is(err, inventory.ErrItemNotFound) {
		return nil, apperrors.NewDatabaseError("check inventory", err)
	}

	item, err := inventory.NewItem(userID, name)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.invRepo.Create(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("create item", err)
	}

	dto := toItemDTO(item)
	return &dto, nil
}

// DeleteItem removes the user's item
func (s *InventoryService) DeleteItem(ctx context.Context, userID uuid.UUID, itemID uint) error {
	err := s.invRepo.Delete(ctx, userID, itemID)
	if errors.Is(err, inventory.ErrItemNotFound) {
		return apperrors.NewItemNotFoundError(itemID)
	}
	if err != nil {
		return apperrors.NewDatabaseError("delete item", err)
	}
	return nil
}

// AddItems reconciles a batch of names against the pantry inside one
// transaction and returns the number of rows inserted. Each name is
// checked with case-insensitive full-string equality against the state
// as it was before the batch; names already present are skipped silently,
// and duplicates inside the batch are each checked against that same
// pre-batch state.
func (s *InventoryService) AddItems(ctx context.Context, userID uuid.UUID, names []string) (int, error) {
	added := 0

	err := s.txMgr.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.invRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		preBatch := make(map[string]bool, len(existing))
		for _, item := range existing {
			preBatch[strings.ToLower(item.Name())] = true
		}

		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if preBatch[strings.ToLower(name)] {
				continue
			}

			item, err := inventory.NewItem(userID, name)
			if err != nil {
				return err
			}
			if err := s.invRepo.Create(ctx, item); err != nil {
				return err
			}
			added++
		}

		return nil
	})
	if err != nil {
		return 0, apperrors.NewDatabaseError("add items", err)
	}

	s.logger.Info("Reconciled inventory batch",
		zap.String("user_id", userID.String()),
		zap.Int("submitted", len(names)),
		zap.Int("added", added),
	)

	return added, nil
}

// AddItemsFromImage extracts item names from a photo and reconciles them.
// An image with no detected food succeeds with zero additions.
func (s *InventoryService) AddItemsFromImage(ctx context.Context, userID uuid.UUID, imageData []byte, contentType string) (int, error) {
	names := s.extractor.ExtractItems(ctx, imageData, contentType)
	if len(names) == 0 {
		s.logger.Info("No food detected in image", zap.String("user_id", userID.String()))
		return 0, nil
	}

	return s.AddItems(ctx, userID, names)
}

func toItemDTO(i *inventory.Item) inbound.ItemDTO {
	return inbound.ItemDTO{
		ID:      i.ID(),
		Name:    i.Name(),
		AddedAt: i.AddedAt(),
	}
}
