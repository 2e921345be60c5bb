package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/internal/ports/inbound"
	"github.com/stockchef/stockchef/internal/ports/outbound"
	"github.com/stockchef/stockchef/pkg/errors"
)

// InventoryHandlers handles pantry endpoints
type InventoryHandlers struct {
	invService inbound.InventoryService
	fileStore  outbound.FileStore
	config     *config.Config
	logger     *zap.Logger
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(
	invService inbound.InventoryService,
	fileStore outbound.FileStore,
	cfg *config.Config,
	logger *zap.Logger,
) *InventoryHandlers {
	return &InventoryHandlers{
		invService: invService,
		fileStore:  fileStore,
		config:     cfg,
		logger:     logger.Named("inventory-handlers"),
	}
}

type addItemRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type addItemsRequest struct {
	Names []string `json:"names" binding:"required"`
}

// ListItems handles GET /api/v1/inventory
func (h *InventoryHandlers) ListItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.invService.ListItems(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddItem handles POST /api/v1/inventory/items
func (h *InventoryHandlers) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.invService.AddItem(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// DeleteItem handles DELETE /api/v1/inventory/items/:id
func (h *InventoryHandlers) DeleteItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, errors.NewBadRequestError("Invalid item id"))
		return
	}

	if err := h.invService.DeleteItem(c.Request.Context(), userID, uint(itemID)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// AddItemsBulk handles POST /api/v1/inventory/items/bulk
func (h *InventoryHandlers) AddItemsBulk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req addItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	added, err := h.invService.AddItems(c.Request.Context(), userID, req.Names)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items_added": added})
}

// UploadImage handles POST /api/v1/inventory/image
func (h *InventoryHandlers) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.NewBadRequestError("Image file is required"))
		return
	}

	if fileHeader.Size > h.config.Storage.MaxFileSize {
		respondError(c, errors.NewImageTooLargeError(h.config.Storage.MaxFileSize))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !h.isAllowedType(contentType) {
		respondError(c, errors.NewUnsupportedImageTypeError(contentType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.NewInternalError("Failed to read upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.config.Storage.MaxFileSize+1))
	if err != nil {
		respondError(c, errors.NewInternalError("Failed to read upload"))
		return
	}
	if int64(len(data)) > h.config.Storage.MaxFileSize {
		respondError(c, errors.NewImageTooLargeError(h.config.Storage.MaxFileSize))
		return
	}

	key, err := h.fileStore.Save(c.Request.Context(), fileHeader.Filename, data, contentType)
	if err != nil {
		h.logger.Warn("Failed to persist uploaded image", zap.Error(err))
	}

	added, err := h.invService.AddItemsFromImage(c.Request.Context(), userID, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items_added": added,
		"image_key":   key,
	})
}

func (h *InventoryHandlers) isAllowedType(contentType string) bool {
	for _, allowed := range h.config.Storage.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
