// Package storage provides local disk storage for uploaded files
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockchef/stockchef/internal/ports/outbound"
)

// LocalStore persists files under a base directory on local disk.
// Keys are generated server-side so client-supplied names never touch
// the filesystem path.
type LocalStore struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStore creates a local file store rooted at basePath
func NewLocalStore(basePath string, logger *zap.Logger) (outbound.FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
		logger:   logger.Named("local-store"),
	}, nil
}

// Save writes the data to disk and returns the generated key
func (s *LocalStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ext := extensionForContentType(contentType)
	if ext == "" {
		ext = filepath.Ext(name)
	}

	key := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.New().String(), ext)

	path := filepath.Join(s.basePath, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Stored file",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	return key, nil
}

// Load reads a previously saved file
func (s *LocalStore) Load(ctx context.Context, key string) ([]byte, error) {
	if strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return nil, fmt.Errorf("invalid storage key")
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes a stored file
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return fmt.Errorf("invalid storage key")
	}

	if err := os.Remove(filepath.Join(s.basePath, key)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
