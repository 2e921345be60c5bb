package outbound

import "context"

// FileStore persists uploaded files and returns a key for later retrieval.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
