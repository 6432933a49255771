package storage

import (
	"context"
)

// Provider - бэкенд хранения бинарных файлов,
// ядро не зависит от того какой из них настроен
type Provider interface {
	Save(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Exists(ctx context.Context, key string) (bool, error)
}
