package filestorage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"job-application-backend/config"
	"job-application-backend/lib/file-storage/storage"
	s3client "job-application-backend/s3"
)

type Provider interface {
	SaveResume(ctx context.Context, key string, body []byte, contentType string) error
	GetResume(ctx context.Context, key string) ([]byte, error)
	DeleteResume(ctx context.Context, key string) error
	ResumeExists(ctx context.Context, key string) (bool, error)
	ResumeURL(key string) string
}

var Instance Provider

func NewHandler(ctx context.Context) error {
	backend, err := newBackend(ctx)
	if err != nil {
		return err
	}
	Instance = &impl{store: backend}
	log.WithField("backend", config.Conf.FileStore.Backend).Info("файловое хранилище инициализировано")
	return nil
}

// newBackend - выбор бэкенда хранения по конфигурации
func newBackend(ctx context.Context) (storage.Provider, error) {
	switch config.Conf.FileStore.Backend {
	case "s3":
		return storage.NewS3(ctx, s3client.Client, config.Conf.S3.BucketName)
	case "local":
		return storage.NewLocal(config.Conf.FileStore.LocalPath)
	}
	return nil, errors.Errorf("неподдерживаемый бэкенд файлового хранилища: %s", config.Conf.FileStore.Backend)
}

// BuildResumeKey - уникальный ключ объекта резюме
func BuildResumeKey(candidateID, ext string) string {
	return fmt.Sprintf("resumes/%s/%s.%s", candidateID, uuid.NewString(), ext)
}

type impl struct {
	store storage.Provider
}

func (i impl) SaveResume(ctx context.Context, key string, body []byte, contentType string) error {
	return i.store.Save(ctx, key, body, contentType)
}

func (i impl) GetResume(ctx context.Context, key string) ([]byte, error) {
	return i.store.Get(ctx, key)
}

func (i impl) DeleteResume(ctx context.Context, key string) error {
	return i.store.Delete(ctx, key)
}

func (i impl) ResumeExists(ctx context.Context, key string) (bool, error) {
	return i.store.Exists(ctx, key)
}

func (i impl) ResumeURL(key string) string {
	return i.store.URL(key)
}
