package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// localImpl - хранение файлов в локальной файловой системе
type localImpl struct {
	baseDir string
}

func NewLocal(baseDir string) (Provider, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "ошибка создания каталога файлового хранилища")
	}
	return &localImpl{baseDir: baseDir}, nil
}

func (l localImpl) Save(ctx context.Context, key string, body []byte, contentType string) error {
	path := l.filePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "ошибка создания каталога для файла")
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return errors.Wrap(err, "ошибка записи файла")
	}
	return nil
}

func (l localImpl) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := os.ReadFile(l.filePath(key))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return body, nil
}

func (l localImpl) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.filePath(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "ошибка удаления файла")
	}
	return nil
}

func (l localImpl) URL(key string) string {
	return l.filePath(key)
}

func (l localImpl) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(l.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l localImpl) filePath(key string) string {
	// путь не должен выходить за пределы базового каталога
	clean := filepath.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	return filepath.Join(l.baseDir, clean)
}
