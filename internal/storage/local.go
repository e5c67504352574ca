// Package storage хранит загруженные файлы книг
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix - префикс, под которым файлы раздаются по HTTP
const URLPrefix = "/uploads"

// LocalStore сохраняет файлы в каталог на диске
type LocalStore struct {
	dir string
}

// NewLocalStore создает каталог, если его нет
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir возвращает каталог хранения
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save записывает содержимое под новым UUID-именем с расширением ext и возвращает публичный URL
func (s *LocalStore) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := uuid.NewString() + ext

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return path.Join(URLPrefix, name), nil
}

// Remove удаляет файл по его публичному URL
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || !strings.HasPrefix(url, URLPrefix+"/") {
		return fmt.Errorf("not a stored file url: %s", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("[Storage] Не удалось удалить %s: %v", name, err)
		return err
	}
	return nil
}
