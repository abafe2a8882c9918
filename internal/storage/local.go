package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hirogwa/highland/internal/apperr"
)

// Local stores artifacts on disk under a root directory that the server
// exposes read-only over HTTP. The content type is determined at serve time,
// so it is accepted here only to keep the upload call surface uniform.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Upload(data []byte, folder, key, contentType string) error {
	dir := filepath.Join(l.root, folder, filepath.Dir(key))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, apperr.ErrStorage)
	}
	path := filepath.Join(l.root, folder, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, apperr.ErrStorage)
	}
	return nil
}

func (l *Local) Delete(folder, key string) error {
	path := filepath.Join(l.root, folder, key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", path, apperr.ErrStorage)
	}
	return nil
}

func (l *Local) DeleteFolder(folder string) error {
	path := filepath.Join(l.root, folder)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete folder %s: %w", path, apperr.ErrStorage)
	}
	return nil
}
