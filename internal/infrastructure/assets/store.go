package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/teamsite/content-api/internal/core/domain"
)

// CanonicalExt is the extension of the single stored image format.
const CanonicalExt = ".webp"

// FileStore keeps zero or one image per record id in a flat directory,
// named <id>.webp. A flock on the directory guarantees a single process owns
// it; writes within the process are safe because each record id maps to one
// file and the HTTP layer serializes per-record activity client-side.
type FileStore struct {
	dir  string
	lock *flock.Flock
}

// Open creates the directory if needed and acquires the ownership lock.
// A second Open on the same directory fails while the first store is open.
func Open(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock asset dir: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("asset dir %s is locked by another process", dir)
	}

	return &FileStore{dir: dir, lock: lock}, nil
}

// Close releases the directory lock.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}

// Write stores canonical-format bytes for a record id, replacing any previous
// asset for that id regardless of its extension.
func (s *FileStore) Write(id string, data []byte) error {
	if err := s.Remove(id); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, id+CanonicalExt), data, 0o644)
}

// Remove deletes every file owned by id. Missing files are a no-op so
// concurrent sweeps stay safe.
func (s *FileStore) Remove(id string) error {
	names, err := s.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		if domain.AssetOwner(name) != id {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *FileStore) Exists(id string) bool {
	_, err := os.Stat(filepath.Join(s.dir, id+CanonicalExt))
	return err == nil
}

// List enumerates stored asset filenames, skipping the lock file and
// subdirectories.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// FilePath resolves a stored filename for serving. Names containing path
// separators or traversal segments are rejected.
func (s *FileStore) FilePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", domain.ErrAssetNotFound
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrAssetNotFound
	}
	return path, nil
}
