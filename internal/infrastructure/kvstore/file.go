package kvstore

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
)

// FileStore keeps one JSON file per slot. Writes go through a temp file and
// rename so a crash never leaves a torn slot behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create kv dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if crerr.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "read slot %s", key)
	}
	return data, true, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".slot-*")
	if err != nil {
		return crerr.Wrapf(err, "create temp for slot %s", key)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write slot %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "sync slot %s", key)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close slot %s", key)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return crerr.Wrapf(err, "replace slot %s", key)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !crerr.Is(err, fs.ErrNotExist) {
		return crerr.Wrapf(err, "delete slot %s", key)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
