package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type diskStore struct{ dir string }

// NewDiskStore creates the directory if needed and stores blobs as flat files
// inside it. Keys are "<uuid>_<sanitized original name>" so uploads with the
// same filename never collide.
func NewDiskStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Put(filename string, r io.Reader) (string, error) {
	key := uuid.New().String() + "_" + sanitize(filename)
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return key, nil
}

func (s *diskStore) Get(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, sanitize(key)))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *diskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

func (s *diskStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, sanitize(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// sanitize keeps keys inside the store directory and strips characters that
// are awkward in URLs.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
