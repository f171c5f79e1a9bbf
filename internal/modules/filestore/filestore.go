// Package filestore stores uploaded binary assets (gallery photos, 3D model
// files) behind a small interface so the disk backend can be swapped for an
// object store later.
package filestore

import (
	"io"
)

// Store persists named blobs. Put returns the storage key the blob can be
// fetched back under; keys are opaque to callers.
type Store interface {
	Put(filename string, r io.Reader) (key string, err error)
	Get(key string) (io.ReadCloser, error)
	List() ([]string, error)
	Delete(key string) error
}
