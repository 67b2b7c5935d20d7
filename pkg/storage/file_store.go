package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore implements Store with one <key>.json file per key under a
// root directory.
type FileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore creates a FileStore rooted at root on the given filesystem.
// A nil fs uses the OS filesystem.
func NewFileStore(fs afero.Fs, root string) (*FileStore, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{fs: fs, root: root}, nil
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Read implements Store
func (s *FileStore) Read(key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return data, nil
}

// Write implements Store. The blob is written to a temp file and renamed
// into place so readers never see a partial document.
func (s *FileStore) Write(key string, data []byte) error {
	path := s.keyPath(key)
	tmp := path + ".tmp"

	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replacing %q: %w", key, err)
	}
	return nil
}

// Delete implements Store
func (s *FileStore) Delete(key string) error {
	err := s.fs.Remove(s.keyPath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}
