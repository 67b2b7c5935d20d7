// Package storage provides the key/blob persistence port used by the
// user and admin stores. Each key holds one JSON document, mirroring the
// one-blob-per-slot layout the stores persist against.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned when a key has no stored value
	ErrKeyNotFound = errors.New("key not found")
)

// Store is a source and sink of named JSON blobs
type Store interface {
	// Read returns the blob stored under key, or ErrKeyNotFound
	Read(key string) ([]byte, error)
	// Write replaces the blob stored under key
	Write(key string, data []byte) error
	// Delete removes the blob stored under key, if any
	Delete(key string) error
}

// ReadJSON reads the blob under key and unmarshals it into v
func ReadJSON(s Store, key string, v interface{}) error {
	data, err := s.Read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %q: %w", key, err)
	}
	return nil
}

// WriteJSON marshals v and stores it under key
func WriteJSON(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return s.Write(key, data)
}
