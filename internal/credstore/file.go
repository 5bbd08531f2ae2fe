package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store as a JSON file on disk.
// This is the default backend for the CLI: the file plays the role
// the browser's localStorage played in the web app.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the stored credential pair.
func (s *FileStore) Get(ctx context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read tokens file %s: %w", s.path, err)
	}

	var creds Credentials
	if err = json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse tokens file %s: %w", s.path, err)
	}

	if creds.Empty() {
		return Credentials{}, ErrNotFound
	}

	return creds, nil
}

// Set overwrites the stored credential pair.
func (s *FileStore) Set(ctx context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create tokens dir: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Tokens are secrets, keep the file readable only by the owner.
	if err = os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write tokens file %s: %w", s.path, err)
	}

	return nil
}

// Clear removes the stored credential pair.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
