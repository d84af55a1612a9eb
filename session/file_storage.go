package session

import (
	"fmt"
	"os"
	"strings"
)

// FileStorage persists the token as a single 0600 file.
type FileStorage struct {
	path string
}

// NewFileStorage creates storage backed by the file at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted token. A missing file means no session.
func (f *FileStorage) Load() (string, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save writes the token, readable by the current user only.
func (f *FileStorage) Save(token string) error {
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the token file.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
