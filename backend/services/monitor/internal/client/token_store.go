package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const tokenFileName = "token.json"

type tokenFile struct {
	Token string `json:"token"`
}

// TokenStore persists the bearer token across runs in the data directory.
// With an empty directory the store is a no-op and Load always misses.
type TokenStore struct {
	dir string
}

// NewTokenStore returns a store rooted at dir.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	if s.dir == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("token store: read: %w", err)
	}
	var file tokenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("token store: parse: %w", err)
	}
	return file.Token, nil
}

// Save persists the token. No-op without a data directory.
func (s *TokenStore) Save(token string) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("token store: mkdir: %w", err)
	}
	data, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return fmt.Errorf("token store: marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFileName), data, 0o600); err != nil {
		return fmt.Errorf("token store: write: %w", err)
	}
	return nil
}

// Clear drops the persisted token.
func (s *TokenStore) Clear() error {
	if s.dir == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("token store: clear: %w", err)
	}
	return nil
}
