package api

import (
	"os"
	"path/filepath"
	"strings"
)

// FileTokenStore keeps the bearer token in a 0600 file, the CLI analog of
// the dashboard's single persisted `token` entry in browser storage.
type FileTokenStore struct {
	Path string
}

// DefaultTokenStore stores the token under the user's home directory.
func DefaultTokenStore() *FileTokenStore {
	home, _ := os.UserHomeDir()
	return &FileTokenStore{Path: filepath.Join(home, ".onepercent_token")}
}

func (s *FileTokenStore) Token() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileTokenStore) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}
