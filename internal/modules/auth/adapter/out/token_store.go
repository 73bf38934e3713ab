package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	authout "medtrack/internal/modules/auth/port/out"
	apperrors "medtrack/internal/platform/errors"
)

// FileTokenStore persists the opaque bearer token as a small JSON file under
// the medtrack home dir.
type FileTokenStore struct {
	path string
}

type tokenFile struct {
	Token string `json:"token"`
}

func NewFileTokenStore(path string) authout.TokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	payload, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Load(_ context.Context) (string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	var tf tokenFile
	if err := json.Unmarshal(payload, &tf); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tf.Token == "" {
		return "", apperrors.ErrNoToken
	}
	return tf.Token, nil
}

func (s *FileTokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
