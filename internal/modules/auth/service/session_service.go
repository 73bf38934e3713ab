package service

import (
	"context"
	"strings"

	"medtrack/internal/modules/auth/domain"
	authout "medtrack/internal/modules/auth/port/out"
)

// SessionService performs the network and storage steps of the session
// lifecycle. It holds no state; the usecase layer owns the state machine.
type SessionService struct {
	api    authout.AuthAPI
	tokens authout.TokenStore
}

func NewSessionService(api authout.AuthAPI, tokens authout.TokenStore) *SessionService {
	return &SessionService{api: api, tokens: tokens}
}

func (s *SessionService) StoredToken(ctx context.Context) (string, error) {
	return s.tokens.Load(ctx)
}

// Authenticate exchanges credentials for a token and persists it. The email
// is trimmed and lower-cased before transmission.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (string, error) {
	result, err := s.api.Login(ctx, normalizeEmail(email), password)
	if err != nil {
		return "", err
	}
	if err := s.tokens.Save(ctx, result.Token); err != nil {
		return "", err
	}
	return result.Token, nil
}

func (s *SessionService) FetchUser(ctx context.Context, token string) (domain.User, error) {
	return s.api.CurrentUser(ctx, token)
}

func (s *SessionService) DiscardToken(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

func (s *SessionService) Register(ctx context.Context, name, email, password string) (authout.RegisterResult, error) {
	return s.api.Register(ctx, name, normalizeEmail(email), password)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
