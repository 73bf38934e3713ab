package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	authout "medtrack/internal/modules/auth/adapter/out"
	"medtrack/internal/modules/auth/domain"
	"medtrack/internal/modules/auth/dto"
	authport "medtrack/internal/modules/auth/port/out"
	"medtrack/internal/modules/auth/service"
	"medtrack/internal/modules/auth/usecase"
	apperrors "medtrack/internal/platform/errors"
)

type fakeAuthAPI struct {
	mu         sync.Mutex
	loginEmail string
	loginPass  string

	loginErr error
	token    string
	// tokens, when non-empty, is consumed one per login call; token is the
	// fallback.
	tokens       []string
	user         domain.User
	userErr      error
	userByTok    map[string]domain.User
	userErrByTok map[string]error
	// blockUser stalls CurrentUser until closed; blockTok restricts the
	// stall to one token.
	blockUser  chan struct{}
	blockTok   string
	loginCalls int
	userCalls  int
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (authport.LoginResult, error) {
	f.mu.Lock()
	f.loginCalls++
	f.loginEmail = email
	f.loginPass = password
	tok := f.token
	if len(f.tokens) > 0 {
		tok = f.tokens[0]
		f.tokens = f.tokens[1:]
	}
	f.mu.Unlock()
	if f.loginErr != nil {
		return authport.LoginResult{}, f.loginErr
	}
	return authport.LoginResult{Token: tok, Email: email}, nil
}

func (f *fakeAuthAPI) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

func (f *fakeAuthAPI) userCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userCalls
}

func (f *fakeAuthAPI) Register(_ context.Context, name, email, _ string) (authport.RegisterResult, error) {
	return authport.RegisterResult{Message: "registered " + name + " <" + email + ">", UserID: 42}, nil
}

func (f *fakeAuthAPI) CurrentUser(_ context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	f.userCalls++
	f.mu.Unlock()
	if f.blockUser != nil && (f.blockTok == "" || token == f.blockTok) {
		<-f.blockUser
	}
	if err, ok := f.userErrByTok[token]; ok {
		return domain.User{}, err
	}
	if f.userErr != nil {
		return domain.User{}, f.userErr
	}
	if u, ok := f.userByTok[token]; ok {
		return u, nil
	}
	return f.user, nil
}

func newInteractor(t *testing.T, api *fakeAuthAPI) (interface {
	Init(context.Context) dto.SessionOutput
	Login(context.Context, dto.LoginInput) (dto.SessionOutput, error)
	Logout() dto.SessionOutput
	Register(context.Context, dto.RegisterInput) (dto.RegisterOutput, error)
	Current() dto.SessionOutput
	Token() (string, error)
}, string) {
	t.Helper()
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	tokens := authout.NewFileTokenStore(tokenPath)
	return usecase.NewInteractor(service.NewSessionService(api, tokens)), tokenPath
}

func TestInitWithoutStoredToken(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{}
	uc, _ := newInteractor(t, api)

	out := uc.Init(context.Background())
	if out.Authenticated || out.Loading {
		t.Fatalf("expected settled unauthenticated state: %+v", out)
	}
	if out.Err != "" {
		t.Fatalf("missing token must not record an error, got %q", out.Err)
	}
	if api.userCalls != 0 {
		t.Fatalf("no token means no network call, got %d", api.userCalls)
	}
}

func TestInitWithRejectedTokenClearsItAndReportsSessionExpired(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{userErr: &apperrors.APIError{Status: http.StatusUnauthorized, Message: "token expired"}}
	uc, tokenPath := newInteractor(t, api)
	if err := os.WriteFile(tokenPath, []byte(`{"token":"stale"}`), 0o600); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	out := uc.Init(context.Background())
	if out.Authenticated {
		t.Fatalf("rejected token must not authenticate")
	}
	if out.Err != domain.MsgSessionExpired {
		t.Fatalf("expected %q, got %q", domain.MsgSessionExpired, out.Err)
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Fatalf("rejected token must be cleared from disk")
	}
}

func TestInitRestoresSession(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{user: domain.User{UserID: 3, Email: "a@b.com", Name: "Ann", Role: "ROLE_PATIENT"}}
	uc, tokenPath := newInteractor(t, api)
	if err := os.WriteFile(tokenPath, []byte(`{"token":"tok-9"}`), 0o600); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	out := uc.Init(context.Background())
	if !out.Authenticated || out.Loading {
		t.Fatalf("expected authenticated state: %+v", out)
	}
	if out.Token != "tok-9" || out.Email != "a@b.com" {
		t.Fatalf("restored identity mismatch: %+v", out)
	}
	if tok, err := uc.Token(); err != nil || tok != "tok-9" {
		t.Fatalf("token accessor after restore: %q %v", tok, err)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{token: "tok-1", user: domain.User{UserID: 1, Email: "a@b.com"}}
	uc, _ := newInteractor(t, api)

	if _, err := uc.Login(context.Background(), dto.LoginInput{Email: "  A@B.com ", Password: "x"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if api.loginEmail != "a@b.com" {
		t.Fatalf("email must be trimmed and lower-cased, got %q", api.loginEmail)
	}
	if api.loginPass != "x" {
		t.Fatalf("password must be sent untouched, got %q", api.loginPass)
	}
}

func TestLoginThenLogoutClearsEverything(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{token: "tok-1", user: domain.User{UserID: 1, Email: "a@b.com"}}
	uc, tokenPath := newInteractor(t, api)

	out, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.com", Password: "x"})
	if err != nil || !out.Authenticated {
		t.Fatalf("login should succeed: %+v %v", out, err)
	}
	if _, err := os.Stat(tokenPath); err != nil {
		t.Fatalf("token must be persisted after login: %v", err)
	}

	out = uc.Logout()
	if out.Authenticated || out.Token != "" || out.Email != "" {
		t.Fatalf("logout must reset state: %+v", out)
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Fatalf("logout must clear persisted token")
	}
	if _, err := uc.Token(); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("token accessor after logout should fail, got %v", err)
	}
}

func TestLoginCredentialFailureSurfacesToCallerOnly(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginErr: &apperrors.APIError{Status: http.StatusUnauthorized, Message: "bad credentials"}}
	uc, _ := newInteractor(t, api)

	_, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.com", Password: "wrong"})
	if err == nil {
		t.Fatalf("bad credentials must return an error")
	}
	out := uc.Current()
	if out.Loading {
		t.Fatalf("loading flag must be cleared after a failed credential exchange")
	}
	if out.Err != "" {
		t.Fatalf("credential failure is the caller's to surface; state recorded %q", out.Err)
	}
	if api.userCalls != 0 {
		t.Fatalf("profile fetch must not run after a failed login call")
	}
}

func TestLoginProfileFetchFailureRecordsServerMessage(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{
		token:   "tok-1",
		userErr: &apperrors.APIError{Status: http.StatusInternalServerError, Message: "profile service down"},
	}
	uc, tokenPath := newInteractor(t, api)

	_, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.com", Password: "x"})
	if err == nil {
		t.Fatalf("profile fetch failure must be returned as well")
	}
	out := uc.Current()
	if out.Authenticated || out.Token != "" {
		t.Fatalf("failed profile fetch must not leave an authenticated state: %+v", out)
	}
	if out.Err != "profile service down" {
		t.Fatalf("expected server message in state, got %q", out.Err)
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Fatalf("the just-persisted token must be cleared")
	}
}

func TestLoginProfileFetchFailureFallsBackToGenericMessage(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{token: "tok-1", userErr: errors.New("connection reset")}
	uc, _ := newInteractor(t, api)

	if _, err := uc.Login(context.Background(), dto.LoginInput{Email: "a@b.com", Password: "x"}); err == nil {
		t.Fatalf("expected error")
	}
	if out := uc.Current(); out.Err != domain.MsgLoginFailed {
		t.Fatalf("expected generic fallback message, got %q", out.Err)
	}
}

func TestStaleLoginAttemptCannotClobberNewerOne(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	api := &fakeAuthAPI{
		token: "tok-slow",
		userByTok: map[string]domain.User{
			"tok-slow": {UserID: 1, Email: "slow@b.com"},
		},
		blockUser: release,
	}
	uc, _ := newInteractor(t, api)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = uc.Login(context.Background(), dto.LoginInput{Email: "slow@b.com", Password: "x"})
	}()

	// Wait until the attempt has reached the backend, then bump the attempt
	// sequence while it is stuck in its profile fetch. The initial state
	// already reports loading, so the login call count is the only reliable
	// signal that the attempt started.
	for api.loginCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	uc.Logout()
	close(release)
	wg.Wait()

	out := uc.Current()
	if out.Authenticated || out.Email != "" {
		t.Fatalf("stale attempt must not publish its result: %+v", out)
	}
}

func TestStaleLoginFailureKeepsNewerToken(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	api := &fakeAuthAPI{
		tokens:   []string{"tok-slow", "tok-new"},
		blockTok: "tok-slow",
		userErrByTok: map[string]error{
			"tok-slow": &apperrors.APIError{Status: http.StatusInternalServerError, Message: "profile service down"},
		},
		userByTok: map[string]domain.User{
			"tok-new": {UserID: 2, Email: "new@b.com"},
		},
		blockUser: release,
	}
	uc, tokenPath := newInteractor(t, api)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = uc.Login(context.Background(), dto.LoginInput{Email: "slow@b.com", Password: "x"})
	}()
	// Wait for the profile fetch so the slow attempt has already written its
	// token to disk before the second login overwrites it.
	for api.userCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	out, err := uc.Login(context.Background(), dto.LoginInput{Email: "new@b.com", Password: "x"})
	if err != nil || !out.Authenticated {
		t.Fatalf("second login should succeed: %+v %v", out, err)
	}

	// The stale attempt's profile fetch now fails; it must neither publish
	// its failure nor delete the token the second login persisted.
	close(release)
	wg.Wait()

	if got := uc.Current(); !got.Authenticated || got.Token != "tok-new" {
		t.Fatalf("stale failure clobbered the newer session: %+v", got)
	}
	raw, err := os.ReadFile(tokenPath)
	if err != nil {
		t.Fatalf("newer token must stay on disk: %v", err)
	}
	if !strings.Contains(string(raw), "tok-new") {
		t.Fatalf("unexpected persisted token: %s", raw)
	}
}

func TestRegisterPassesThrough(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{}
	uc, _ := newInteractor(t, api)

	out, err := uc.Register(context.Background(), dto.RegisterInput{Name: "Ann", Email: " Ann@B.com ", Password: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.UserID != 42 {
		t.Fatalf("unexpected register output: %+v", out)
	}
	if out.Message != "registered Ann <ann@b.com>" {
		t.Fatalf("register must normalize the email too, got %q", out.Message)
	}
}
