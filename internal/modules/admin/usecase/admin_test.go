package usecase_test

import (
	"context"
	"errors"
	"testing"

	"medtrack/internal/modules/admin/domain"
	"medtrack/internal/modules/admin/dto"
	"medtrack/internal/modules/admin/usecase"
	apperrors "medtrack/internal/platform/errors"
)

type fakeAdminAPI struct {
	accounts    []domain.Account
	roles       []string
	lastFilter  domain.Filter
	roleUpdates map[int][]string
	deleted     []int
	lastToken   string
}

func (f *fakeAdminAPI) ListUsers(_ context.Context, token string, filter domain.Filter) ([]domain.Account, error) {
	f.lastToken = token
	f.lastFilter = filter
	return f.accounts, nil
}

func (f *fakeAdminAPI) Roles(_ context.Context, token string) ([]string, error) {
	f.lastToken = token
	return f.roles, nil
}

func (f *fakeAdminAPI) UpdateRoles(_ context.Context, token string, userID int, roles []string) error {
	f.lastToken = token
	if f.roleUpdates == nil {
		f.roleUpdates = map[int][]string{}
	}
	f.roleUpdates[userID] = roles
	return nil
}

func (f *fakeAdminAPI) DeleteUser(_ context.Context, token string, userID int) error {
	f.lastToken = token
	f.deleted = append(f.deleted, userID)
	return nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func TestListUsersPassesFilter(t *testing.T) {
	t.Parallel()
	api := &fakeAdminAPI{accounts: []domain.Account{
		{UserID: 1, Name: "Pat", Email: "pat@example.com", Role: "PATIENT", CreatedAt: "2026-01-02"},
	}}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	got, err := uc.ListUsers(context.Background(), dto.ListInput{Role: "PATIENT", Only: true})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if api.lastFilter != (domain.Filter{Role: "PATIENT", Only: true}) {
		t.Fatalf("unexpected filter: %+v", api.lastFilter)
	}
	if len(got) != 1 || got[0].Email != "pat@example.com" {
		t.Fatalf("unexpected accounts: %+v", got)
	}
}

func TestSetRolesValidatesAgainstKnownRoles(t *testing.T) {
	t.Parallel()
	api := &fakeAdminAPI{roles: []string{"PATIENT", "DOCTOR", "ADMIN"}}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	if err := uc.SetRoles(context.Background(), 5, []string{" doctor ", "ADMIN"}); err != nil {
		t.Fatalf("set roles: %v", err)
	}
	got := api.roleUpdates[5]
	if len(got) != 2 || got[0] != "DOCTOR" || got[1] != "ADMIN" {
		t.Fatalf("roles not normalized: %+v", got)
	}
}

func TestSetRolesRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	api := &fakeAdminAPI{roles: []string{"PATIENT", "DOCTOR", "ADMIN"}}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	err := uc.SetRoles(context.Background(), 5, []string{"SUPERUSER"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(api.roleUpdates) != 0 {
		t.Fatal("unknown role must not be written")
	}
}

func TestSetRolesRequiresUserAndRoles(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeAdminAPI{}, staticTokens{token: "tok-1"})

	if err := uc.SetRoles(context.Background(), 0, []string{"ADMIN"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing id, got %v", err)
	}
	if err := uc.SetRoles(context.Background(), 5, nil); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty roles, got %v", err)
	}
}

func TestDeleteUserRequiresSession(t *testing.T) {
	t.Parallel()
	api := &fakeAdminAPI{}
	uc := usecase.NewInteractor(api, staticTokens{err: apperrors.ErrNotLoggedIn})

	if err := uc.DeleteUser(context.Background(), 5); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if len(api.deleted) != 0 {
		t.Fatal("delete must not reach the API without a session")
	}
}
