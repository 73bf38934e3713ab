package out_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adminadapter "medtrack/internal/modules/admin/adapter/out"
	"medtrack/internal/modules/admin/domain"
	"medtrack/internal/platform/rest"
)

func TestListUsersEncodesFilterQuery(t *testing.T) {
	t.Parallel()
	var gotPath, gotRole, gotOnly string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRole = r.URL.Query().Get("role")
		gotOnly = r.URL.Query().Get("only")
		_, _ = w.Write([]byte(`{"users":[{"userId":7,"name":"Ada","email":"ada@clinic.test","role":"DOCTOR","createdAt":"2026-08-01T09:00:00Z"}]}`))
	}))
	defer srv.Close()

	api := adminadapter.NewHTTPAdminAPI(rest.New(srv.URL, time.Second, nil))
	accounts, err := api.ListUsers(context.Background(), "tok", domain.Filter{Role: "DOCTOR", Only: true})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if gotPath != "/admin/users" || gotRole != "DOCTOR" || gotOnly != "true" {
		t.Fatalf("unexpected request: path=%q role=%q only=%q", gotPath, gotRole, gotOnly)
	}
	if len(accounts) != 1 || accounts[0].UserID != 7 || accounts[0].Role != "DOCTOR" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
}

func TestListUsersOmitsEmptyFilter(t *testing.T) {
	t.Parallel()
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	api := adminadapter.NewHTTPAdminAPI(rest.New(srv.URL, time.Second, nil))
	if _, err := api.ListUsers(context.Background(), "tok", domain.Filter{}); err != nil {
		t.Fatalf("list users: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query params, got %q", gotQuery)
	}
}

func TestUpdateRolesSendsBodyToUserPath(t *testing.T) {
	t.Parallel()
	var gotMethod, gotPath string
	var gotBody map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := adminadapter.NewHTTPAdminAPI(rest.New(srv.URL, time.Second, nil))
	err := api.UpdateRoles(context.Background(), "tok", 42, []string{"PATIENT", "ADMIN"})
	if err != nil {
		t.Fatalf("update roles: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/admin/users/42/roles" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if len(gotBody["roles"]) != 2 || gotBody["roles"][1] != "ADMIN" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
}

func TestDeleteUserTargetsUserPath(t *testing.T) {
	t.Parallel()
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	api := adminadapter.NewHTTPAdminAPI(rest.New(srv.URL, time.Second, nil))
	if err := api.DeleteUser(context.Background(), "tok", 42); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/admin/users/42" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}
