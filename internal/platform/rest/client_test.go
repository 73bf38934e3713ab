package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "medtrack/internal/platform/errors"
	"medtrack/internal/platform/rest"
)

func TestDoAttachesBearerAndRequestID(t *testing.T) {
	t.Parallel()
	var gotAuth, gotRequestID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	client := rest.New(srv.URL, time.Second, nil)
	var out map[string]string
	err := client.Do(context.Background(), rest.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Token:  "tok-1",
		Body:   map[string]string{"email": "a@b.com"},
	}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected a request id header")
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
	if out["ok"] != "yes" {
		t.Fatalf("response not decoded: %v", out)
	}
}

func TestDoMapsErrorEnvelope(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	client := rest.New(srv.URL, time.Second, nil)
	err := client.Do(context.Background(), rest.Request{Method: http.MethodGet, Path: "/auth/me"}, nil)
	if err == nil {
		t.Fatalf("expected error for 401")
	}
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "token expired" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("401 should unwrap to ErrUnauthorized")
	}
}

func TestDoHonorsTimeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := rest.New(srv.URL, 50*time.Millisecond, nil)
	err := client.Do(context.Background(), rest.Request{Method: http.MethodGet, Path: "/medicine"}, nil)
	if err == nil {
		t.Fatalf("expected deadline error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
