package fplauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fpl-assistant/internal/platform/logging"
)

func newTestTokenClient(t *testing.T, handler http.Handler) *TokenClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTokenClient(Config{
		LoginURL:    server.URL,
		RedirectURI: "https://example.test/a/login",
		Logger:      logging.NewNop(),
	})
}

func TestLogin_ReturnsAccessToken(t *testing.T) {
	var gotLogin, gotApp string
	client := newTestTokenClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotLogin = r.PostFormValue("login")
		gotApp = r.PostFormValue("app")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer"}`))
	}))

	token, err := client.Login(context.Background(), "user@example.test", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("unexpected token %q", token)
	}
	if gotLogin != "user@example.test" || gotApp != "plfpl-web" {
		t.Fatalf("unexpected form values login=%q app=%q", gotLogin, gotApp)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	client := newTestTokenClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "user@example.test", "wrong")
	if !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_EmptyCredentialsRejectedLocally(t *testing.T) {
	client := newTestTokenClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("identity provider must not be called for empty credentials")
	}))

	if _, err := client.Login(context.Background(), "", ""); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_MissingTokenInResponse(t *testing.T) {
	client := newTestTokenClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
	}))

	if _, err := client.Login(context.Background(), "user@example.test", "hunter2"); err == nil {
		t.Fatal("expected error for response without access token")
	}
}
