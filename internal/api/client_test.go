package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

// staticTokens is a settable oauth2.TokenSource for tests.
type staticTokens struct{ token string }

func (s *staticTokens) Token() (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: s.token}, nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(Opts{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client, srv
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New(Opts{BaseURL: "localhost:5001/api"}); err == nil {
		t.Error("expected error for URL without scheme")
	}
}

func TestGet_AttachesBearer(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	client.SetTokenSource(&staticTokens{token: "tok-123"})

	var out map[string]any
	if err := client.Get(context.Background(), "/drivers", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestGet_AnonymousWithEmptyToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	client.SetTokenSource(&staticTokens{token: ""})

	var out map[string]any
	if err := client.Get(context.Background(), "/drivers", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDo_UnauthorizedFiresHook(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	}))
	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	err := client.Get(context.Background(), "/orders", nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}
}

func TestLogin_UnauthorizedDoesNotFireHook(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Invalid credentials"}`, http.StatusUnauthorized)
	}))
	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	_, err := client.Login(context.Background(), "a@b.c", "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if fired != 0 {
		t.Errorf("hook fired %d times on failed login, want 0", fired)
	}
	if got := Reason(err, "Login failed"); got != "Invalid credentials" {
		t.Errorf("Reason = %q, want server message", got)
	}
}

func TestDo_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	err := client.Get(context.Background(), "/simulate/latest", nil)
	if !IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
	if IsValidation(err) || IsUnauthorized(err) {
		t.Error("404 misclassified")
	}
}

func TestDo_ValidationMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"distanceKm must be positive"}`, http.StatusBadRequest)
	}))
	err := client.Post(context.Background(), "/routes", map[string]any{}, nil)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "distanceKm must be positive" {
		t.Errorf("message = %v, want server-supplied text", err)
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client, err := New(Opts{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv.Close() // connection refused from here on

	err = client.Get(context.Background(), "/drivers", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure should not be an *Error: %v", err)
	}
	if got := Reason(err, "Failed to load drivers"); got != "Failed to load drivers" {
		t.Errorf("Reason = %q, want generic fallback", got)
	}
}

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","email":"ops@greencart.in"}}`))
	}))

	res, err := client.Login(context.Background(), "ops@greencart.in", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "tok-1" || res.User.Email != "ops@greencart.in" {
		t.Errorf("unexpected result: %+v", res)
	}
}
