package httpsession_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/httpsession"
)

type memoryTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (m *memoryTokens) Token(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != "", nil
}

func (m *memoryTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

func newSession(t *testing.T, url string, tokens *memoryTokens, onUnauthorized func(context.Context)) *httpsession.Session {
	t.Helper()
	session, err := httpsession.New(httpsession.Options{
		BaseURL:        url + "/",
		Tokens:         tokens,
		OnUnauthorized: onUnauthorized,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestAttachesBearerToken(t *testing.T) {
	t.Parallel()
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{token: "tok123"}, nil)
	if _, err := session.Do(context.Background(), httpsession.Request{Method: http.MethodGet, Path: "/plans/"}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestKeepsExplicitAuthorizationHeader(t *testing.T) {
	t.Parallel()
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{token: "stored"}, nil)
	header := http.Header{}
	header.Set("Authorization", "Bearer override")
	if _, err := session.Do(context.Background(), httpsession.Request{Path: "/users/me", Header: header}); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got != "Bearer override" {
		t.Fatalf("explicit header was replaced: %q", got)
	}
}

func TestUnauthorizedClearsTokenAndNotifiesOnce(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	}))
	defer server.Close()

	tokens := &memoryTokens{token: "expired"}
	var calls atomic.Int32
	session := newSession(t, server.URL, tokens, func(context.Context) { calls.Add(1) })

	_, err := session.Do(context.Background(), httpsession.Request{Path: "/plans/"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one unauthorized callback, got %d", calls.Load())
	}
	if tokens.cleared != 1 || tokens.token != "" {
		t.Fatalf("token should be cleared once, cleared=%d token=%q", tokens.cleared, tokens.token)
	}
	if msg := apperrors.UserMessage(err, "Failed to load plans"); msg != "" {
		t.Fatalf("401 must not produce a user message, got %q", msg)
	}
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Email already registered"}`))
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{}, nil)
	_, err := session.Do(context.Background(), httpsession.Request{Method: http.MethodPost, Path: "/auth/auth/register", Body: map[string]string{"email": "a@b.co"}})
	var statusErr *httpsession.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", statusErr.Status)
	}
	if msg := apperrors.UserMessage(err, "Registration failed"); msg != "Email already registered" {
		t.Fatalf("unexpected user message %q", msg)
	}
}

func TestStructuredDetailFallsBack(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","goal"],"msg":"field required"}]}`))
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{}, nil)
	_, err := session.Do(context.Background(), httpsession.Request{Method: http.MethodPost, Path: "/plans/auto"})
	if msg := apperrors.UserMessage(err, "Failed to create plan"); msg != "Failed to create plan" {
		t.Fatalf("expected fallback message, got %q", msg)
	}
}

func TestSlashRetryOnNotFound(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/plans/auto" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"plan_id":"p1"}`))
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{token: "t"}, nil)
	resp, err := session.DoWithSlashRetry(context.Background(), httpsession.Request{Method: http.MethodPost, Path: "/plans/auto"})
	if err != nil {
		t.Fatalf("do with retry: %v", err)
	}
	var out struct {
		PlanID string `json:"plan_id"`
	}
	if err := resp.Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.PlanID != "p1" {
		t.Fatalf("unexpected plan id %q", out.PlanID)
	}
	if len(paths) != 2 || paths[0] != "/plans/auto" || paths[1] != "/plans/auto/" {
		t.Fatalf("unexpected request paths %v", paths)
	}
}

func TestSlashRetryOnlyOnce(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{}, nil)
	_, err := session.DoWithSlashRetry(context.Background(), httpsession.Request{Method: http.MethodDelete, Path: "/plans/p1"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected exactly two attempts, got %d", hits.Load())
	}
}

func TestNoRetryOnServerError(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	session := newSession(t, server.URL, &memoryTokens{}, nil)
	_, err := session.DoWithSlashRetry(context.Background(), httpsession.Request{Method: http.MethodPost, Path: "/plans/auto"})
	var statusErr *httpsession.StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 status error, got %v", err)
	}
	if statusErr.StatusText() != "Bad Gateway" {
		t.Fatalf("unexpected status text %q", statusErr.StatusText())
	}
	if hits.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", hits.Load())
	}
}

func TestTimeoutIsDistinctFromNetworkError(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	session := newSession(t, server.URL, &memoryTokens{}, nil)
	_, err := session.Do(context.Background(), httpsession.Request{Path: "/users/me", Timeout: 50 * time.Millisecond})
	if !errors.Is(err, apperrors.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("timeout must not be reported as network error")
	}
}

func TestNetworkError(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	session := newSession(t, url, &memoryTokens{}, nil)
	_, err := session.Do(context.Background(), httpsession.Request{Path: "/users/me"})
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if msg := apperrors.UserMessage(err, "x"); msg != "Network error" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()
	cases := []struct{ base, path, want string }{
		{"http://h:8000", "/plans/", "http://h:8000/plans/"},
		{"http://h:8000/", "plans", "http://h:8000/plans"},
		{"http://h:8000//", "//users/me", "http://h:8000/users/me"},
	}
	for _, tc := range cases {
		if got := httpsession.JoinURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("JoinURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestKeepTokenSkipsEviction(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &memoryTokens{token: "stored"}
	var calls atomic.Int32
	session := newSession(t, server.URL, tokens, func(context.Context) { calls.Add(1) })
	header := http.Header{}
	header.Set("Authorization", "Bearer pasted")
	_, err := session.Do(context.Background(), httpsession.Request{Path: "/users/me", Header: header, KeepToken: true})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if calls.Load() != 0 || tokens.token != "stored" {
		t.Fatalf("stored token must survive, calls=%d token=%q", calls.Load(), tokens.token)
	}
}
