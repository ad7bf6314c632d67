// ABOUTME: Tests for the gateway policy chain and response classification
// ABOUTME: Uses httptest to mock backend responses

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moshe-ship/faris-ai-saas/internal/logger"
)

// memTokens is an in-memory TokenSource
type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Get() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memTokens) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

func (m *memTokens) Set(t string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = t
}

// recordingNav counts redirects and snapshots the token at redirect time
type recordingNav struct {
	tokens          *memTokens
	redirects       atomic.Int32
	tokenAtRedirect string
}

func (n *recordingNav) RedirectToLogin() {
	n.redirects.Add(1)
	n.tokenAtRedirect, _ = n.tokens.Get()
}

func newTestGateway(t *testing.T, h http.HandlerFunc) (*Gateway, *memTokens, *recordingNav) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	tokens := &memTokens{}
	nav := &recordingNav{tokens: tokens}
	g := New(Options{
		BaseURL:   server.URL,
		Tokens:    tokens,
		Navigator: nav,
		Logger:    logger.Discard(),
	})
	return g, tokens, nav
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	g, tokens, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})
	tokens.Set("T1")

	require.NoError(t, g.Get(context.Background(), "/api/leads", nil))
	assert.Equal(t, "Bearer T1", gotAuth)
}

func TestUnauthenticatedWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	var seen bool
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth, seen = r.Header.Get("Authorization"), true
		w.Write([]byte(`{}`))
	})

	require.NoError(t, g.Get(context.Background(), "/api/leads", nil))
	assert.True(t, seen)
	assert.Empty(t, gotAuth)
}

func TestTokenReadAtDispatchTime(t *testing.T) {
	var gotAuth []string
	g, tokens, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})

	tokens.Set("T1")
	require.NoError(t, g.Get(context.Background(), "/api/a", nil))
	tokens.Set("T2")
	require.NoError(t, g.Get(context.Background(), "/api/b", nil))

	assert.Equal(t, []string{"Bearer T1", "Bearer T2"}, gotAuth)
}

func TestUnauthorizedPurgesBeforeCallerSeesError(t *testing.T) {
	g, tokens, nav := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Token expired"})
	})
	tokens.Set("T1")

	err := g.Get(context.Background(), "/api/leads", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, ok := tokens.Get()
	assert.False(t, ok, "credential must be purged by the time the caller sees the error")
	assert.Equal(t, int32(1), nav.redirects.Load())
	assert.Empty(t, nav.tokenAtRedirect, "purge must happen before navigation")

	var ue *UnauthorizedError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Token expired", ue.Detail)
}

func TestUnauthorizedPurgesOnAnyEndpoint(t *testing.T) {
	for _, path := range []string{"/api/auth/me", "/api/leads", "/api/ai/score-lead", "/health"} {
		t.Run(path, func(t *testing.T) {
			g, tokens, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
			tokens.Set("T1")

			err := g.Do(context.Background(), http.MethodPost, path, map[string]string{}, nil)
			assert.ErrorIs(t, err, ErrUnauthorized)
			_, ok := tokens.Get()
			assert.False(t, ok)
		})
	}
}

func TestValidationFailureDoesNotPurge(t *testing.T) {
	g, tokens, nav := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	})
	tokens.Set("T1")

	err := g.Post(context.Background(), "/api/auth/register", map[string]string{}, nil)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, http.StatusBadRequest, ve.Status)
	assert.Equal(t, "Email already registered", ve.Detail)
	assert.False(t, errors.Is(err, ErrUnauthorized))

	tok, ok := tokens.Get()
	assert.True(t, ok)
	assert.Equal(t, "T1", tok)
	assert.Equal(t, int32(0), nav.redirects.Load())
}

func TestServerError(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
	})

	err := g.Get(context.Background(), "/api/leads", nil)
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "internal error", se.Detail)
}

func TestNetworkFailure(t *testing.T) {
	g := New(Options{BaseURL: "http://localhost:99999", Tokens: &memTokens{}, Logger: logger.Discard()})

	err := g.Get(context.Background(), "/api/leads", nil)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Contains(t, err.Error(), "cannot connect to backend")
}

func TestContextCancellation(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Get(ctx, "/api/leads", nil)
	require.Error(t, err)
	assert.Equal(t, "request canceled", err.Error())
}

func TestContextTimeout(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := g.Get(ctx, "/api/leads", nil)
	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.True(t, ne.Timeout())
}

func TestDecodesSuccessBody(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		json.NewDecoder(r.Body).Decode(&in)
		json.NewEncoder(w).Encode(map[string]string{"echo": in["email"]})
	})

	var out map[string]string
	require.NoError(t, g.Post(context.Background(), "/api/auth/login", map[string]string{"email": "a@b.com"}, &out))
	assert.Equal(t, "a@b.com", out["echo"])
}

func TestInvalidSuccessBody(t *testing.T) {
	g, _, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	var out map[string]string
	err := g.Get(context.Background(), "/api/auth/me", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response from backend")
}

func TestRequestIDAndLanguageHeaders(t *testing.T) {
	var reqID, lang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, lang = r.Header.Get("X-Request-ID"), r.Header.Get("Accept-Language")
	}))
	defer server.Close()

	g := New(Options{
		BaseURL:  server.URL,
		Tokens:   &memTokens{},
		Logger:   logger.Discard(),
		Language: func() string { return "ar" },
	})
	require.NoError(t, g.Get(context.Background(), "/health", nil))
	assert.Len(t, reqID, 36)
	assert.Equal(t, "ar", lang)
}

func TestConcurrentCallsAreNotCancelledBy401(t *testing.T) {
	release := make(chan struct{})
	g, tokens, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/fail" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		<-release
		w.Write([]byte(`{"ok":"yes"}`))
	})
	tokens.Set("T1")

	var wg sync.WaitGroup
	var slowErr error
	var out map[string]string
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = g.Get(context.Background(), "/api/slow", &out)
	}()

	// Give the slow request time to be dispatched with T1
	time.Sleep(20 * time.Millisecond)
	assert.ErrorIs(t, g.Get(context.Background(), "/api/fail", nil), ErrUnauthorized)
	close(release)
	wg.Wait()

	assert.NoError(t, slowErr)
	assert.Equal(t, "yes", out["ok"])
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad", Message(&ValidationError{Status: 400, Detail: "bad"}, "fallback"))
	assert.Equal(t, "expired", Message(&UnauthorizedError{Detail: "expired"}, "fallback"))
	assert.Equal(t, "boom", Message(&ServerError{Status: 500, Detail: "boom"}, "fallback"))
	assert.Equal(t, "fallback", Message(&ValidationError{Status: 400}, "fallback"))
	assert.Equal(t, "fallback", Message(&NetworkError{Err: errors.New("dial")}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("other"), "fallback"))
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"fastapi field errors", `{"detail":[{"loc":["body","password"],"msg":"too short"},{"msg":"bad email"}]}`, "too short; bad email"},
		{"generic error", `{"error":"internal error","code":500}`, "internal error"},
		{"not json", `<html>`, ""},
		{"empty", ``, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseDetail([]byte(tc.body)))
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Doer) Doer {
			return func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next(r)
			}
		}
	}
	base := func(*http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: 200}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := Chain(base, mark("outer"), mark("inner"))(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "base"}, order)
}

func TestPutSendsJSONBody(t *testing.T) {
	var method, contentType string
	var body map[string]string
	g, tokens, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{"status": "contacted"})
	})
	tokens.Set("T1")

	var out map[string]string
	require.NoError(t, g.Put(context.Background(), "/api/leads/l1", map[string]string{"status": "contacted"}, &out))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "contacted", body["status"])
	assert.Equal(t, "contacted", out["status"])
}
