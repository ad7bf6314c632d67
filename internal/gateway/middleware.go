// ABOUTME: Decorator chain applied to every outbound backend call
// ABOUTME: Bearer injection, purge-on-401, request IDs, language and logging

package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Doer performs one HTTP exchange
type Doer func(*http.Request) (*http.Response, error)

// Middleware decorates a Doer
type Middleware func(Doer) Doer

// TokenSource is the credential holder the gateway reads and purges
type TokenSource interface {
	Get() (string, bool)
	Clear()
}

// Navigator forces the user back to the login surface
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func()

// RedirectToLogin calls f
func (f NavigatorFunc) RedirectToLogin() { f() }

// Chain applies middleware to d in order.
// The first middleware in the list is the outermost (executes first).
func Chain(d Doer, middlewares ...Middleware) Doer {
	for i := len(middlewares) - 1; i >= 0; i-- {
		d = middlewares[i](d)
	}
	return d
}

// WithBearer attaches the current credential, read at dispatch time
func WithBearer(tokens TokenSource) Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			if token, ok := tokens.Get(); ok {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next(req)
		}
	}
}

// WithUnauthorizedPurge clears the credential and redirects to login on a 401.
// The response is still returned so the caller's own error handling runs.
// Other in-flight requests are left alone.
func WithUnauthorizedPurge(tokens TokenSource, nav Navigator) Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err == nil && resp.StatusCode == http.StatusUnauthorized {
				tokens.Clear()
				if nav != nil {
					nav.RedirectToLogin()
				}
			}
			return resp, err
		}
	}
}

// WithRequestID tags each request with an X-Request-ID correlation header
func WithRequestID() Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				req.Header.Set("X-Request-ID", uuid.NewString())
			}
			return next(req)
		}
	}
}

// WithAcceptLanguage advertises the active locale to the backend
func WithAcceptLanguage(lang func() string) Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			if tag := lang(); tag != "" && req.Header.Get("Accept-Language") == "" {
				req.Header.Set("Accept-Language", tag)
			}
			return next(req)
		}
	}
}

// WithLogging logs each exchange. Headers are never logged.
func WithLogging(logger *slog.Logger) Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)

			attrs := []any{
				"request_id", req.Header.Get("X-Request-ID"),
				"method", req.Method,
				"path", req.URL.Path,
				"latency_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				logger.Warn("Request failed", append(attrs, "error", err)...)
				return resp, err
			}
			logger.Debug("Request completed", append(attrs, "status", resp.StatusCode)...)
			return resp, nil
		}
	}
}
