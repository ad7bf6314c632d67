// ABOUTME: Session store holding the authenticated identity
// ABOUTME: Login, Register, Logout and CheckAuth are the only mutators of identity

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/gateway"
)

// Identity is the resolved user record behind a valid credential
type Identity = client.User

// Translation keys for fallback failure messages
const (
	KeyLoginFailed    = "auth.loginFailed"
	KeyRegisterFailed = "auth.registerFailed"
)

var defaultMessages = map[string]string{
	KeyLoginFailed:    "Login failed",
	KeyRegisterFailed: "Registration failed",
}

// AuthAPI is the subset of the backend the session depends on
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.TokenResponse, error)
	Register(ctx context.Context, input client.RegisterRequest) (*client.TokenResponse, error)
	Me(ctx context.Context) (*client.User, error)
}

// Credentials is the token store the session writes to
type Credentials interface {
	Get() (string, bool)
	Set(token string)
	Clear()
	ClearIf(token string) bool
}

// State is a point-in-time snapshot of the session
type State struct {
	Identity      *Identity
	HasCredential bool
	Loading       bool
	Error         string
}

// Authenticated reports whether an identity is present
func (s State) Authenticated() bool {
	return s.Identity != nil
}

// Options configures a Store
type Options struct {
	Logger *slog.Logger
	// Translate localizes fallback failure messages; nil uses English
	Translate func(key string) string
}

// Store owns the identity. Identity is never persisted: it is re-derived
// from the server using the persisted credential.
type Store struct {
	auth      AuthAPI
	tokens    Credentials
	logger    *slog.Logger
	translate func(string) string

	mu       sync.RWMutex
	identity *Identity
	pending  int
	errMsg   string
}

// New creates a session store
func New(auth AuthAPI, tokens Credentials, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	translate := opts.Translate
	if translate == nil {
		translate = func(key string) string { return defaultMessages[key] }
	}
	return &Store{
		auth:      auth,
		tokens:    tokens,
		logger:    logger,
		translate: translate,
	}
}

// Login authenticates with email and password.
// On failure the display message is recorded and the error returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.begin()
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.fail(gateway.Message(err, s.translate(KeyLoginFailed)))
		s.logger.Info("Login failed", "error", err)
		return err
	}
	s.tokens.Set(resp.AccessToken)
	s.commit(&resp.User)
	s.logger.Info("Logged in", "user_id", resp.User.ID)
	return nil
}

// Register creates an account and signs into it
func (s *Store) Register(ctx context.Context, email, password, name, companyName string) error {
	s.begin()
	resp, err := s.auth.Register(ctx, client.RegisterRequest{
		Email:       email,
		Password:    password,
		Name:        name,
		CompanyName: companyName,
	})
	if err != nil {
		s.fail(gateway.Message(err, s.translate(KeyRegisterFailed)))
		s.logger.Info("Registration failed", "error", err)
		return err
	}
	s.tokens.Set(resp.AccessToken)
	s.commit(&resp.User)
	s.logger.Info("Registered", "user_id", resp.User.ID)
	return nil
}

// Logout clears the credential and identity. It never fails.
func (s *Store) Logout() {
	s.tokens.Clear()

	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()
}

// CheckAuth reconciles identity with the persisted credential.
// Without a credential identity is cleared. With one, the server is asked who
// the credential belongs to; any failure invalidates that credential.
// Failures are not errors here: an expired credential at startup is expected.
func (s *Store) CheckAuth(ctx context.Context) {
	token, ok := s.tokens.Get()
	if !ok {
		s.setIdentity(nil)
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		// A newer credential written meanwhile is not ours to erase
		if s.tokens.ClearIf(token) || !s.hasCredential() {
			s.setIdentity(nil)
		}
		if !errors.Is(err, gateway.ErrUnauthorized) {
			s.logger.Warn("Session check failed", "error", err)
		} else {
			s.logger.Info("Stored credential rejected")
		}
		return
	}

	if current, ok := s.tokens.Get(); !ok || current != token {
		s.logger.Debug("Discarding identity for superseded credential")
		return
	}
	s.setIdentity(user)
}

// Identity returns the current identity, or nil.
// No identity is ever reported while the credential is absent.
func (s *Store) Identity() *Identity {
	if !s.hasCredential() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// State returns a snapshot of the session
func (s *Store) State() State {
	hasCred := s.hasCredential()
	identity := s.Identity()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Identity:      identity,
		HasCredential: hasCred,
		Loading:       s.pending > 0,
		Error:         s.errMsg,
	}
}

// Authenticated reports whether an identity is held for the stored credential
func (s *Store) Authenticated() bool {
	return s.Identity() != nil
}

// HasCredential reports whether a credential is stored
func (s *Store) HasCredential() bool {
	return s.hasCredential()
}

// Expiry returns the expiry claim of the stored credential.
// The token is decoded without verification and is for display only.
func (s *Store) Expiry() (time.Time, bool) {
	token, ok := s.tokens.Get()
	if !ok {
		return time.Time{}, false
	}
	return tokenExpiry(token)
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) hasCredential() bool {
	_, ok := s.tokens.Get()
	return ok
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending++
	s.errMsg = ""
}

func (s *Store) commit(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	s.identity = identity
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	s.errMsg = msg
}

func (s *Store) setIdentity(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}
