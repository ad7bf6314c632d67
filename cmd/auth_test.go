// ABOUTME: Tests for login, register, logout and whoami
// ABOUTME: Verifies session persistence across runs and exit codes

package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/output"
	"github.com/Moshe-ship/faris-ai-saas/internal/session"
	"github.com/Moshe-ship/faris-ai-saas/internal/tokenstore"
)

func TestLogin_Success(t *testing.T) {
	b := newFakeBackend(t)
	e := newTestEnv(t, b.URL, t.TempDir())

	code := runLogin(context.Background(), e.env, credentials{email: "a@b.com", password: "secret"})

	if code != output.ExitSuccess {
		t.Fatalf("expected exit code 0, got %d: %s", code, e.stderr.String())
	}
	if !strings.Contains(e.stdout.String(), "Logged in as a@b.com") {
		t.Errorf("expected confirmation, got %q", e.stdout.String())
	}
	if token, ok := e.tokens.Get(); !ok || token != b.Token() {
		t.Error("expected credential to be stored")
	}
	if got := e.recent.Latest(); got != "a@b.com" {
		t.Errorf("expected email remembered, got %q", got)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	b := newFakeBackend(t)
	e := newTestEnv(t, b.URL, t.TempDir())

	code := runLogin(context.Background(), e.env, credentials{email: "a@b.com", password: "wrong"})

	if code != output.ExitUnauthorized {
		t.Errorf("expected exit code %d, got %d", output.ExitUnauthorized, code)
	}
	stderr := e.stderr.String()
	if !strings.Contains(stderr, "[ERROR] "+e.locale.T(session.KeyLoginFailed)) {
		t.Errorf("expected fixed summary, got %q", stderr)
	}
	if n := strings.Count(stderr, "Invalid credentials"); n != 1 {
		t.Errorf("expected server detail exactly once, got %d in %q", n, stderr)
	}
	if e.session.HasCredential() {
		t.Error("expected no credential after failed login")
	}
	if got := e.recent.Latest(); got != "" {
		t.Errorf("expected failed login not to be remembered, got %q", got)
	}
}

func TestLogin_BackendDown(t *testing.T) {
	e := newTestEnv(t, closedURL(t), t.TempDir())

	code := runLogin(context.Background(), e.env, credentials{email: "a@b.com", password: "secret"})

	if code != output.ExitFailure {
		t.Errorf("expected exit code %d, got %d", output.ExitFailure, code)
	}
	// default language is Arabic, so the fallback message is localized
	if !strings.Contains(e.stderr.String(), "فشل تسجيل الدخول") {
		t.Errorf("expected localized fallback message, got %q", e.stderr.String())
	}
}

func TestLogin_JSON(t *testing.T) {
	b := newFakeBackend(t)
	jsonOutput = true
	e := newTestEnv(t, b.URL, t.TempDir())

	if code := runLogin(context.Background(), e.env, credentials{email: "a@b.com", password: "secret"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var user client.User
	if err := json.Unmarshal(e.stdout.Bytes(), &user); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Errorf("expected email in JSON, got %q", user.Email)
	}
}

func TestSessionSurvivesNewProcess(t *testing.T) {
	b := newFakeBackend(t)
	dir := t.TempDir()
	loggedIn(t, b, dir)

	// a later command run sees the stored credential and resolves the identity
	next := newTestEnv(t, b.URL, dir)
	if code := runWhoami(context.Background(), next.env); code != output.ExitSuccess {
		t.Fatalf("expected exit code 0, got %d: %s", code, next.stderr.String())
	}
	if !strings.Contains(next.stdout.String(), "a@b.com") {
		t.Errorf("expected identity, got %q", next.stdout.String())
	}
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	b := newFakeBackend(t)
	e := newTestEnv(t, b.URL, t.TempDir())

	if code := runWhoami(context.Background(), e.env); code != output.ExitUnauthorized {
		t.Errorf("expected exit code %d, got %d", output.ExitUnauthorized, code)
	}
}

func TestWhoami_RejectedCredentialIsForgotten(t *testing.T) {
	b := newFakeBackend(t)
	dir := t.TempDir()
	e := newTestEnv(t, b.URL, dir)
	e.tokens.Set("stale-token")

	if code := runWhoami(context.Background(), e.env); code != output.ExitUnauthorized {
		t.Errorf("expected exit code %d, got %d", output.ExitUnauthorized, code)
	}
	if !strings.Contains(e.stderr.String(), "faris login") {
		t.Errorf("expected login suggestion, got %q", e.stderr.String())
	}

	reopened := tokenstore.New(e.state, nil)
	if _, ok := reopened.Get(); ok {
		t.Error("expected rejected credential to be removed from disk")
	}
}

func TestRegister_Success(t *testing.T) {
	b := newFakeBackend(t)
	e := newTestEnv(t, b.URL, t.TempDir())

	code := runRegister(context.Background(), e.env, credentials{
		email: "new@b.com", password: "longenough", name: "New User", companyName: "Acme",
	})

	if code != output.ExitSuccess {
		t.Fatalf("expected exit code 0, got %d: %s", code, e.stderr.String())
	}
	if !e.session.HasCredential() {
		t.Error("expected registration to sign in")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	b := newFakeBackend(t)
	e := newTestEnv(t, b.URL, t.TempDir())

	code := runRegister(context.Background(), e.env, credentials{email: "a@b.com", password: "longenough", name: "Dup"})

	if code != output.ExitFailure {
		t.Errorf("expected exit code %d, got %d", output.ExitFailure, code)
	}
	if !strings.Contains(e.stderr.String(), "Email already registered") {
		t.Errorf("expected server detail, got %q", e.stderr.String())
	}
}

func TestLogout(t *testing.T) {
	b := newFakeBackend(t)
	dir := t.TempDir()
	e := loggedIn(t, b, dir)

	if code := runLogout(e.env); code != output.ExitSuccess {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if e.session.HasCredential() {
		t.Error("expected credential to be cleared")
	}

	// logging out twice is harmless
	if code := runLogout(e.env); code != output.ExitSuccess {
		t.Errorf("expected second logout to succeed, got %d", code)
	}

	next := newTestEnv(t, b.URL, dir)
	if next.session.HasCredential() {
		t.Error("expected logout to persist")
	}
}

func TestReadPassword(t *testing.T) {
	got, err := readPassword(strings.NewReader("hunter22\r\nignored"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "hunter22" {
		t.Errorf("expected first line, got %q", got)
	}

	if _, err := readPassword(strings.NewReader("")); err == nil {
		t.Error("expected empty stdin to be rejected")
	}
}

func TestFormatIdentityHuman(t *testing.T) {
	user := testUser("a@b.com")
	out := formatIdentityHuman(&user)
	for _, want := range []string{"Sara Al-Qahtani", "a@b.com", "admin", "org1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
