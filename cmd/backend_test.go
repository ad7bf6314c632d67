// ABOUTME: Fake Faris AI backend and env helpers shared by command tests
// ABOUTME: Issues signed tokens and serves the endpoints the commands call

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
)

type fakeBackend struct {
	*httptest.Server
	token    atomic.Value
	meCalls  atomic.Int32
	lastLang atomic.Value
	lastBody atomic.Value
}

// LastBody is the decoded body of the most recent write request
func (b *fakeBackend) LastBody() map[string]any {
	body, _ := b.lastBody.Load().(map[string]any)
	return body
}

// Token is the credential the backend currently accepts
func (b *fakeBackend) Token() string {
	return b.token.Load().(string)
}

// Rotate invalidates every credential issued so far
func (b *fakeBackend) Rotate(token string) {
	b.token.Store(token)
}

func testUser(email string) client.User {
	return client.User{ID: "u1", Email: email, Name: "Sara Al-Qahtani", Role: "admin", OrgID: "org1"}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{}
	b.Rotate(signedToken(t, time.Now().Add(2*time.Hour)))

	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+b.Token()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.HealthResponse{
			Status:   "healthy",
			Services: map[string]string{"database": "ok", "redis": "ok"},
		})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req client.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "a@b.com" || req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, client.TokenResponse{AccessToken: b.Token(), TokenType: "bearer", User: testUser(req.Email)})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req client.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email == "a@b.com" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusOK, client.TokenResponse{AccessToken: b.Token(), TokenType: "bearer", User: testUser(req.Email)})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		b.meCalls.Add(1)
		b.lastLang.Store(r.Header.Get("Accept-Language"))
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, testUser("a@b.com"))
	})

	protected := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !authorized(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
				return
			}
			handler(w, r)
		}
	}
	mux.HandleFunc("GET /api/dashboard/stats", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.DashboardStats{
			TotalLeads: 240, LeadsThisMonth: 18, MessagesSent: 120, RepliesReceived: 31, ReplyRate: 25.8,
			ActiveCampaigns: 2, LeadsByStatus: map[string]int{"new": 150, "contacted": 60, "replied": 30},
		})
	}))
	mux.HandleFunc("GET /api/dashboard/activity", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.ActivityItem{
			{ID: "a1", Action: "lead_created", EntityType: "lead", CreatedAt: "2026-10-18T09:00:00Z"},
		})
	}))
	mux.HandleFunc("GET /api/leads", protected(func(w http.ResponseWriter, r *http.Request) {
		leads := []client.Lead{
			{ID: "l1", CompanyName: "Acme Riyadh", CompanyNameAr: "أكمي الرياض", Industry: "fintech", Score: 8, Status: "new"},
			{ID: "l2", CompanyName: "Gulf Logistics", Industry: "logistics", Score: 4, Status: "contacted"},
		}
		if status := r.URL.Query().Get("status"); status != "" {
			var filtered []client.Lead
			for _, l := range leads {
				if l.Status == status {
					filtered = append(filtered, l)
				}
			}
			leads = filtered
		}
		writeJSON(w, http.StatusOK, client.LeadListResponse{Leads: leads, Total: len(leads), Page: 1, PageSize: 20, TotalPages: 1})
	}))
	mux.HandleFunc("GET /api/leads/{id}", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "l1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Lead not found"})
			return
		}
		writeJSON(w, http.StatusOK, client.Lead{
			ID: "l1", CompanyName: "Acme Riyadh", Industry: "fintech", Score: 8, Status: "new",
			ContactName: "Omar", ContactTitle: "CTO", Email: "omar@acme.sa", Tags: []string{"saas", "b2b"},
		})
	}))
	mux.HandleFunc("GET /api/campaigns", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.Campaign{
			{ID: "c1", Name: "Riyadh Fintech", Status: "active", Channels: []string{"email"},
				LeadsContacted: 40, RepliesReceived: 10, MeetingsBooked: 3},
		})
	}))
	mux.HandleFunc("POST /api/ai/score-lead", protected(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["lead_id"] == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "lead_id required"})
			return
		}
		writeJSON(w, http.StatusOK, client.ScoreLeadResponse{Score: 9, Reasons: []string{"Growing fintech", "Decision maker reachable"}})
	}))

	mux.HandleFunc("GET /api/profile", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.CompanyProfile{
			ID: "p1", OrgID: "org1", CompanyName: "Faris Labs", CompanyNameAr: "مختبرات فارس",
			Industry: "saas", PainPoints: []string{"slow follow-up"}, Tone: "professional", Language: "ar",
		})
	}))
	mux.HandleFunc("PUT /api/profile", protected(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.lastBody.Store(body)
		profile := client.CompanyProfile{ID: "p1", OrgID: "org1", CompanyName: "Faris Labs", Tone: "professional"}
		if name, ok := body["company_name"].(string); ok {
			profile.CompanyName = name
		}
		if tone, ok := body["tone"].(string); ok {
			profile.Tone = tone
		}
		writeJSON(w, http.StatusOK, profile)
	}))
	mux.HandleFunc("PUT /api/leads/{id}", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "l1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Lead not found"})
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.lastBody.Store(body)
		lead := client.Lead{ID: "l1", CompanyName: "Acme Riyadh", Score: 8, Status: "new"}
		if status, ok := body["status"].(string); ok {
			lead.Status = status
		}
		if notes, ok := body["notes"].(string); ok {
			lead.Notes = notes
		}
		writeJSON(w, http.StatusOK, lead)
	}))
	mux.HandleFunc("GET /api/sources", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.DataSource{
			{ID: "d1", Name: "Saudi Clinics Directory", SourceType: "directory", IsActive: true, LeadsCount: 42,
				LastScrapedAt: "2026-10-17T06:00:00Z"},
		})
	}))
	mux.HandleFunc("GET /api/sources/industries", protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []client.IndustrySource{
			{ID: "i1", Industry: "healthcare", IndustryAr: "الرعاية الصحية", Name: "Saudi Clinics Directory",
				NameAr: "دليل العيادات السعودية", SourceType: "directory", Region: "Riyadh", IsActive: true},
		})
	}))
	mux.HandleFunc("POST /api/sources/industries/{id}/enable", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "i1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Industry source not found"})
			return
		}
		writeJSON(w, http.StatusOK, client.DataSource{ID: "d2", IndustrySourceID: "i1", Name: "Saudi Clinics Directory", IsActive: true})
	}))
	mux.HandleFunc("POST /api/campaigns/{id}/{action}", protected(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "c1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Campaign not found"})
			return
		}
		switch r.PathValue("action") {
		case "start":
			writeJSON(w, http.StatusOK, client.ActionResponse{Message: "Campaign started"})
		case "pause":
			writeJSON(w, http.StatusOK, client.ActionResponse{Message: "Campaign paused"})
		default:
			http.NotFound(w, r)
		}
	}))
	mux.HandleFunc("POST /api/ai/generate-message", protected(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		b.lastBody.Store(body)
		resp := client.GenerateMessageResponse{Body: "Hello Omar, we help fintechs in Riyadh.", TokensUsed: 87}
		if body["channel"] == "email" {
			resp.Subject = "Faster onboarding for Acme"
		}
		writeJSON(w, http.StatusOK, resp)
	}))

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Close)
	return b
}

// closedURL returns the address of a listener that has already been closed
func closedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return "http://" + addr
}

// testEnv is an env whose output is captured
type testEnv struct {
	*env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv builds an env against baseURL keeping state in stateDir.
// Building a second env on the same dir behaves like a new process.
func newTestEnv(t *testing.T, baseURL, stateDir string) *testEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(stateDir, "config-home"))
	t.Setenv("FARIS_STATE_DIR", stateDir)
	t.Setenv("NO_COLOR", "1")

	apiURL = baseURL
	t.Cleanup(func() {
		apiURL = ""
		jsonOutput = false
	})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	e, err := newEnv(envOptions{Stdout: stdout, Stderr: stderr, Log: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("newEnv: %v", err)
	}
	return &testEnv{env: e, stdout: stdout, stderr: stderr}
}

// loggedIn returns an env that has already signed in
func loggedIn(t *testing.T, b *fakeBackend, stateDir string) *testEnv {
	t.Helper()
	e := newTestEnv(t, b.URL, stateDir)
	if code := runLogin(context.Background(), e.env, credentials{email: "a@b.com", password: "secret"}); code != 0 {
		t.Fatalf("login failed with %d: %s", code, e.stderr.String())
	}
	e.stdout.Reset()
	e.stderr.Reset()
	return e
}
