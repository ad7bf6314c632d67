// ABOUTME: Typed API client for the Faris AI backend
// ABOUTME: Every call goes through the gateway so credential policy applies uniformly

package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Moshe-ship/faris-ai-saas/internal/gateway"
)

// apiPrefix is prepended to every API path
const apiPrefix = "/api"

// Client is the API client for the Faris AI backend
type Client struct {
	gw *gateway.Gateway
}

// New creates a new API client on top of gw
func New(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.gw.BaseURL()
}

// User is the authenticated identity returned by the auth endpoints
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	OrgID     string `json:"org_id"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TokenResponse is returned by login and registration
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// LoginRequest is the /auth/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /auth/register payload
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

// HealthResponse represents the /health endpoint response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// DashboardStats represents the /dashboard/stats endpoint response
type DashboardStats struct {
	TotalLeads      int            `json:"total_leads"`
	LeadsThisMonth  int            `json:"leads_this_month"`
	MessagesSent    int            `json:"messages_sent"`
	RepliesReceived int            `json:"replies_received"`
	ReplyRate       float64        `json:"reply_rate"`
	ActiveCampaigns int            `json:"active_campaigns"`
	LeadsByStatus   map[string]int `json:"leads_by_status"`
	LeadsByScore    map[string]int `json:"leads_by_score"`
}

// ActivityItem is one entry of the /dashboard/activity feed
type ActivityItem struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   string         `json:"entity_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

// Lead is a prospective customer record
type Lead struct {
	ID            string   `json:"id"`
	OrgID         string   `json:"org_id"`
	CompanyName   string   `json:"company_name"`
	CompanyNameAr string   `json:"company_name_ar,omitempty"`
	Website       string   `json:"website,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	ContactName   string   `json:"contact_name,omitempty"`
	ContactTitle  string   `json:"contact_title,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Location      string   `json:"location,omitempty"`
	Score         int      `json:"score"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"created_at"`
}

// LeadListResponse is one page of leads
type LeadListResponse struct {
	Leads      []Lead `json:"leads"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}

// LeadFilter narrows a lead listing. Zero values are omitted.
type LeadFilter struct {
	Page     int
	Status   string
	Industry string
	MinScore int
	Search   string
}

// Query encodes the filter as URL query parameters
func (f LeadFilter) Query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Industry != "" {
		q.Set("industry", f.Industry)
	}
	if f.MinScore > 0 {
		q.Set("min_score", strconv.Itoa(f.MinScore))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// Campaign is an outreach campaign
type Campaign struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Channels        []string `json:"channels"`
	MinScore        int      `json:"min_score"`
	DailyLimit      int      `json:"daily_limit"`
	Status          string   `json:"status"`
	LeadsContacted  int      `json:"leads_contacted"`
	RepliesReceived int      `json:"replies_received"`
	MeetingsBooked  int      `json:"meetings_booked"`
	CreatedAt       string   `json:"created_at"`
}

// ScoreLeadResponse is the AI scoring result for one lead
type ScoreLeadResponse struct {
	Score     int            `json:"score"`
	Breakdown map[string]any `json:"breakdown"`
	Reasons   []string       `json:"reasons"`
}

// errMissingToken is returned when an auth response carries no credential
var errMissingToken = errors.New("invalid response from backend: missing access token")

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.gw.Post(ctx, apiPrefix+"/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errMissingToken
	}
	return &resp, nil
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, input RegisterRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.gw.Post(ctx, apiPrefix+"/auth/register", input, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errMissingToken
	}
	return &resp, nil
}

// Me calls GET /api/auth/me
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.gw.Get(ctx, apiPrefix+"/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Health calls GET /health (outside the API prefix)
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.gw.Get(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// DashboardStats calls GET /api/dashboard/stats
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.gw.Get(ctx, apiPrefix+"/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DashboardActivity calls GET /api/dashboard/activity
func (c *Client) DashboardActivity(ctx context.Context) ([]ActivityItem, error) {
	var items []ActivityItem
	if err := c.gw.Get(ctx, apiPrefix+"/dashboard/activity", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListLeads calls GET /api/leads
func (c *Client) ListLeads(ctx context.Context, filter LeadFilter) (*LeadListResponse, error) {
	path := apiPrefix + "/leads"
	if q := filter.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list LeadListResponse
	if err := c.gw.Get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetLead calls GET /api/leads/{id}
func (c *Client) GetLead(ctx context.Context, id string) (*Lead, error) {
	if id == "" {
		return nil, fmt.Errorf("lead id is required")
	}
	var lead Lead
	if err := c.gw.Get(ctx, apiPrefix+"/leads/"+url.PathEscape(id), &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListCampaigns calls GET /api/campaigns
func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.gw.Get(ctx, apiPrefix+"/campaigns", &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ScoreLead calls POST /api/ai/score-lead
func (c *Client) ScoreLead(ctx context.Context, leadID string) (*ScoreLeadResponse, error) {
	if leadID == "" {
		return nil, fmt.Errorf("lead id is required")
	}
	var result ScoreLeadResponse
	body := map[string]string{"lead_id": leadID}
	if err := c.gw.Post(ctx, apiPrefix+"/ai/score-lead", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
