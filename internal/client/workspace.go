// ABOUTME: Client calls for the workspace around the lead list
// ABOUTME: Company profile, data sources, lead edits, campaign control and AI drafting

package client

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

// LeadStatuses are the statuses the backend accepts on a lead update
var LeadStatuses = []string{"new", "contacted", "replied", "meeting_scheduled", "converted", "not_interested", "archived"}

// Channels are the outreach channels messages can be drafted for
var Channels = []string{"email", "linkedin", "whatsapp"}

// Tones are the accepted company profile tones
var Tones = []string{"professional", "casual", "formal", "friendly"}

// ProfileLanguages are the accepted company profile languages
var ProfileLanguages = []string{"ar", "en", "mixed"}

// CompanyProfile is the organization's sales profile used for AI drafting
type CompanyProfile struct {
	ID                 string   `json:"id"`
	OrgID              string   `json:"org_id"`
	CompanyName        string   `json:"company_name,omitempty"`
	CompanyNameAr      string   `json:"company_name_ar,omitempty"`
	Industry           string   `json:"industry,omitempty"`
	Website            string   `json:"website,omitempty"`
	ValueProposition   string   `json:"value_proposition,omitempty"`
	ValuePropositionAr string   `json:"value_proposition_ar,omitempty"`
	TargetAudience     string   `json:"target_audience,omitempty"`
	PainPoints         []string `json:"pain_points"`
	Differentiators    []string `json:"differentiators"`
	Tone               string   `json:"tone,omitempty"`
	Language           string   `json:"language,omitempty"`
	SDRScript          string   `json:"sdr_script,omitempty"`
	SDRScriptAr        string   `json:"sdr_script_ar,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// ProfileUpdate changes a company profile. Nil fields are left untouched.
type ProfileUpdate struct {
	CompanyName        *string  `json:"company_name,omitempty"`
	CompanyNameAr      *string  `json:"company_name_ar,omitempty"`
	Industry           *string  `json:"industry,omitempty"`
	Website            *string  `json:"website,omitempty"`
	ValueProposition   *string  `json:"value_proposition,omitempty"`
	ValuePropositionAr *string  `json:"value_proposition_ar,omitempty"`
	TargetAudience     *string  `json:"target_audience,omitempty"`
	PainPoints         []string `json:"pain_points,omitempty"`
	Differentiators    []string `json:"differentiators,omitempty"`
	Tone               *string  `json:"tone,omitempty"`
	Language           *string  `json:"language,omitempty"`
}

// Empty reports whether the update changes nothing
func (u ProfileUpdate) Empty() bool {
	return u.CompanyName == nil && u.CompanyNameAr == nil && u.Industry == nil &&
		u.Website == nil && u.ValueProposition == nil && u.ValuePropositionAr == nil &&
		u.TargetAudience == nil && u.PainPoints == nil && u.Differentiators == nil &&
		u.Tone == nil && u.Language == nil
}

// Validate checks enumerated fields before they are sent
func (u ProfileUpdate) Validate() error {
	if u.Tone != nil && !slices.Contains(Tones, *u.Tone) {
		return fmt.Errorf("unknown tone %q (want one of %v)", *u.Tone, Tones)
	}
	if u.Language != nil && !slices.Contains(ProfileLanguages, *u.Language) {
		return fmt.Errorf("unknown language %q (want one of %v)", *u.Language, ProfileLanguages)
	}
	return nil
}

// LeadUpdate changes a lead's pipeline fields. Nil fields are left untouched.
type LeadUpdate struct {
	Status *string  `json:"status,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Validate checks the status against LeadStatuses
func (u LeadUpdate) Validate() error {
	if u.Status == nil && u.Notes == nil && u.Tags == nil {
		return fmt.Errorf("nothing to update")
	}
	if u.Status != nil && !slices.Contains(LeadStatuses, *u.Status) {
		return fmt.Errorf("unknown status %q (want one of %v)", *u.Status, LeadStatuses)
	}
	return nil
}

// IndustrySource is a catalog entry that can be enabled as a data source
type IndustrySource struct {
	ID            string `json:"id"`
	Industry      string `json:"industry"`
	IndustryAr    string `json:"industry_ar,omitempty"`
	Name          string `json:"name"`
	NameAr        string `json:"name_ar,omitempty"`
	Description   string `json:"description,omitempty"`
	DescriptionAr string `json:"description_ar,omitempty"`
	SourceType    string `json:"source_type"`
	URL           string `json:"url"`
	Region        string `json:"region,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// DataSource is a lead source enabled for the organization
type DataSource struct {
	ID               string `json:"id"`
	OrgID            string `json:"org_id"`
	IndustrySourceID string `json:"industry_source_id,omitempty"`
	Name             string `json:"name"`
	SourceType       string `json:"source_type"`
	URL              string `json:"url,omitempty"`
	IsActive         bool   `json:"is_active"`
	LastScrapedAt    string `json:"last_scraped_at,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LeadsCount       int    `json:"leads_count"`
	CreatedAt        string `json:"created_at"`
}

// GenerateMessageRequest asks the AI to draft outreach for a lead
type GenerateMessageRequest struct {
	LeadID        string `json:"lead_id"`
	Channel       string `json:"channel"`
	CustomContext string `json:"custom_context,omitempty"`
}

// GenerateMessageResponse is an AI-drafted message
type GenerateMessageResponse struct {
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body"`
	TokensUsed int    `json:"tokens_used"`
}

// ActionResponse is the acknowledgement returned by state-changing actions
type ActionResponse struct {
	Message string `json:"message"`
}

// GetProfile calls GET /api/profile
func (c *Client) GetProfile(ctx context.Context) (*CompanyProfile, error) {
	var profile CompanyProfile
	if err := c.gw.Get(ctx, apiPrefix+"/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile calls PUT /api/profile
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*CompanyProfile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	var profile CompanyProfile
	if err := c.gw.Put(ctx, apiPrefix+"/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateLead calls PUT /api/leads/{id}
func (c *Client) UpdateLead(ctx context.Context, id string, update LeadUpdate) (*Lead, error) {
	if id == "" {
		return nil, fmt.Errorf("lead id is required")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	var lead Lead
	if err := c.gw.Put(ctx, apiPrefix+"/leads/"+url.PathEscape(id), update, &lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListIndustrySources calls GET /api/sources/industries
func (c *Client) ListIndustrySources(ctx context.Context) ([]IndustrySource, error) {
	var sources []IndustrySource
	if err := c.gw.Get(ctx, apiPrefix+"/sources/industries", &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// ListDataSources calls GET /api/sources
func (c *Client) ListDataSources(ctx context.Context) ([]DataSource, error) {
	var sources []DataSource
	if err := c.gw.Get(ctx, apiPrefix+"/sources", &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// EnableIndustrySource calls POST /api/sources/industries/{id}/enable
func (c *Client) EnableIndustrySource(ctx context.Context, id string) (*DataSource, error) {
	if id == "" {
		return nil, fmt.Errorf("source id is required")
	}
	var source DataSource
	if err := c.gw.Post(ctx, apiPrefix+"/sources/industries/"+url.PathEscape(id)+"/enable", nil, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

// StartCampaign calls POST /api/campaigns/{id}/start
func (c *Client) StartCampaign(ctx context.Context, id string) (*ActionResponse, error) {
	return c.campaignAction(ctx, id, "start")
}

// PauseCampaign calls POST /api/campaigns/{id}/pause
func (c *Client) PauseCampaign(ctx context.Context, id string) (*ActionResponse, error) {
	return c.campaignAction(ctx, id, "pause")
}

func (c *Client) campaignAction(ctx context.Context, id, action string) (*ActionResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("campaign id is required")
	}
	var resp ActionResponse
	if err := c.gw.Post(ctx, apiPrefix+"/campaigns/"+url.PathEscape(id)+"/"+action, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateMessage calls POST /api/ai/generate-message
func (c *Client) GenerateMessage(ctx context.Context, req GenerateMessageRequest) (*GenerateMessageResponse, error) {
	if req.LeadID == "" {
		return nil, fmt.Errorf("lead id is required")
	}
	if !slices.Contains(Channels, req.Channel) {
		return nil, fmt.Errorf("unknown channel %q (want one of %v)", req.Channel, Channels)
	}
	var msg GenerateMessageResponse
	if err := c.gw.Post(ctx, apiPrefix+"/ai/generate-message", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
