// ABOUTME: Campaign overview showing outreach results per campaign
// ABOUTME: Lays campaign cards out in two columns with reply and meeting rates

package campaigns

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/styles"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/widgets"
)

// View displays campaigns
type View struct {
	campaigns []client.Campaign
	loaded    bool
	width     int
	translate func(string) string
	dir       locale.Direction
}

// New creates an empty campaign view
func New(width int, translate func(string) string) *View {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	return &View{width: width, translate: translate, dir: locale.LTR}
}

// SetCampaigns replaces the displayed campaigns
func (v *View) SetCampaigns(campaigns []client.Campaign) {
	v.campaigns = campaigns
	v.loaded = true
}

// SetWidth updates the view width
func (v *View) SetWidth(width int) {
	v.width = width
}

// SetDirection sets the text direction used for alignment
func (v *View) SetDirection(dir locale.Direction) {
	v.dir = dir
}

// View renders the campaigns
func (v *View) View() string {
	t := v.translate

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Campaigns.String() + " " + t("campaigns.title")))
	sb.WriteString("\n")

	switch {
	case !v.loaded:
		sb.WriteString(t("common.loading"))
		return styles.Block(sb.String(), v.width, v.dir)
	case len(v.campaigns) == 0:
		sb.WriteString(styles.Subtitle.Render(t("campaigns.noCampaigns")))
		return styles.Block(sb.String(), v.width, v.dir)
	}

	colWidth := max(24, (v.width-4)/2)
	if v.width < 2*24+4 {
		colWidth = max(24, v.width)
	}

	cards := make([]string, len(v.campaigns))
	for i := range v.campaigns {
		cards[i] = v.renderCampaign(&v.campaigns[i], colWidth)
	}

	perRow := 2
	if v.width < 2*24+4 {
		perRow = 1
	}
	for i := 0; i < len(cards); i += perRow {
		row := cards[i:min(i+perRow, len(cards))]
		if v.dir == locale.RTL && len(row) == 2 {
			row = []string{row[1], row[0]}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(row)...))
		sb.WriteString("\n")
	}
	return styles.Block(sb.String(), v.width, v.dir)
}

func (v *View) renderCampaign(c *client.Campaign, width int) string {
	t := v.translate
	level := widgets.CampaignStatusLevel(c.Status)

	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(c.Name))
	sb.WriteString(" ")
	sb.WriteString(widgets.StatusText(t("campaigns."+c.Status), level))
	sb.WriteString("\n")

	desc := c.Description
	if desc == "" {
		desc = t("campaigns.noDescription")
	}
	sb.WriteString(styles.Subtitle.UnsetMarginBottom().Render(desc))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s: %d\n", t("campaigns.targeted"), c.LeadsContacted))

	replyRate := widgets.Share(c.RepliesReceived, c.LeadsContacted)
	sb.WriteString(fmt.Sprintf("%s: %d  %s %.0f%%\n", t("campaigns.replies"), c.RepliesReceived,
		widgets.ProgressBar(replyRate, 10, styles.Secondary), replyRate))

	sb.WriteString(fmt.Sprintf("%s: %d", t("campaigns.meetings"), c.MeetingsBooked))
	if len(c.Channels) > 0 {
		sb.WriteString("  ")
		sb.WriteString(styles.Help.UnsetMarginTop().Render(strings.Join(c.Channels, ", ")))
	}

	return styles.Panel.Width(width - 2).Align(styles.Align(v.dir)).Render(sb.String())
}

func joinWithGap(cards []string) []string {
	if len(cards) < 2 {
		return cards
	}
	return []string{cards[0], " ", cards[1]}
}
