// ABOUTME: Dashboard component displaying sales pipeline metrics
// ABOUTME: Shows lead counts, outreach totals, score distribution and recent activity

package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/styles"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/widgets"
)

// maxActivity caps how many activity entries are listed
const maxActivity = 5

// scoreBuckets are the backend's score groups in display order
var scoreBuckets = []struct {
	key   string
	label string
	color lipgloss.Color
}{
	{"high", "dashboard.highScore", styles.Secondary},
	{"medium", "dashboard.mediumScore", styles.Warning},
	{"low", "dashboard.lowScore", styles.Danger},
}

// Dashboard displays pipeline metrics
type Dashboard struct {
	stats     *client.DashboardStats
	activity  []client.ActivityItem
	width     int
	height    int
	translate func(string) string
	dir       locale.Direction
}

// New creates a dashboard. Stats may be nil while loading.
func New(stats *client.DashboardStats, width, height int, translate func(string) string) *Dashboard {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	return &Dashboard{
		stats:     stats,
		width:     width,
		height:    height,
		translate: translate,
		dir:       locale.LTR,
	}
}

// Update refreshes the dashboard data
func (d *Dashboard) Update(stats *client.DashboardStats, activity []client.ActivityItem) {
	d.stats = stats
	d.activity = activity
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetDirection sets the text direction used for alignment
func (d *Dashboard) SetDirection(dir locale.Direction) {
	d.dir = dir
}

// View renders the dashboard
func (d *Dashboard) View() string {
	t := d.translate
	if d.stats == nil {
		return styles.Block(t("common.loading"), d.width, d.dir)
	}
	s := d.stats

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Dashboard.String() + " " + t("nav.dashboard")))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(t("dashboard.overview")))
	sb.WriteString("\n")

	config := widgets.DefaultMetricBlockConfig()
	blocks := []string{
		widgets.CountBlock(icons.Leads, t("dashboard.leads"), s.TotalLeads,
			fmt.Sprintf("+%d %s", s.LeadsThisMonth, t("dashboard.thisMonth")), config),
		widgets.CountBlock(icons.Messages, t("dashboard.messagesSent"), s.MessagesSent, "", config),
		widgets.MetricBlock(icons.Replies, t("dashboard.replies"),
			fmt.Sprintf("%d (%.1f%%)", s.RepliesReceived, s.ReplyRate), t("dashboard.replyRate"), config),
		widgets.CountBlock(icons.Campaigns, t("dashboard.activeCampaigns"), s.ActiveCampaigns, "", config),
	}
	sb.WriteString(d.tile(blocks, config.Width))
	sb.WriteString("\n\n")

	sb.WriteString(d.scoreSection())
	sb.WriteString("\n")
	sb.WriteString(d.statusSection())

	if len(d.activity) > 0 {
		sb.WriteString("\n")
		sb.WriteString(d.activitySection())
	}

	style := lipgloss.NewStyle().Width(d.width).Align(styles.Align(d.dir))
	if d.height > 0 {
		style = style.MaxHeight(d.height)
	}
	return style.Render(sb.String())
}

// tile lays blocks out in as many columns as fit, reversed for right-to-left
func (d *Dashboard) tile(blocks []string, blockWidth int) string {
	perRow := max(1, (d.width+1)/(blockWidth+1))
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		row := blocks[i:min(i+perRow, len(blocks))]
		if d.dir == locale.RTL {
			reversed := make([]string, len(row))
			for j := range row {
				reversed[len(row)-1-j] = row[j]
			}
			row = reversed
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(styles.Align(d.dir), rows...)
}

func (d *Dashboard) scoreSection() string {
	t := d.translate
	s := d.stats

	total := 0
	series := make([]float64, 0, len(scoreBuckets))
	for _, b := range scoreBuckets {
		total += s.LeadsByScore[b.key]
		series = append(series, float64(s.LeadsByScore[b.key]))
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(t("dashboard.leadsByScore") + " " + widgets.Sparkline(series, styles.Primary)))
	sb.WriteString("\n")
	for _, b := range scoreBuckets {
		n := s.LeadsByScore[b.key]
		sb.WriteString(fmt.Sprintf("%s %4d  %s\n",
			widgets.ProgressBar(widgets.Share(n, total), 20, b.color), n, t(b.label)))
	}
	return sb.String()
}

func (d *Dashboard) statusSection() string {
	t := d.translate
	s := d.stats

	statuses := make([]string, 0, len(s.LeadsByStatus))
	total := 0
	for status, n := range s.LeadsByStatus {
		statuses = append(statuses, status)
		total += n
	}
	sort.Slice(statuses, func(i, j int) bool {
		if s.LeadsByStatus[statuses[i]] != s.LeadsByStatus[statuses[j]] {
			return s.LeadsByStatus[statuses[i]] > s.LeadsByStatus[statuses[j]]
		}
		return statuses[i] < statuses[j]
	})

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(t("dashboard.leadsByStatus")))
	sb.WriteString("\n")
	for _, status := range statuses {
		n := s.LeadsByStatus[status]
		level := widgets.LeadStatusLevel(status)
		sb.WriteString(fmt.Sprintf("%s %4d  %s\n",
			widgets.ProgressBar(widgets.Share(n, total), 20, styles.Info),
			n,
			widgets.StatusText(t("status."+status), level)))
	}
	return sb.String()
}

func (d *Dashboard) activitySection() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(d.translate("dashboard.activity")))
	sb.WriteString("\n")
	for i, item := range d.activity {
		if i == maxActivity {
			break
		}
		when := item.CreatedAt
		if len(when) >= 16 {
			when = strings.Replace(when[:16], "T", " ", 1)
		}
		line := item.Action
		if item.EntityType != "" {
			line += " · " + item.EntityType
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", styles.Help.UnsetMarginTop().Render(when), line))
	}
	return sb.String()
}
