// ABOUTME: Paged lead table built on the bubbles table widget
// ABOUTME: Emits page and scoring requests for the parent model to run

package leads

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/styles"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/widgets"
)

// PageRequestMsg asks the parent to load a page of leads
type PageRequestMsg struct {
	Page int
}

// ScoreRequestMsg asks the parent to run AI scoring on a lead
type ScoreRequestMsg struct {
	LeadID string
}

// column keys in left-to-right order
var columnKeys = []string{"leads.company", "leads.industry", "leads.score", "leads.status"}

// View is the lead list screen
type View struct {
	table     table.Model
	page      *client.LeadListResponse
	translate func(string) string
	dir       locale.Direction
	width     int
	height    int
	scoring   string
	notice    string
}

// New creates an empty lead view
func New(translate func(string) string) *View {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	v := &View{
		translate: translate,
		dir:       locale.LTR,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	v.table.SetStyles(s)
	v.layout()
	return v
}

// SetPage replaces the displayed page
func (v *View) SetPage(page *client.LeadListResponse) {
	v.page = page
	v.notice = ""
	v.layout()
	v.table.SetCursor(0)
}

// SetScore records a fresh AI score for a lead
func (v *View) SetScore(leadID string, result *client.ScoreLeadResponse) {
	v.scoring = ""
	if v.page == nil || result == nil {
		return
	}
	for i := range v.page.Leads {
		if v.page.Leads[i].ID == leadID {
			v.page.Leads[i].Score = result.Score
			v.notice = fmt.Sprintf("%s: %d/10", v.page.Leads[i].CompanyName, result.Score)
			if len(result.Reasons) > 0 {
				v.notice += " · " + strings.Join(result.Reasons, "; ")
			}
		}
	}
	v.layout()
}

// SetNotice shows a one-line message under the table
func (v *View) SetNotice(msg string) {
	v.scoring = ""
	v.notice = msg
}

// SetSize updates the view dimensions
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.table.SetHeight(max(3, height-6))
	v.layout()
}

// SetDirection sets the text direction; right-to-left mirrors the column order
func (v *View) SetDirection(dir locale.Direction) {
	v.dir = dir
	v.layout()
}

// Selected returns the lead under the cursor
func (v *View) Selected() *client.Lead {
	if v.page == nil {
		return nil
	}
	i := v.table.Cursor()
	if i < 0 || i >= len(v.page.Leads) {
		return nil
	}
	lead := v.page.Leads[i]
	return &lead
}

// Update handles paging and scoring keys and forwards the rest to the table
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && v.page != nil {
		switch key.String() {
		case "n", "pgdown":
			if v.page.Page < v.page.TotalPages {
				next := v.page.Page + 1
				return v, func() tea.Msg { return PageRequestMsg{Page: next} }
			}
			return v, nil
		case "p", "pgup":
			if v.page.Page > 1 {
				prev := v.page.Page - 1
				return v, func() tea.Msg { return PageRequestMsg{Page: prev} }
			}
			return v, nil
		case "s":
			if lead := v.Selected(); lead != nil && v.scoring == "" {
				v.scoring = lead.ID
				id := lead.ID
				return v, func() tea.Msg { return ScoreRequestMsg{LeadID: id} }
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View renders the table with a page indicator
func (v *View) View() string {
	t := v.translate
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Leads.String() + " " + t("leads.title")))
	sb.WriteString("\n")

	if v.page == nil {
		sb.WriteString(t("common.loading"))
		return styles.Block(sb.String(), v.width, v.dir)
	}
	if len(v.page.Leads) == 0 {
		sb.WriteString(styles.Subtitle.Render(t("leads.noLeads")))
		return styles.Block(sb.String(), v.width, v.dir)
	}

	sb.WriteString(v.table.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(fmt.Sprintf("%s %d %s %d · %d",
		t("leads.page"), v.page.Page, t("leads.of"), max(1, v.page.TotalPages), v.page.Total)))

	if lead := v.Selected(); lead != nil {
		sb.WriteString("\n")
		sb.WriteString(selectedLine(lead))
	}

	if v.scoring != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(t("ai.scoring")))
	} else if v.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusOK.Render(icons.Score.String() + " " + v.notice))
	}
	return styles.Block(sb.String(), v.width, v.dir)
}

// layout rebuilds columns and rows for the current width, language and data
func (v *View) layout() {
	t := v.translate
	width := v.width
	if width <= 0 {
		width = 80
	}

	// company gets what the fixed columns leave
	fixed := []int{0, 16, 12, 18}
	fixed[0] = max(16, width-fixed[1]-fixed[2]-fixed[3]-8)

	cols := make([]table.Column, len(columnKeys))
	for i, key := range columnKeys {
		cols[i] = table.Column{Title: t(key), Width: fixed[i]}
	}

	var rows []table.Row
	if v.page != nil {
		for _, lead := range v.page.Leads {
			name := lead.CompanyName
			if v.dir == locale.RTL && lead.CompanyNameAr != "" {
				name = lead.CompanyNameAr
			}
			rows = append(rows, table.Row{
				name,
				lead.Industry,
				strconv.Itoa(lead.Score) + "/10",
				t("status." + lead.Status),
			})
		}
	}

	if v.dir == locale.RTL {
		cols = mirror(cols)
		for i := range rows {
			rows[i] = mirror(rows[i])
		}
	}

	// rows must match the column count at every step, and emptying them resets the cursor
	cursor := v.table.Cursor()
	v.table.SetRows(nil)
	v.table.SetColumns(cols)
	v.table.SetRows(rows)
	v.table.SetCursor(cursor)
}

func mirror[T any](in []T) []T {
	out := make([]T, len(in))
	for i := range in {
		out[len(in)-1-i] = in[i]
	}
	return out
}

// selectedLine summarizes the lead under the cursor
func selectedLine(lead *client.Lead) string {
	parts := []string{widgets.ScoreBar(lead.Score) + " " + strconv.Itoa(lead.Score)}
	if lead.ContactName != "" {
		contact := lead.ContactName
		if lead.ContactTitle != "" {
			contact += " (" + lead.ContactTitle + ")"
		}
		parts = append(parts, contact)
	}
	if lead.Email != "" {
		parts = append(parts, lead.Email)
	}
	if lead.Location != "" {
		parts = append(parts, lead.Location)
	}
	return strings.Join(parts, " · ")
}
