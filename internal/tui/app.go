// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Gates protected screens on the route guard and routes input to child components

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/Moshe-ship/faris-ai-saas/internal/client"
	"github.com/Moshe-ship/faris-ai-saas/internal/gateway"
	"github.com/Moshe-ship/faris-ai-saas/internal/guard"
	"github.com/Moshe-ship/faris-ai-saas/internal/locale"
	"github.com/Moshe-ship/faris-ai-saas/internal/session"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/authform"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/campaigns"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/dashboard"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/leads"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/styles"
)

// Screen represents the protected screen on display
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenLeads
	ScreenCampaigns
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width assumed for the frame
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// API is the part of the backend the screens read from
type API interface {
	DashboardStats(ctx context.Context) (*client.DashboardStats, error)
	DashboardActivity(ctx context.Context) ([]client.ActivityItem, error)
	ListLeads(ctx context.Context, filter client.LeadFilter) (*client.LeadListResponse, error)
	ListCampaigns(ctx context.Context) ([]client.Campaign, error)
	ScoreLead(ctx context.Context, leadID string) (*client.ScoreLeadResponse, error)
}

// Session is the part of the session store the TUI drives
type Session interface {
	guard.Session
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password, name, companyName string) error
	Logout()
	Identity() *session.Identity
	State() session.State
}

// SessionExpiredMsg is sent when the backend rejected the credential
type SessionExpiredMsg struct{}

// mountedMsg is sent when the initial session check completes
type mountedMsg struct{}

// authDoneMsg is sent when a login or registration attempt completes
type authDoneMsg struct {
	email string
	err   error
}

// Data messages carry the epoch they were requested in so results from a
// previous session are dropped.
type dashboardLoadedMsg struct {
	epoch    int
	stats    *client.DashboardStats
	activity []client.ActivityItem
	err      error
}

type leadsLoadedMsg struct {
	epoch int
	page  *client.LeadListResponse
	err   error
}

type campaignsLoadedMsg struct {
	epoch     int
	campaigns []client.Campaign
	err       error
}

type scoredMsg struct {
	epoch  int
	leadID string
	result *client.ScoreLeadResponse
	err    error
}

// Recent remembers sign-in emails for prefilling the login form
type Recent interface {
	Latest() string
	Add(email string) error
}

// Options configures the App
type Options struct {
	API     API
	Session Session
	Locale  *locale.Store
	Recent  Recent
	Logger  *slog.Logger
}

// App is the root model for the TUI
type App struct {
	api     API
	session Session
	guard   *guard.Guard
	locale  *locale.Store
	recent  Recent
	logger  *slog.Logger

	screen     Screen
	width      int
	height     int
	dir        locale.Direction
	epoch      int
	err        error
	notice     string
	lastUpdate time.Time

	spinner   spinner.Model
	form      *authform.Form
	dashboard *dashboard.Dashboard
	leads     *leads.View
	campaigns *campaigns.View
}

// New creates a new TUI application and attaches it to the locale store
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	a := &App{
		api:     opts.API,
		session: opts.Session,
		guard:   guard.New(opts.Session, logger),
		locale:  opts.Locale,
		recent:  opts.Recent,
		logger:  logger,
		screen:  ScreenDashboard,
		dir:     locale.LTR,
		spinner: s,
	}
	t := a.t
	a.dashboard = dashboard.New(nil, a.contentWidth(), a.contentHeight(), t)
	a.leads = leads.New(t)
	a.campaigns = campaigns.New(a.contentWidth(), t)

	if a.locale != nil {
		a.locale.SetSurface(a)
	}
	return a
}

// ApplyLocale implements locale.Surface
func (a *App) ApplyLocale(_ locale.Tag, dir locale.Direction) {
	a.setDirection(dir)
}

func (a *App) setDirection(dir locale.Direction) {
	a.dir = dir
	a.dashboard.SetDirection(dir)
	a.leads.SetDirection(dir)
	a.campaigns.SetDirection(dir)
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.mount())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case spinner.TickMsg:
		if a.guard.Decide() != guard.Wait {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.guard.Decide() {
		case guard.Redirect:
			return a.updateAuth(msg)
		case guard.Render:
			return a.updateProtected(msg)
		}
		return a, nil

	case mountedMsg:
		return a, a.resolve()

	case SessionExpiredMsg:
		return a, a.expire(a.t("auth.sessionExpired"))

	case authform.SubmittedMsg:
		return a, a.submit(msg)

	case authform.SwitchModeMsg:
		a.form = a.newForm(msg.Mode)
		a.notice = ""
		return a, a.form.Init()

	case authform.CancelledMsg:
		return a, tea.Quit

	case authDoneMsg:
		if msg.err != nil {
			if a.form == nil {
				return a, nil
			}
			return a, a.form.SetError(a.session.State().Error)
		}
		if a.recent != nil {
			if err := a.recent.Add(msg.email); err != nil {
				a.logger.Warn("Failed to remember email", "error", err)
			}
		}
		a.form = nil
		a.notice = ""
		a.screen = ScreenDashboard
		return a, a.resolve()

	case dashboardLoadedMsg:
		if msg.epoch != a.epoch {
			return a, nil
		}
		if a.failed(msg.err) {
			return a, a.unauthorized(msg.err)
		}
		a.dashboard.Update(msg.stats, msg.activity)
		a.lastUpdate = time.Now()
		return a, nil

	case leadsLoadedMsg:
		if msg.epoch != a.epoch {
			return a, nil
		}
		if a.failed(msg.err) {
			return a, a.unauthorized(msg.err)
		}
		a.leads.SetPage(msg.page)
		a.lastUpdate = time.Now()
		return a, nil

	case campaignsLoadedMsg:
		if msg.epoch != a.epoch {
			return a, nil
		}
		if a.failed(msg.err) {
			return a, a.unauthorized(msg.err)
		}
		a.campaigns.SetCampaigns(msg.campaigns)
		a.lastUpdate = time.Now()
		return a, nil

	case scoredMsg:
		if msg.epoch != a.epoch {
			return a, nil
		}
		if msg.err != nil {
			a.leads.SetNotice(gateway.Message(msg.err, a.t("common.error")))
			return a, a.unauthorized(msg.err)
		}
		a.leads.SetScore(msg.leadID, msg.result)
		return a, nil

	case leads.PageRequestMsg:
		return a, a.loadLeads(msg.Page)

	case leads.ScoreRequestMsg:
		return a, a.scoreLead(msg.LeadID)

	default:
		// huh form internals arrive as unknown messages
		if a.form != nil && a.guard.Decide() == guard.Redirect {
			model, cmd := a.form.Update(msg)
			a.form = model.(*authform.Form)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+l" && a.locale != nil {
		a.locale.Toggle()
		if a.form != nil {
			return a, a.form.Reset()
		}
		return a, nil
	}
	if a.form == nil {
		a.form = a.newForm(authform.ModeLogin)
		return a, a.form.Init()
	}
	model, cmd := a.form.Update(msg)
	a.form = model.(*authform.Form)
	return a, cmd
}

func (a *App) updateProtected(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "l":
		if a.locale != nil {
			a.locale.Toggle()
		}
		return a, nil
	case "o":
		a.session.Logout()
		return a, a.expire(a.t("auth.loggedOut"))
	case "r":
		return a, a.load()
	case "1":
		return a, a.show(ScreenDashboard)
	case "2":
		return a, a.show(ScreenLeads)
	case "3":
		return a, a.show(ScreenCampaigns)
	case "tab":
		return a, a.show((a.screen + 1) % 3)
	}

	if a.screen == ScreenLeads {
		var cmd tea.Cmd
		a.leads, cmd = a.leads.Update(msg)
		return a, cmd
	}
	return a, nil
}

// mount runs the initial session check off the event loop
func (a *App) mount() tea.Cmd {
	g := a.guard
	return func() tea.Msg {
		g.Mount(context.Background())
		return mountedMsg{}
	}
}

// resolve acts on the guard decision after the session changed
func (a *App) resolve() tea.Cmd {
	switch a.guard.Decide() {
	case guard.Render:
		return a.load()
	case guard.Redirect:
		if a.form == nil {
			a.form = a.newForm(authform.ModeLogin)
			return a.form.Init()
		}
	}
	return nil
}

// expire drops every piece of session data and returns to the login form.
// Repeated calls keep the first notice.
func (a *App) expire(notice string) tea.Cmd {
	if a.form != nil {
		return nil
	}
	a.epoch++
	a.notice = notice
	a.err = nil
	a.lastUpdate = time.Time{}
	a.screen = ScreenDashboard
	t := a.t
	a.dashboard = dashboard.New(nil, a.contentWidth(), a.contentHeight(), t)
	a.leads = leads.New(t)
	a.campaigns = campaigns.New(a.contentWidth(), t)
	a.setDirection(a.dir)
	a.resize()

	a.form = a.newForm(authform.ModeLogin)
	return a.form.Init()
}

// failed records err for display and reports whether there was one
func (a *App) failed(err error) bool {
	if err == nil {
		a.err = nil
		return false
	}
	a.err = err
	a.logger.Debug("Request failed", "error", err)
	return true
}

// unauthorized returns to the login form when err rejected the credential
func (a *App) unauthorized(err error) tea.Cmd {
	if errors.Is(err, gateway.ErrUnauthorized) {
		return a.expire(a.t("auth.sessionExpired"))
	}
	return nil
}

func (a *App) newForm(mode authform.Mode) *authform.Form {
	f := authform.New(mode, a.t)
	if mode == authform.ModeLogin && a.recent != nil {
		f.SetEmail(a.recent.Latest())
	}
	if a.width > 0 {
		f.SetWidth(min(60, a.contentWidth()))
	}
	return f
}

func (a *App) submit(msg authform.SubmittedMsg) tea.Cmd {
	if a.form != nil {
		a.form.SetBusy(true)
	}
	sess := a.session
	return func() tea.Msg {
		ctx := context.Background()
		if msg.Mode == authform.ModeRegister {
			return authDoneMsg{email: msg.Email, err: sess.Register(ctx, msg.Email, msg.Password, msg.Name, msg.CompanyName)}
		}
		return authDoneMsg{email: msg.Email, err: sess.Login(ctx, msg.Email, msg.Password)}
	}
}

// show switches the protected screen and loads its data
func (a *App) show(screen Screen) tea.Cmd {
	a.screen = screen
	a.err = nil
	return a.load()
}

// load fetches the data of the current screen
func (a *App) load() tea.Cmd {
	switch a.screen {
	case ScreenLeads:
		return a.loadLeads(1)
	case ScreenCampaigns:
		return a.loadCampaigns()
	default:
		return a.loadDashboard()
	}
}

// loadDashboard fetches stats and activity concurrently
func (a *App) loadDashboard() tea.Cmd {
	api, epoch := a.api, a.epoch
	return func() tea.Msg {
		var (
			stats    *client.DashboardStats
			activity []client.ActivityItem
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			stats, err = api.DashboardStats(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			activity, err = api.DashboardActivity(ctx)
			return err
		})
		err := g.Wait()
		return dashboardLoadedMsg{epoch: epoch, stats: stats, activity: activity, err: err}
	}
}

func (a *App) loadLeads(page int) tea.Cmd {
	api, epoch := a.api, a.epoch
	return func() tea.Msg {
		resp, err := api.ListLeads(context.Background(), client.LeadFilter{Page: page})
		return leadsLoadedMsg{epoch: epoch, page: resp, err: err}
	}
}

func (a *App) loadCampaigns() tea.Cmd {
	api, epoch := a.api, a.epoch
	return func() tea.Msg {
		list, err := api.ListCampaigns(context.Background())
		return campaignsLoadedMsg{epoch: epoch, campaigns: list, err: err}
	}
}

func (a *App) scoreLead(leadID string) tea.Cmd {
	api, epoch := a.api, a.epoch
	return func() tea.Msg {
		result, err := api.ScoreLead(context.Background(), leadID)
		return scoredMsg{epoch: epoch, leadID: leadID, result: result, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.guard.Decide() {
	case guard.Wait:
		content = a.viewResolving()
	case guard.Redirect:
		content = a.viewAuth()
	default:
		content = a.viewProtected()
	}
	return a.wrapWithFrame(content)
}

// viewResolving renders the neutral loading view shown while the session resolves
func (a *App) viewResolving() string {
	return styles.Block(a.spinner.View()+" "+a.t("common.loading"), a.contentWidth(), a.dir)
}

func (a *App) viewAuth() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Lock.String() + " " + a.authTitle()))
	sb.WriteString("\n")
	if a.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(icons.Info.String() + " " + a.notice))
		sb.WriteString("\n\n")
	}
	if a.form != nil {
		sb.WriteString(a.form.View())
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(
		styles.Block(sb.String(), a.contentWidth()-panelPadding, a.dir))
}

func (a *App) authTitle() string {
	if a.form != nil && a.form.Mode() == authform.ModeRegister {
		return a.t("auth.register")
	}
	return a.t("auth.login")
}

func (a *App) viewProtected() string {
	var body string
	switch a.screen {
	case ScreenLeads:
		body = a.leads.View()
	case ScreenCampaigns:
		body = a.campaigns.View()
	default:
		body = a.dashboard.View()
	}
	if a.err != nil {
		body += "\n" + styles.StatusCritical.Render(icons.Critical.String()+" "+gateway.Message(a.err, a.t("common.error")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), styles.ActivePanel.Width(a.contentWidth()).Render(body))
}

// renderTabs shows the protected screens with the current one highlighted
func (a *App) renderTabs() string {
	tabs := []struct {
		screen Screen
		icon   icons.Icon
		key    string
	}{
		{ScreenDashboard, icons.Dashboard, "nav.dashboard"},
		{ScreenLeads, icons.Leads, "nav.leads"},
		{ScreenCampaigns, icons.Campaigns, "nav.campaigns"},
	}
	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s %s", i+1, tab.icon.String(), a.t(tab.key))
		if tab.screen == a.screen {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	if a.dir == locale.RTL {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}
	return styles.Block(" "+strings.Join(parts, "   ")+" ", a.contentWidth(), a.dir)
}

// resize propagates the terminal size to child components
func (a *App) resize() {
	w := a.contentWidth()
	a.dashboard.SetSize(w-panelPadding, a.contentHeight())
	a.leads.SetSize(w-panelPadding, a.contentHeight())
	a.campaigns.SetWidth(w - panelPadding)
	if a.form != nil {
		a.form.SetWidth(min(60, w-panelPadding))
	}
}

// contentWidth calculates the width available inside the frame
func (a *App) contentWidth() int {
	return max(a.width, minTerminalWidth) - panelPadding
}

// contentHeight calculates the height available for screen content
func (a *App) contentHeight() int {
	// Header, tabs, panel border+padding (4) and footer
	return max(0, a.height-8)
}

func (a *App) t(key string) string {
	if a.locale == nil {
		return key
	}
	return a.locale.T(key)
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s %s ", icons.App.String(), titleStyle.Render("Faris AI"),
		contextStyle.Render(a.t("auth.tagline")))

	rightText := ""
	if a.locale != nil {
		rightText = " " + icons.Language.String() + " " + a.locale.Current().Name() + " "
	}
	if id := a.session.Identity(); id != nil {
		name := id.Email
		if id.Name != "" {
			name = id.Name + " · " + id.Email
		}
		rightText = " " + contextStyle.Render(icons.User.String()+" "+name) + rightText
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := max(a.width, minTerminalWidth)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	t := a.t
	var shortcuts [][2]string
	switch a.guard.Decide() {
	case guard.Wait:
		shortcuts = [][2]string{{"ctrl+c", t("keys.quit")}}
	case guard.Redirect:
		shortcuts = [][2]string{
			{"ctrl+r", t("keys.switch")},
			{"ctrl+l", t("common.language")},
			{"esc", t("keys.quit")},
		}
	default:
		shortcuts = [][2]string{
			{"1-3", t("keys.navigate")},
			{"r", t("keys.refresh")},
		}
		if a.screen == ScreenLeads {
			shortcuts = append(shortcuts, [2]string{"n/p", t("keys.page")}, [2]string{"s", t("keys.score")})
		}
		shortcuts = append(shortcuts,
			[2]string{"l", t("common.language")},
			[2]string{"o", t("nav.logout")},
			[2]string{"q", t("keys.quit")},
		)
	}

	styled := make([]string, len(shortcuts))
	plain := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		styled[i] = keyStyle.Render(s[0]) + " " + labelStyle.Render(s[1])
		plain[i] = s[0] + " " + s[1]
	}
	leftText := " " + strings.Join(styled, "  ")
	leftPlainText := " " + strings.Join(plain, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.guard.Decide() == guard.Render {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightPlainText = t("keys.updated") + " " + elapsed + " "
		rightText = statusStyle.Render(rightPlainText)
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftPlainText)-lipgloss.Width(rightPlainText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return a.t("keys.justNow")
		}
		return fmt.Sprintf("%ds", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Redirector delivers backend authorization failures to a running program.
// It satisfies gateway.Navigator.
type Redirector struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach binds the redirector to p
func (r *Redirector) Attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// RedirectToLogin implements gateway.Navigator
func (r *Redirector) RedirectToLogin() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Send(SessionExpiredMsg{})
	}
}

// Run starts the TUI
func Run(opts Options, redirector *Redirector) error {
	app := New(opts)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	if redirector != nil {
		redirector.Attach(p)
		defer redirector.Attach(nil)
	}
	_, err := p.Run()
	return err
}
