// ABOUTME: Login and registration forms as a bubbletea model
// ABOUTME: Wraps huh forms with localized labels and an inline error line

package authform

import (
	"errors"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
	"github.com/Moshe-ship/faris-ai-saas/internal/tui/styles"
)

// MinPasswordLength is the shortest password the backend accepts on registration
const MinPasswordLength = 8

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// SubmittedMsg carries completed form values
type SubmittedMsg struct {
	Mode        Mode
	Email       string
	Password    string
	Name        string
	CompanyName string
}

// SwitchModeMsg asks the parent to show the other form
type SwitchModeMsg struct {
	Mode Mode
}

// CancelledMsg is sent when the user leaves the form
type CancelledMsg struct{}

// Form is the login/register screen
type Form struct {
	mode      Mode
	translate func(string) string
	form      *huh.Form
	width     int
	err       string
	busy      bool

	email       string
	password    string
	name        string
	companyName string
}

// New creates a form in mode. translate resolves label keys.
func New(mode Mode, translate func(string) string) *Form {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	f := &Form{mode: mode, translate: translate}
	f.form = f.build()
	return f
}

// createTheme returns the huh theme matching the dashboard palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	gray := lipgloss.Color("#9CA3AF")
	grayLight := lipgloss.Color("#E5E7EB")
	red := lipgloss.Color("#F87171")
	slate := lipgloss.Color("#334155")

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Info).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

func (f *Form) build() *huh.Form {
	title := f.translate("auth.login")
	if f.mode == ModeRegister {
		title = f.translate("auth.register")
	}

	return huh.NewForm(
		huh.NewGroup(f.fields()...).
			Title(icons.Lock.String() + " " + title).
			Description(f.translate("auth.tagline")),
	).WithTheme(createTheme()).WithShowHelp(false)
}

func (f *Form) fields() []huh.Field {
	t := f.translate

	fields := []huh.Field{}
	if f.mode == ModeRegister {
		fields = append(fields,
			huh.NewInput().
				Title(t("auth.name")).
				Value(&f.name).
				Validate(validateRequired),
			huh.NewInput().
				Title(t("auth.companyName")).
				Value(&f.companyName).
				Validate(validateRequired),
		)
	}

	passwordCheck := validateRequired
	if f.mode == ModeRegister {
		passwordCheck = validateNewPassword
	}
	fields = append(fields,
		huh.NewInput().
			Title(t("auth.email")).
			Placeholder("name@company.com").
			Value(&f.email).
			Validate(validateEmail),
		huh.NewInput().
			Title(t("auth.password")).
			EchoMode(huh.EchoModePassword).
			Value(&f.password).
			Validate(passwordCheck),
	)
	return fields
}

// Mode returns the form's mode
func (f *Form) Mode() Mode {
	return f.mode
}

// SetWidth sets the form width
func (f *Form) SetWidth(width int) {
	f.width = width
	f.form = f.form.WithWidth(width)
}

// SetEmail prefills the email field
func (f *Form) SetEmail(email string) {
	f.email = email
	f.form = f.build()
	if f.width > 0 {
		f.form = f.form.WithWidth(f.width)
	}
}

// Email returns the current email field value
func (f *Form) Email() string {
	return f.email
}

// SetError shows msg under the form and reopens it for another attempt
func (f *Form) SetError(msg string) tea.Cmd {
	f.err = msg
	f.busy = false
	return f.Reset()
}

// SetBusy marks a submission in flight
func (f *Form) SetBusy(busy bool) {
	f.busy = busy
}

// Reset rebuilds the form, keeping everything except the password
func (f *Form) Reset() tea.Cmd {
	f.password = ""
	f.form = f.build()
	if f.width > 0 {
		f.form = f.form.WithWidth(f.width)
	}
	return f.form.Init()
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+r":
			next := ModeRegister
			if f.mode == ModeRegister {
				next = ModeLogin
			}
			return f, func() tea.Msg { return SwitchModeMsg{Mode: next} }
		}
	}

	if f.busy {
		return f, nil
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	if f.form.State == huh.StateCompleted {
		f.busy = true
		f.err = ""
		submitted := SubmittedMsg{
			Mode:        f.mode,
			Email:       strings.TrimSpace(f.email),
			Password:    f.password,
			Name:        strings.TrimSpace(f.name),
			CompanyName: strings.TrimSpace(f.companyName),
		}
		return f, func() tea.Msg { return submitted }
	}
	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(f.form.View())

	if f.busy {
		key := "auth.loggingIn"
		if f.mode == ModeRegister {
			key = "auth.registering"
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(f.translate(key)))
	}
	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + f.err))
	}

	hint := f.translate("auth.noAccount")
	if f.mode == ModeRegister {
		hint = f.translate("auth.hasAccount")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(hint + "  ctrl+r"))
	return sb.String()
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("required")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.New("invalid email address")
	}
	return nil
}

func validateNewPassword(s string) error {
	if len([]rune(s)) < MinPasswordLength {
		return errors.New("must be at least 8 characters")
	}
	return nil
}
