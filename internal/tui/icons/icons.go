// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	if env := os.Getenv("FARIS_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	// Terminals that commonly ship with a Nerd Font configured
	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Sections
	Dashboard = Icon{"󰕮", "▦"} // nf-md-view_dashboard
	Leads     = Icon{"󰡉", "◉"} // nf-md-account_group
	Campaigns = Icon{"󰃃", "✉"} // nf-md-bullhorn
	Messages  = Icon{"󰍡", "✎"} // nf-md-message
	Replies   = Icon{"󰑚", "↩"} // nf-md-reply

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Trends
	Chart = Icon{"󰄭", "▁"} // nf-md-chart_line
	Score = Icon{"󰓎", "★"} // nf-md-star

	// Actions
	Refresh  = Icon{"󰑓", "↻"} // nf-md-refresh
	Back     = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit     = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Logout   = Icon{"󰍃", "⏻"} // nf-md-logout
	Language = Icon{"󰗊", "⇄"} // nf-md-translate

	// Application
	App  = Icon{"󰚩", "◈"} // nf-md-robot
	User = Icon{"", "☺"} // nf-oct-person
	Lock = Icon{"", "⚿"} // nf-oct-lock
)
