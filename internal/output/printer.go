// ABOUTME: Colored terminal output for CLI commands
// ABOUTME: Honors NO_COLOR and the output.colors setting, with a --json mode

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// PrinterOptions configures the Printer
type PrinterOptions struct {
	Out    io.Writer
	Err    io.Writer
	Colors bool // output.colors config value
	JSON   bool
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	json      bool
}

// ResolveColors applies NO_COLOR and dumb-terminal detection to the configured value
func ResolveColors(configColors bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return configColors
}

// NewPrinter creates a printer. Nil writers default to stdout and stderr.
func NewPrinter(opts PrinterOptions) *Printer {
	p := &Printer{
		out:       opts.Out,
		err:       opts.Err,
		useColors: ResolveColors(opts.Colors),
		json:      opts.JSON,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.err == nil {
		p.err = os.Stderr
	}
	return p
}

// JSONMode reports whether results should be emitted as JSON
func (p *Printer) JSONMode() bool {
	return p.json
}

// Out is the writer for primary output
func (p *Printer) Out() io.Writer {
	return p.out
}

// JSON writes v as indented JSON
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	p.line(p.out, color.FgCyan, "", "", format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.line(p.out, color.FgGreen, "✓ ", "[OK] ", format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.err, color.FgYellow, "⚠ ", "[WARN] ", format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.line(p.err, color.FgRed, "✗ ", "[ERROR] ", format, args...)
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section header
func (p *Printer) Header(title string) {
	width := len([]rune(title))
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", width))
		return
	}
	fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", width))
}

// StatusBadge returns a marker for a lead or campaign status
func (p *Printer) StatusBadge(status string) string {
	if !p.useColors {
		return fmt.Sprintf("[%s]", status)
	}

	switch status {
	case "converted", "replied", "meeting_scheduled", "active", "healthy", "ok":
		return color.GreenString("●")
	case "contacted", "paused", "degraded":
		return color.YellowString("●")
	case "archived", "not_interested", "completed":
		return color.New(color.Faint).Sprint("●")
	case "unhealthy", "error":
		return color.RedString("●")
	default:
		return color.WhiteString("○")
	}
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

func (p *Printer) line(w io.Writer, attr color.Attribute, icon, plain, format string, args ...any) {
	if p.useColors {
		color.New(attr).Fprintf(w, icon+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, plain+format+"\n", args...)
}
