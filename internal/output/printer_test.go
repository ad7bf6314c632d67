// ABOUTME: Tests for the colored printer and CLI error formatting
// ABOUTME: Validates JSON mode, NO_COLOR handling and exit code mapping

package output

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newTestPrinter(jsonMode bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	p := NewPrinter(PrinterOptions{Out: &out, Err: &errOut, Colors: false, JSON: jsonMode})
	return p, &out, &errOut
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if ResolveColors(true) {
		t.Error("ResolveColors(true) with NO_COLOR set should return false")
	}
}

func TestResolveColors_DumbTerm(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if ResolveColors(true) {
		t.Error("ResolveColors(true) with TERM=dumb should return false")
	}
}

func TestPrinter_PlainPrefixes(t *testing.T) {
	p, out, errOut := newTestPrinter(false)

	p.Success("logged in as %s", "a@b.com")
	p.Warning("token expires soon")
	p.Error("boom")

	if got := out.String(); got != "[OK] logged in as a@b.com\n" {
		t.Errorf("stdout = %q", got)
	}
	if !strings.Contains(errOut.String(), "[WARN] token expires soon") {
		t.Errorf("stderr missing warning: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] boom") {
		t.Errorf("stderr missing error: %q", errOut.String())
	}
}

func TestPrinter_HeaderCountsRunes(t *testing.T) {
	p, out, _ := newTestPrinter(false)
	p.Header("الحملات")

	want := "\nالحملات\n-------\n"
	if out.String() != want {
		t.Errorf("Header = %q, want %q", out.String(), want)
	}
}

func TestPrinter_JSON(t *testing.T) {
	p, out, _ := newTestPrinter(true)
	if !p.JSONMode() {
		t.Fatal("expected JSON mode")
	}
	if err := p.JSON(map[string]int{"total": 3}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := out.String(); got != "{\n  \"total\": 3\n}\n" {
		t.Errorf("JSON output = %q", got)
	}
}

func TestPrinter_StatusBadgePlain(t *testing.T) {
	p, _, _ := newTestPrinter(false)
	if got := p.StatusBadge("replied"); got != "[replied]" {
		t.Errorf("StatusBadge = %q", got)
	}
}

func TestFormatError(t *testing.T) {
	p, _, errOut := newTestPrinter(false)
	p.FormatError(&CLIError{
		Summary:    "Not logged in",
		Detail:     "no stored credential",
		Suggestion: "run 'faris login'",
	})

	got := errOut.String()
	for _, want := range []string{"[ERROR] Not logged in", "Cause: no stored credential", "Suggestion: run 'faris login'"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatError output missing %q:\n%s", want, got)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("x"), ExitFailure},
		{"unauthorized", &CLIError{Summary: "x", ExitCode: ExitUnauthorized}, ExitUnauthorized},
		{"wrapped", fmt.Errorf("cmd: %w", &CLIError{ExitCode: ExitUnauthorized}), ExitUnauthorized},
		{"zero code", &CLIError{Summary: "x"}, ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Company", "Score"}, false)
	table.AddRow("Acme", "8")
	table.AddRow("Globex", "5")

	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	if err := table.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Company", "Acme", "Globex"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table missing %q:\n%s", want, buf.String())
		}
	}
}

func TestTable_RenderRTL(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"الشركة"}, true)
	table.AddRow("أكمي")
	if err := table.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "أكمي") {
		t.Errorf("table missing row:\n%s", buf.String())
	}
}
