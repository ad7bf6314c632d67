// ABOUTME: Tests for dashboard widgets
// ABOUTME: Verifies status mapping and display-width handling

package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
)

func TestScoreLevel(t *testing.T) {
	tests := []struct {
		score int
		want  StatusLevel
	}{
		{10, StatusOK},
		{7, StatusOK},
		{6, StatusWarning},
		{4, StatusWarning},
		{3, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := ScoreLevel(tt.score); got != tt.want {
			t.Errorf("ScoreLevel(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestLeadStatusLevel(t *testing.T) {
	if LeadStatusLevel("converted") != StatusOK {
		t.Error("converted should be OK")
	}
	if LeadStatusLevel("archived") != StatusNeutral {
		t.Error("archived should be neutral")
	}
	if CampaignStatusLevel("paused") != StatusWarning {
		t.Error("paused should be a warning")
	}
}

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{-5, 0, 42, 100, 150} {
		bar := ProgressBar(pct, 12, lipgloss.Color("#10B981"))
		if w := lipgloss.Width(bar); w != 12 {
			t.Errorf("ProgressBar(%v) width = %d, want 12", pct, w)
		}
	}
	if w := lipgloss.Width(ScoreBar(13)); w != 10 {
		t.Errorf("ScoreBar width = %d, want 10", w)
	}
}

func TestShare(t *testing.T) {
	if Share(1, 0) != 0 {
		t.Error("Share with zero total should be 0")
	}
	if Share(1, 4) != 25 {
		t.Errorf("Share(1, 4) = %v, want 25", Share(1, 4))
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 5, 10}, "")
	if got != "▁▄█" {
		t.Errorf("Sparkline = %q, want %q", got, "▁▄█")
	}
	if Sparkline(nil, "") != "" {
		t.Error("empty series should render nothing")
	}
	flat := Sparkline([]float64{3, 3}, "")
	if flat != "▅▅" {
		t.Errorf("flat Sparkline = %q", flat)
	}
}

func TestMetricBlockLinesShareWidth(t *testing.T) {
	config := DefaultMetricBlockConfig()
	for _, title := range []string{"Leads", "العملاء المحتملين", strings.Repeat("x", 40)} {
		block := MetricBlock(icons.Leads, title, "1,204", "this month", config)
		for i, line := range strings.Split(block, "\n") {
			if w := lipgloss.Width(line); w != config.Width {
				t.Errorf("title %q line %d width = %d, want %d", title, i, w, config.Width)
			}
		}
	}
}
