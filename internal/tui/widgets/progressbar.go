// ABOUTME: Compact progress bars for rates and score shares
// ABOUTME: Renders filled and empty cells with lipgloss colors

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var emptyColor = lipgloss.Color("#374151")

// ProgressBar renders a bar of width cells filled to percent
func ProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(emptyColor).Render(strings.Repeat("░", empty))
}

// ScoreBar renders a 0-10 lead score as a ten-cell bar colored by level
func ScoreBar(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	bg, _ := levelColors(ScoreLevel(score))
	return ProgressBar(float64(score)*10, 10, bg)
}

// Share returns part as a percentage of total, or 0 when total is 0
func Share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
