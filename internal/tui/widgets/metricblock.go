// ABOUTME: Compact metric block widget for dashboard displays
// ABOUTME: Draws a titled box with a value and subtitle, sized by display width

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Moshe-ship/faris-ai-saas/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       24,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#0EA5E9"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 24
	}
	innerWidth := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth-1)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	topBorder := "┌─ " + titleStyle.Render(titleStr) + " " +
		strings.Repeat("─", max(0, innerWidth-lipgloss.Width(titleStr)-1)) + "┐"

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)
	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(boxLine(valueStyle.Render(truncate(value, innerWidth)), innerWidth)),
		borderStyle.Render(boxLine(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘"),
	}, "\n")
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// boxLine pads styled content to innerWidth display cells between side borders
func boxLine(content string, innerWidth int) string {
	pad := max(0, innerWidth-lipgloss.Width(content))
	return "│  " + content + strings.Repeat(" ", pad) + "│"
}

// truncate shortens s to maxLen display cells with an ellipsis
func truncate(s string, maxLen int) string {
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:max(0, min(maxLen, len(runes)))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxLen {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
