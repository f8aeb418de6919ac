// Package components holds the small render helpers shared by the Mira
// screens.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/miralabs/mira/tui/theme"
)

// RenderKeyValue creates a key-value display
func RenderKeyValue(key, value string) string {
	t := theme.DefaultTheme
	return fmt.Sprintf("%s %s", t.Muted.Render(key+":"), value)
}

// RenderProgress creates a progress bar
func RenderProgress(current, total int, width int) string {
	t := theme.DefaultTheme

	if total <= 0 {
		return ""
	}

	percentage := float64(current) / float64(total)
	if percentage > 1.0 {
		percentage = 1.0
	}

	barWidth := width - 10 // Leave space for percentage text
	filledWidth := int(percentage * float64(barWidth))

	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", barWidth-filledWidth)

	bar := t.Success.Render(filled) + t.Muted.Render(empty)

	percentText := fmt.Sprintf(" %3d%%", int(percentage*100))
	return bar + t.Muted.Render(percentText)
}

// RenderStatusBar lays left and right content out on one line, padding
// the gap so right lands on the given width. Over-long content falls
// back to a single space between the two sides.
func RenderStatusBar(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		if right == "" {
			return left
		}
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderDivider creates a horizontal divider
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", width))
}
