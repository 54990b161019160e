package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

// AccuracyBar shows correct answers out of attempts as a colored bar
// followed by the counts and percentage.
type AccuracyBar struct {
	Label   string
	Correct int
	Total   int
	Width   int
}

// Accuracy is Correct/Total, or 0 without attempts.
func (a AccuracyBar) Accuracy() float64 {
	if a.Total <= 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// accuracyColor grades the fill: green from 80%, orange from 50%, red below.
func accuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.8:
		return theme.Success
	case acc >= 0.5:
		return theme.Warning
	default:
		return theme.Error
	}
}

// View renders the bar within Width cells.
func (a AccuracyBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%-22s", a.Label))
	stats := fmt.Sprintf(" %3d/%-3d", a.Correct, a.Total)
	if a.Total > 0 {
		stats += fmt.Sprintf(" %3d%%", int(a.Accuracy()*100+0.5))
	} else {
		stats += "    -"
	}
	stats = lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats)

	barWidth := a.Width - lipgloss.Width(label) - lipgloss.Width(stats) - 2
	if barWidth < 4 {
		barWidth = 4
	}
	filled := min(barWidth, int(float64(barWidth)*a.Accuracy()+0.5))

	bar := lipgloss.NewStyle().Background(accuracyColor(a.Accuracy())).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return label + "  " + bar + stats
}
