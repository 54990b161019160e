package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

const titleFull = ` ███████╗ ██████╗ ██╗
 ██╔════╝██╔═══██╗██║
 ███████╗██║   ██║██║
 ╚════██║██║▄▄ ██║██║
 ███████║╚██████╔╝███████╗
 ╚══════╝ ╚══▀▀═╝ ╚══════╝`

const titleCompact = "S · Q · L"

const tagline = "window function challenges"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art) + "\n" + theme.Subtitle.Render(tagline))
}

// renderStatsBar shows this run's score next to the all-time totals.
func renderStatsBar(st stats, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	weakest := dim.Render("no weak spot yet")
	if st.weakest != "" {
		weakest = weakStyle.Render("weakest " + st.weakest)
	}

	sep := "  "
	score := fmt.Sprintf("✓ %d/%d THIS RUN", st.correct, st.attempts)
	total := fmt.Sprintf("Σ %d/%d ALL TIME", st.allCorrect, st.allAttempts)
	if compact {
		sep = " "
		score = fmt.Sprintf("✓%d/%d", st.correct, st.attempts)
		total = fmt.Sprintf("Σ%d/%d", st.allCorrect, st.allAttempts)
	}

	line := scoreStyle.Render(score) + sep + totalStyle.Render(total)
	if !compact {
		line += sep + weakest
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		switch {
		case disabled[i]:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+label))
		case i == selected:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderHintsNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Hints are off. Set an LLM API key to enable them (see sqlchallenge --help)")
}

func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
