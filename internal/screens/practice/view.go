package practice

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/ui/components"
	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

const maxResultRows = 12

func (s *PracticeScreen) View(width, height int) string {
	if s.current == nil {
		return s.renderEmpty(width, height)
	}

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder

	header := theme.Label.Render(s.current.Topic.String()) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.current.Category.Label())
	b.WriteString("  " + header + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(inner).
		MarginLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(s.current.Question))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(
		theme.Card.Render(theme.Code.Render(s.schemaText))))
	b.WriteString("\n\n")

	b.WriteString("  " + s.input.View() + "\n\n")

	if status := s.renderStatus(); status != "" {
		b.WriteString("  " + status + "\n")
	}
	if s.dbError != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(inner).
			MarginLeft(2).
			Foreground(theme.Error).
			Render(s.dbError))
		b.WriteString("\n")
	}
	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(indent(components.RenderResult(s.result, maxResultRows), "  "))
	}
	if s.hintText != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(inner).
			MarginLeft(2).
			Render(theme.Label.Render("Hint: ") + theme.Hint.Render(s.hintText)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *PracticeScreen) renderEmpty(width, height int) string {
	text := "Preparing a challenge..."
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.errMsg != "" {
		text = s.errMsg + "\n\nPress Ctrl+N to try again."
		style = lipgloss.NewStyle().Foreground(theme.Error)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, style.Render(text))
}

func (s *PracticeScreen) renderStatus() string {
	if s.busy != "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(s.busy)
	}
	if s.errMsg != "" {
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}
	if !s.hasOutcome {
		return ""
	}
	return outcomeStyle(s.outcome).Render(s.outcome.Message())
}

func outcomeStyle(o challenge.Outcome) lipgloss.Style {
	switch o {
	case challenge.OutcomeCorrect:
		return theme.Correct
	case challenge.OutcomeUnevaluable:
		return theme.Unevaluable
	default:
		return theme.Incorrect
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
