// Package layout draws the frame around every screen: a header with the
// session score, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

// Smallest terminal that fits a schema, a query and a few result rows.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Centered renders text centered across width in fg, for loading, empty
// and error states.
func Centered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(fg).Render(text)
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small: %d x %d\n\nResize to at least %d x %d to practice.",
			width, height, MinWidth, MinHeight))
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// innerWidth is the text width left inside a bordered, padded bar.
func innerWidth(width int) int {
	return max(0, width-4)
}

// Score formats a session score, adding the percentage once something has
// been attempted.
func Score(attempts, correct int) string {
	if attempts == 0 {
		return "✓ 0 / 0"
	}
	return fmt.Sprintf("✓ %d / %d  %d%%", correct, attempts, correct*100/attempts)
}

// RenderHeader shows the product name on the left, the screen title in the
// middle and the session score on the right.
func RenderHeader(title string, attempts, correct int, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  sqlchallenge")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Success).Render(Score(attempts, correct))

	inner := innerWidth(width)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max(1, (inner-cw)/2-lw)
	rightGap := max(1, inner-lw-leftGap-cw-rw)

	return bar(width, left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right)
}

// RenderFooter lists key hints. When they do not fit, hints before the
// last are dropped from the right; the last one, usually Quit, stays.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	const sep = "   "
	line := func(ps []string) string { return "  " + strings.Join(ps, sep) }
	for len(parts) > 1 && lipgloss.Width(line(parts)) > innerWidth(width) {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar(width, line(parts))
}

// RenderFrame stacks header, content and footer, padding content to fill
// the height between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	return header + "\n" +
		lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" +
		footer
}
