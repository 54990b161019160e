package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

// MenuItem is one choice in a Menu. Detail is shown dimmed after the
// label, for example a topic's columns.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of choices. Navigation skips disabled items and
// wraps at both ends; digits 1-9 activate the matching item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if len(items) > 0 && items[0].Disabled {
		m.move(1)
	}
	return m
}

// move steps the selection by delta (+1 or -1) to the next enabled item.
func (m *Menu) move(delta int) {
	n := len(m.Items)
	for i, step := m.Selected, 0; step < n; step++ {
		i = (i + delta + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update handles navigation keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) && n <= 9 {
			if m.Items[n-1].Disabled {
				return m, nil
			}
			m.Selected = n - 1
			return m, m.activate(m.Selected)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders one numbered line per item.
func (m Menu) View() string {
	var (
		b        strings.Builder
		selected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		normal   = lipgloss.NewStyle().Foreground(theme.Text)
		dim      = lipgloss.NewStyle().Foreground(theme.TextDim)
	)
	for i, item := range m.Items {
		marker := "   "
		style := normal
		switch {
		case item.Disabled:
			style = dim
		case i == m.Selected:
			marker, style = " ▸ ", selected
		}

		num := "  "
		if i < 9 {
			num = strconv.Itoa(i+1) + "."
		}
		b.WriteString(style.Render(marker + num + " " + item.Label))
		if item.Detail != "" {
			b.WriteString(dim.Render("  " + item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
