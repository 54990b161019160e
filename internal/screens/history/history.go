package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/screen"
	"github.com/abhisek/sqlchallenge/internal/store"
	"github.com/abhisek/sqlchallenge/internal/ui/components"
	"github.com/abhisek/sqlchallenge/internal/ui/layout"
	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

const recentLimit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEvent
	Stats    []store.CategoryStats
	Err      error
}

// HistoryScreen lists recent attempts and per-category accuracy.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.AttemptEvent
	stats     []store.CategoryStats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.RecentAttempts(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.AttemptStats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Show query"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(width, theme.Error, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(width, theme.TextDim, "\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return layout.Centered(width, theme.TextDim, "\n\n  No attempts yet. Solve a challenge first!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderStats(width))
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-14s %-9s %-22s %-12s %s",
			prefix,
			humanize.Time(a.Timestamp),
			a.Topic,
			categoryLabel(a.Category),
			a.Outcome,
			humanize.Comma(a.DurationMs)+"ms")

		style := lipgloss.NewStyle().Foreground(outcomeColor(challenge.Outcome(a.Outcome)))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(theme.Code.Render("      " + a.Query))
			b.WriteString("\n")
			if a.ErrorMessage != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("      " + a.ErrorMessage))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderStats(width int) string {
	barWidth := width - 8
	if barWidth > 70 {
		barWidth = 70
	}

	var b strings.Builder
	b.WriteString(theme.Label.Render("  Accuracy by category"))
	b.WriteString("\n")
	for _, st := range s.stats {
		bar := components.AccuracyBar{
			Label:   categoryLabel(st.Category),
			Correct: st.Correct,
			Total:   st.Total,
			Width:   barWidth,
		}
		b.WriteString("  " + bar.View() + "\n")
	}
	return b.String()
}

func categoryLabel(name string) string {
	c, err := challenge.ParseCategory(name)
	if err != nil {
		return name
	}
	return c.Label()
}

func outcomeColor(o challenge.Outcome) color.Color {
	switch o {
	case challenge.OutcomeCorrect:
		return theme.Success
	case challenge.OutcomeIncorrect:
		return theme.Error
	case challenge.OutcomeUnevaluable:
		return theme.Warning
	default:
		return theme.TextDim
	}
}
