package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/screen"
	"github.com/abhisek/sqlchallenge/internal/screens/history"
	"github.com/abhisek/sqlchallenge/internal/screens/picker"
	"github.com/abhisek/sqlchallenge/internal/screens/practice"
	"github.com/abhisek/sqlchallenge/internal/store"
	"github.com/abhisek/sqlchallenge/internal/ui/components"
)

type stats struct {
	attempts, correct       int
	allAttempts, allCorrect int
	weakest                 string
}

type statsLoadedMsg struct {
	Stats []store.CategoryStats
	Err   error
}

// HomeScreen is the landing screen.
type HomeScreen struct {
	session *challenge.Session
	hints   *hint.Service
	events  store.EventRepo

	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. hints and events may be nil.
func New(session *challenge.Session, hints *hint.Service, events store.EventRepo) *HomeScreen {
	menuLabels := []string{"PRACTICE", "CHOOSE CHALLENGE", "HISTORY", "QUIT"}
	disabled := map[int]bool{2: events == nil}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(session, hints, events)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: picker.New(session, hints, events)}
			}
		}},
		{Label: menuLabels[2], Disabled: disabled[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(events)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		session:    session,
		hints:      hints,
		events:     events,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.events == nil {
		return nil
	}
	repo := h.events
	return func() tea.Msg {
		st, err := repo.AttemptStats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err == nil {
			h.applyStats(msg.Stats)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) applyStats(all []store.CategoryStats) {
	h.stats.allAttempts, h.stats.allCorrect, h.stats.weakest = 0, 0, ""
	worst := 2.0
	for _, st := range all {
		h.stats.allAttempts += st.Total
		h.stats.allCorrect += st.Correct
		if st.Total > 0 && st.Accuracy() < worst {
			worst = st.Accuracy()
			h.stats.weakest = st.Category
			if c, err := challenge.ParseCategory(st.Category); err == nil {
				h.stats.weakest = c.Label()
			}
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 30 || width < 80
	cw := contentWidth(width)

	h.stats.attempts, h.stats.correct = h.session.Stats()

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw, compact),
	}
	if !h.hints.Enabled() {
		sections = append(sections, renderHintsNote(cw))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
