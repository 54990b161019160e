package picker

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/screen"
	"github.com/abhisek/sqlchallenge/internal/screens/practice"
	"github.com/abhisek/sqlchallenge/internal/store"
	"github.com/abhisek/sqlchallenge/internal/ui/components"
	"github.com/abhisek/sqlchallenge/internal/ui/layout"
	"github.com/abhisek/sqlchallenge/internal/ui/theme"
)

type topicChosenMsg struct {
	Topic schema.Topic
}

type categoryChosenMsg struct {
	Category challenge.Category
}

type chooseDoneMsg struct {
	Err error
}

// PickerScreen lets the learner pick a topic and then a window function.
type PickerScreen struct {
	session *challenge.Session
	hints   *hint.Service
	events  store.EventRepo

	topics     components.Menu
	categories components.Menu
	topic      schema.Topic
	busy       bool
	errMsg     string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a PickerScreen.
func New(session *challenge.Session, hints *hint.Service, events store.EventRepo) *PickerScreen {
	var topicItems []components.MenuItem
	for _, t := range schema.Topics() {
		topicItems = append(topicItems, components.MenuItem{
			Label:  t.String(),
			Detail: topicColumns(t),
			Action: func() tea.Cmd {
				return func() tea.Msg { return topicChosenMsg{Topic: t} }
			},
		})
	}

	var categoryItems []components.MenuItem
	for _, c := range challenge.Categories() {
		var detail string
		if c.OrderedSet() {
			detail = "not in random rotation"
		}
		categoryItems = append(categoryItems, components.MenuItem{
			Label:  c.Label(),
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg { return categoryChosenMsg{Category: c} }
			},
		})
	}

	return &PickerScreen{
		session:    session,
		hints:      hints,
		events:     events,
		topics:     components.NewMenu(topicItems),
		categories: components.NewMenu(categoryItems),
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Choose Challenge"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if p.topic != "" {
		return append(hints, layout.KeyHint{Key: "Backspace", Description: "Topics"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicChosenMsg:
		p.topic = msg.Topic
		p.errMsg = ""
		return p, nil

	case categoryChosenMsg:
		p.busy = true
		p.errMsg = ""
		session, topic := p.session, p.topic
		return p, func() tea.Msg {
			_, err := session.Choose(context.Background(), topic, msg.Category)
			return chooseDoneMsg{Err: err}
		}

	case chooseDoneMsg:
		p.busy = false
		if msg.Err != nil {
			p.errMsg = msg.Err.Error()
			var ungradable *challenge.UngradableError
			if errors.As(msg.Err, &ungradable) {
				p.errMsg = challenge.OutcomeUngradable.Message()
			}
			return p, nil
		}
		next := practice.New(p.session, p.hints, p.events)
		return p, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if p.busy {
			return p, nil
		}
		if p.topic != "" && msg.String() == "backspace" {
			p.topic = ""
			p.errMsg = ""
			return p, nil
		}
	}

	var cmd tea.Cmd
	if p.topic == "" {
		p.topics, cmd = p.topics.Update(msg)
	} else {
		p.categories, cmd = p.categories.Update(msg)
	}
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	var heading, body string
	if p.topic == "" {
		heading = "Pick a dataset"
		body = p.topics.View()
	} else {
		heading = "Pick a window function for " + p.topic.String()
		body = p.categories.View()
	}

	content := theme.Label.Render(heading) + "\n\n" + body
	switch {
	case p.busy:
		content += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Preparing data...")
	case p.errMsg != "":
		content += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Padding(1, 3).Render(content))
}

func topicColumns(t schema.Topic) string {
	table, err := schema.ParseDDL(t.DDL())
	if err != nil {
		return ""
	}
	return strings.Join(table.ColumnNames(), ", ")
}
