package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// QueryInput is a single-line SQL editor with recall of earlier queries.
type QueryInput struct {
	Model   textinput.Model
	history []string
	cursor  int // index into history while recalling; len(history) means the live line
	draft   string
}

// NewQueryInput creates a focused query input.
func NewQueryInput(placeholder string) QueryInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "sql> "
	ti.CharLimit = 4000
	ti.Focus()
	return QueryInput{Model: ti}
}

// Init returns the cursor blink command.
func (q QueryInput) Init() tea.Cmd {
	return q.Model.Focus()
}

// Update handles editing keys. Up and Down walk through remembered
// queries.
func (q QueryInput) Update(msg tea.Msg) (QueryInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "up":
			q.recall(-1)
			return q, nil
		case "down":
			q.recall(1)
			return q, nil
		}
	}

	var cmd tea.Cmd
	q.Model, cmd = q.Model.Update(msg)
	return q, cmd
}

func (q *QueryInput) recall(step int) {
	if len(q.history) == 0 {
		return
	}
	if q.cursor == len(q.history) {
		q.draft = q.Model.Value()
	}
	next := q.cursor + step
	if next < 0 || next > len(q.history) {
		return
	}
	q.cursor = next
	if next == len(q.history) {
		q.Model.SetValue(q.draft)
	} else {
		q.Model.SetValue(q.history[next])
	}
	q.Model.CursorEnd()
}

// Remember appends query to the recall list, skipping blanks and
// immediate repeats.
func (q *QueryInput) Remember(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	if n := len(q.history); n == 0 || q.history[n-1] != query {
		q.history = append(q.history, query)
	}
	q.cursor = len(q.history)
	q.draft = ""
}

// View renders the input line.
func (q QueryInput) View() string {
	return q.Model.View()
}

// Value returns the current text, trimmed.
func (q QueryInput) Value() string {
	return strings.TrimSpace(q.Model.Value())
}

// Reset clears the line.
func (q *QueryInput) Reset() {
	q.Model.Reset()
	q.cursor = len(q.history)
	q.draft = ""
}
