package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/router"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/screen"
	"github.com/abhisek/sqlchallenge/internal/screens/history"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
	"github.com/abhisek/sqlchallenge/internal/store"
	"github.com/abhisek/sqlchallenge/internal/ui/components"
	"github.com/abhisek/sqlchallenge/internal/ui/layout"
)

// PracticeScreen poses one challenge at a time and grades submissions.
type PracticeScreen struct {
	session *challenge.Session
	hints   *hint.Service
	events  store.EventRepo

	input      components.QueryInput
	current    *challenge.Challenge
	schemaText string

	busy       string
	result     *sqlexec.Result
	outcome    challenge.Outcome
	hasOutcome bool
	dbError    string
	hintText   string
	errMsg     string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen. If the session already holds a challenge
// it is shown; otherwise a random one is drawn on Init. hints and events
// may be nil.
func New(session *challenge.Session, hints *hint.Service, events store.EventRepo) *PracticeScreen {
	return &PracticeScreen{
		session: session,
		hints:   hints,
		events:  events,
		input:   components.NewQueryInput("SELECT ... OVER (...) FROM ..."),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	if ch, ok := s.session.Current(); ok {
		return tea.Batch(s.input.Init(), loadedCmd(ch))
	}
	s.busy = "Preparing a challenge..."
	return tea.Batch(s.input.Init(), s.nextCmd())
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: "Run"},
		{Key: "Ctrl+N", Description: "Next"},
	}
	if s.hints.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+T", Description: "Hint"})
	}
	if s.events != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+Y", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case challengeLoadedMsg:
		return s.handleLoaded(msg)
	case runDoneMsg:
		return s.handleRunDone(msg)
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case hintDoneMsg:
		return s.handleHintDone(msg)
	case tea.KeyPressMsg:
		if cmd, handled := s.handleKey(msg); handled {
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		return s.submit(), true
	case "ctrl+r":
		return s.run(), true
	case "ctrl+n":
		if s.busy != "" {
			return nil, true
		}
		s.busy = "Preparing a challenge..."
		return s.nextCmd(), true
	case "ctrl+t":
		return s.requestHint(), true
	case "ctrl+y":
		if s.events == nil {
			return nil, true
		}
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(s.events)}
		}, true
	}
	return nil, false
}

func (s *PracticeScreen) handleLoaded(msg challengeLoadedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	s.clearFeedback()
	s.hintText = ""
	if msg.Err != nil {
		s.current = nil
		s.errMsg = msg.Err.Error()
		var ungradable *challenge.UngradableError
		if errors.As(msg.Err, &ungradable) {
			s.errMsg = challenge.OutcomeUngradable.Message() + " Pick another category."
		}
		return s, nil
	}
	ch := msg.Challenge
	s.current = &ch
	s.schemaText = msg.Schema
	s.errMsg = ""
	s.input.Reset()
	return s, nil
}

func (s *PracticeScreen) handleRunDone(msg runDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	s.clearFeedback()
	if msg.Err != nil {
		s.dbError = databaseMessage(msg.Err)
		return s, nil
	}
	s.result = msg.Result
	return s, nil
}

func (s *PracticeScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	s.clearFeedback()
	if errors.Is(msg.Err, challenge.ErrNoChallenge) {
		s.errMsg = "No active challenge. Press Ctrl+N for a new one."
		return s, nil
	}

	correct := msg.Err == nil && msg.Verdict.Correct
	s.outcome = challenge.Classify(correct, msg.Err)
	s.hasOutcome = true
	if msg.Err != nil {
		if s.outcome == challenge.OutcomeUnevaluable {
			s.dbError = databaseMessage(msg.Err)
		}
		return s, nil
	}
	s.result = msg.Verdict.Submitted
	return s, nil
}

func (s *PracticeScreen) handleHintDone(msg hintDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.Err != nil {
		s.hintText = "No hint available right now."
		return s, nil
	}
	s.hintText = msg.Hint.Text
	return s, nil
}

func (s *PracticeScreen) clearFeedback() {
	s.result = nil
	s.hasOutcome = false
	s.outcome = ""
	s.dbError = ""
}

func (s *PracticeScreen) submit() tea.Cmd {
	query := s.input.Value()
	if s.busy != "" || s.current == nil || query == "" {
		return nil
	}
	s.input.Remember(query)
	s.busy = "Checking..."
	session := s.session
	return func() tea.Msg {
		verdict, err := session.Submit(context.Background(), query)
		return submitDoneMsg{Verdict: verdict, Err: err}
	}
}

func (s *PracticeScreen) run() tea.Cmd {
	query := s.input.Value()
	if s.busy != "" || query == "" {
		return nil
	}
	s.input.Remember(query)
	s.busy = "Running..."
	session := s.session
	return func() tea.Msg {
		res, err := session.Run(context.Background(), query)
		return runDoneMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) requestHint() tea.Cmd {
	if s.busy != "" || s.current == nil || !s.hints.Enabled() {
		return nil
	}
	s.busy = "Thinking of a hint..."
	in := hint.Input{
		Challenge:    *s.current,
		Query:        s.input.Value(),
		ErrorMessage: s.dbError,
	}
	if s.hasOutcome {
		in.Outcome = s.outcome
	}
	svc := s.hints
	return func() tea.Msg {
		h, err := svc.Hint(context.Background(), in)
		return hintDoneMsg{Hint: h, Err: err}
	}
}

func (s *PracticeScreen) nextCmd() tea.Cmd {
	session := s.session
	return func() tea.Msg {
		ch, err := session.Next(context.Background())
		if err != nil {
			return challengeLoadedMsg{Err: err}
		}
		return loadedCmd(ch)()
	}
}

func loadedCmd(ch challenge.Challenge) tea.Cmd {
	return func() tea.Msg {
		text, err := schema.Render(ch.Topic)
		if err != nil {
			return challengeLoadedMsg{Err: err}
		}
		return challengeLoadedMsg{Challenge: ch, Schema: text}
	}
}

// databaseMessage extracts the driver's message from a wrapped execution
// failure.
func databaseMessage(err error) string {
	var qe *sqlexec.QueryError
	if errors.As(err, &qe) && qe.Err != nil {
		return qe.Err.Error()
	}
	var ee *challenge.ExecutionError
	if errors.As(err, &ee) && ee.Err != nil {
		return ee.Err.Error()
	}
	return err.Error()
}
