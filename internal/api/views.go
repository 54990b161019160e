package api

import (
	"time"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// Request bodies.

type createSessionRequest struct {
	Topics     []string `json:"topics"`
	Categories []string `json:"categories"`
}

type challengeRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type hintRequest struct {
	Query   string `json:"query"`
	Outcome string `json:"outcome"`
	Error   string `json:"error"`
}

// Responses. The reference query never leaves the server.

type challengeView struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	Question      string    `json:"question"`
	Schema        string    `json:"schema"`
	IssuedAt      time.Time `json:"issued_at"`
}

type sessionView struct {
	ID        string         `json:"id"`
	Attempts  int            `json:"attempts"`
	Correct   int            `json:"correct"`
	Challenge *challengeView `json:"challenge,omitempty"`
}

type resultView struct {
	Read         bool     `json:"read"`
	Columns      []string `json:"columns"`
	Rows         [][]any  `json:"rows"`
	RowsAffected int64    `json:"rows_affected,omitempty"`
}

type verdictView struct {
	Outcome string      `json:"outcome"`
	Correct bool        `json:"correct"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Result  *resultView `json:"result,omitempty"`
}

type hintView struct {
	Hint    string `json:"hint"`
	Concept string `json:"concept"`
}

type topicView struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

type schemaView struct {
	Topic  string `json:"topic"`
	Schema string `json:"schema"`
	DDL    string `json:"ddl"`
}

func newChallengeView(ch challenge.Challenge) *challengeView {
	// Render only fails for unknown topics, which a Challenge never holds.
	rendered, _ := schema.Render(ch.Topic)
	return &challengeView{
		ID:            ch.ID,
		Topic:         ch.Topic.String(),
		Category:      ch.Category.String(),
		CategoryLabel: ch.Category.Label(),
		Question:      ch.Question,
		Schema:        rendered,
		IssuedAt:      ch.IssuedAt,
	}
}

func newSessionView(s *challenge.Session) sessionView {
	attempts, correct := s.Stats()
	v := sessionView{ID: s.ID(), Attempts: attempts, Correct: correct}
	if ch, ok := s.Current(); ok {
		v.Challenge = newChallengeView(ch)
	}
	return v
}

func newResultView(r *sqlexec.Result) *resultView {
	if r == nil {
		return nil
	}
	return &resultView{
		Read:         r.Read,
		Columns:      r.Columns,
		Rows:         r.Rows,
		RowsAffected: r.RowsAffected,
	}
}
