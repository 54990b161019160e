package challenge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
	"github.com/abhisek/sqlchallenge/internal/store"
)

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	Selector  *Selector
	Validator *Validator
	Executor  Executor

	// Events records issued challenges and attempts. Optional.
	Events store.EventRepo

	// Topics and Categories bound the draw. Empty means all.
	Topics     []schema.Topic
	Categories []Category
}

// Session holds the active challenge for one learner. The challenge lives
// for one question cycle and is replaced wholesale by Next or Choose.
type Session struct {
	id  string
	cfg SessionConfig

	mu       sync.Mutex
	current  *Challenge
	attempts int
	correct  int
}

// NewSession creates a session with no active challenge.
func NewSession(cfg SessionConfig) *Session {
	if len(cfg.Topics) == 0 {
		cfg.Topics = schema.Topics()
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	return &Session{id: uuid.NewString(), cfg: cfg}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Current returns the active challenge, if any.
func (s *Session) Current() (Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Challenge{}, false
	}
	return *s.current, true
}

// Stats returns the number of submissions and how many were correct.
func (s *Session) Stats() (attempts, correct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts, s.correct
}

// Next draws and installs a new challenge. On failure the session is left
// without an active challenge.
func (s *Session) Next(ctx context.Context) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	ch, err := s.cfg.Selector.Next(ctx, s.cfg.Topics, s.cfg.Categories)
	if err != nil {
		return Challenge{}, err
	}
	if err := s.install(ctx, ch); err != nil {
		return Challenge{}, err
	}
	return ch, nil
}

// Choose installs the challenge for a specific pair, provisioning its topic
// first.
func (s *Session) Choose(ctx context.Context, topic schema.Topic, category Category) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	ch, err := s.cfg.Selector.Next(ctx, []schema.Topic{topic}, []Category{category})
	if err != nil {
		return Challenge{}, err
	}
	if err := s.install(ctx, ch); err != nil {
		return Challenge{}, err
	}
	return ch, nil
}

// install makes ch the active challenge once its reference query has run
// against the freshly provisioned data.
func (s *Session) install(ctx context.Context, ch Challenge) error {
	if s.cfg.Validator != nil {
		if err := s.cfg.Validator.CheckReference(ctx, ch); err != nil {
			slog.Error("challenge cannot be graded",
				"topic", ch.Topic, "category", ch.Category, "error", err)
			return err
		}
	}

	s.current = &ch
	if s.cfg.Events == nil {
		return nil
	}
	err := s.cfg.Events.AppendChallenge(ctx, store.ChallengeEventData{
		SessionID:   s.id,
		ChallengeID: ch.ID,
		Topic:       string(ch.Topic),
		Category:    string(ch.Category),
		Question:    ch.Question,
	})
	if err != nil {
		slog.Warn("failed to record challenge event", "error", err)
	}
	return nil
}

// Submit validates query against the active challenge and records the
// attempt.
func (s *Session) Submit(ctx context.Context, query string) (*Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoChallenge
	}
	ch := *s.current

	start := time.Now()
	verdict, err := s.cfg.Validator.Check(ctx, ch, query)
	elapsed := time.Since(start)

	correct := err == nil && verdict.Correct
	s.attempts++
	if correct {
		s.correct++
	}
	outcome := Classify(correct, err)
	slog.Info("submission checked",
		"challenge_id", ch.ID,
		"topic", ch.Topic,
		"category", ch.Category,
		"outcome", outcome,
	)

	if s.cfg.Events != nil {
		data := store.AttemptEventData{
			SessionID:   s.id,
			ChallengeID: ch.ID,
			Topic:       string(ch.Topic),
			Category:    string(ch.Category),
			Query:       query,
			Outcome:     string(outcome),
			DurationMs:  elapsed.Milliseconds(),
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		if recErr := s.cfg.Events.AppendAttempt(ctx, data); recErr != nil {
			slog.Warn("failed to record attempt event", "error", recErr)
		}
	}

	return verdict, err
}

// Run executes a free-form query against the practice dataset without
// grading it.
func (s *Session) Run(ctx context.Context, query string) (*sqlexec.Result, error) {
	if s.cfg.Executor == nil {
		return nil, errors.New("no executor configured")
	}
	return s.cfg.Executor.Execute(ctx, query)
}
