package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionFactory builds a practice session restricted to the given
// topics and categories. Empty slices mean no restriction.
type SessionFactory func(topics []schema.Topic, categories []challenge.Category) *challenge.Session

type trackedSession struct {
	session  *challenge.Session
	lastUsed time.Time
}

// Sessions keeps practice sessions in memory, keyed by session ID.
//
// All sessions share one practice database, so operations that provision
// or grade hold the practice lock: a reprovision from one learner never
// lands between the two statements of another learner's check.
type Sessions struct {
	factory SessionFactory
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*trackedSession

	practice sync.Mutex
}

// NewSessions creates a session registry. Sessions idle for longer than
// idleTTL are dropped by Sweep; zero keeps them forever.
func NewSessions(factory SessionFactory, idleTTL time.Duration) *Sessions {
	return &Sessions{
		factory:  factory,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*trackedSession),
	}
}

// Create starts a session.
func (m *Sessions) Create(topics []schema.Topic, categories []challenge.Category) *challenge.Session {
	s := m.factory(topics, categories)

	m.mu.Lock()
	m.sessions[s.ID()] = &trackedSession{session: s, lastUsed: m.now()}
	m.mu.Unlock()

	slog.Info("session created", "session_id", s.ID())
	return s
}

// Get returns a session and marks it used.
func (m *Sessions) Get(id string) (*challenge.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	t.lastUsed = m.now()
	return t.session, nil
}

// Len returns the number of live sessions.
func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// WithPractice runs fn while holding the shared practice database.
func (m *Sessions) WithPractice(fn func() error) error {
	m.practice.Lock()
	defer m.practice.Unlock()
	return fn()
}

// Sweep drops sessions idle since before now minus the TTL and returns
// how many were removed.
func (m *Sessions) Sweep() int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, t := range m.sessions {
		if t.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *Sessions) StartSweeper(ctx context.Context, interval time.Duration) {
	if m.idleTTL <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					slog.Info("expired idle sessions", "count", n, "remaining", m.Len())
				}
			}
		}
	}()
}
