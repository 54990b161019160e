package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ChallengeEventData records a challenge being issued.
type ChallengeEventData struct {
	SessionID   string
	ChallengeID string
	Topic       string
	Category    string
	Question    string
}

// AttemptEventData records one graded submission.
type AttemptEventData struct {
	SessionID    string
	ChallengeID  string
	Topic        string
	Category     string
	Query        string
	Outcome      string
	ErrorMessage string
	DurationMs   int64
}

// AttemptEvent is a stored attempt.
type AttemptEvent struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// CategoryStats aggregates attempts for one category.
type CategoryStats struct {
	Category string
	Total    int
	Correct  int
}

// Accuracy returns Correct/Total, or 0 when there are no attempts.
func (c CategoryStats) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// ModelUsage aggregates LLM requests served by one model.
type ModelUsage struct {
	Provider     string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendChallenge records a challenge being issued.
	AppendChallenge(ctx context.Context, data ChallengeEventData) error

	// AppendAttempt records a graded submission.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAttempts returns attempts newest first.
	RecentAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)

	// AttemptStats returns per-category totals ordered by category.
	AttemptStats(ctx context.Context) ([]CategoryStats, error)

	// LLMUsage returns request and token totals per provider and model.
	LLMUsage(ctx context.Context) ([]ModelUsage, error)
}
