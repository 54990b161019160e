package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Column names shared by the event tables.
const (
	fieldSequence     = "sequence"
	fieldTimestamp    = "timestamp"
	fieldSessionID    = "session_id"
	fieldChallengeID  = "challenge_id"
	fieldTopic        = "topic"
	fieldCategory     = "category"
	fieldOutcome      = "outcome"
	fieldErrorMessage = "error_message"
)

// outcomeCorrect is the stored outcome of a correct attempt.
const outcomeCorrect = "correct"

// eventRepo implements EventRepo with ent's SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.drv.Dialect())
}

// insert appends one row to table, stamped with the next sequence number
// and the current time.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert(table).
		Columns(append([]string{fieldSequence, fieldTimestamp}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...).
		Query()
	return r.drv.Exec(ctx, query, args, nil)
}

// scanAll runs sel and scans every row into v, a pointer to a slice.
func (r *eventRepo) scanAll(ctx context.Context, sel *entsql.Selector, v any) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, v)
}

func (r *eventRepo) AppendChallenge(ctx context.Context, data ChallengeEventData) error {
	err := r.insert(ctx, challengeEventsTable,
		[]string{fieldSessionID, fieldChallengeID, fieldTopic, fieldCategory, "question"},
		[]any{data.SessionID, data.ChallengeID, data.Topic, data.Category, data.Question},
	)
	if err != nil {
		return fmt.Errorf("save challenge event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	err := r.insert(ctx, attemptEventsTable,
		[]string{fieldSessionID, fieldChallengeID, fieldTopic, fieldCategory,
			"query", fieldOutcome, fieldErrorMessage, "duration_ms"},
		[]any{data.SessionID, data.ChallengeID, data.Topic, data.Category,
			data.Query, data.Outcome, data.ErrorMessage, data.DurationMs},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

// attemptRow is the scanned form of an attempt_events row.
type attemptRow struct {
	Sequence     int64     `sql:"sequence"`
	Timestamp    time.Time `sql:"timestamp"`
	SessionID    string    `sql:"session_id"`
	ChallengeID  string    `sql:"challenge_id"`
	Topic        string    `sql:"topic"`
	Category     string    `sql:"category"`
	Query        string    `sql:"query"`
	Outcome      string    `sql:"outcome"`
	ErrorMessage string    `sql:"error_message"`
	DurationMs   int64     `sql:"duration_ms"`
}

func (r *eventRepo) RecentAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	b := r.builder()
	sel := b.Select(fieldSequence, fieldTimestamp, fieldSessionID, fieldChallengeID,
		fieldTopic, fieldCategory, "query", fieldOutcome, fieldErrorMessage, "duration_ms").
		From(b.Table(attemptEventsTable)).
		OrderBy(entsql.Desc(fieldSequence))

	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT(fieldSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(fieldSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(fieldTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(fieldTimestamp, opts.To.UTC()))
	}

	var rows []attemptRow
	if err := r.scanAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	events := make([]AttemptEvent, len(rows))
	for i, row := range rows {
		events[i] = AttemptEvent{
			Sequence:  row.Sequence,
			Timestamp: row.Timestamp,
			AttemptEventData: AttemptEventData{
				SessionID:    row.SessionID,
				ChallengeID:  row.ChallengeID,
				Topic:        row.Topic,
				Category:     row.Category,
				Query:        row.Query,
				Outcome:      row.Outcome,
				ErrorMessage: row.ErrorMessage,
				DurationMs:   row.DurationMs,
			},
		}
	}
	return events, nil
}

func (r *eventRepo) AttemptStats(ctx context.Context) ([]CategoryStats, error) {
	b := r.builder()
	correct := fmt.Sprintf("SUM(CASE WHEN %s = '%s' THEN 1 ELSE 0 END)", fieldOutcome, outcomeCorrect)
	sel := b.Select(
		fieldCategory,
		entsql.As(entsql.Count("*"), "total"),
		entsql.As(correct, "correct"),
	).
		From(b.Table(attemptEventsTable)).
		GroupBy(fieldCategory).
		OrderBy(fieldCategory)

	var rows []struct {
		Category string `sql:"category"`
		Total    int    `sql:"total"`
		Correct  int    `sql:"correct"`
	}
	if err := r.scanAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}

	stats := make([]CategoryStats, len(rows))
	for i, row := range rows {
		stats[i] = CategoryStats{Category: row.Category, Total: row.Total, Correct: row.Correct}
	}
	return stats, nil
}
