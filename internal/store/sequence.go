package store

import (
	"context"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// eventSequence names the counter shared by every event table, so
// challenges, attempts and LLM calls order against each other.
const eventSequence = "events"

const (
	createSequenceTable = `CREATE TABLE IF NOT EXISTS event_sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`
	// A single upsert both seeds and advances the counter, so there is no
	// read-modify-write window.
	nextSequenceValue = `INSERT INTO event_sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = value + 1
		RETURNING value`
)

type sequenceCounter struct {
	drv  *entsql.Driver
	name string
}

func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	if err := drv.Exec(ctx, createSequenceTable, []any{}, nil); err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	return &sequenceCounter{drv: drv, name: eventSequence}, nil
}

// Next returns the next value, starting at 1.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	var rows entsql.Rows
	if err := c.drv.Query(ctx, nextSequenceValue, []any{c.name}, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, errors.New("sequence upsert returned no row")
	}
	var v int64
	if err := rows.Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}
