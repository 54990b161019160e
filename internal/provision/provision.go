// Package provision creates and refills the practice tables that challenges
// run against.
package provision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/abhisek/sqlchallenge/internal/schema"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// DefaultRows is the number of rows inserted per provisioning.
const DefaultRows = 100

// Target is the practice database being provisioned.
type Target interface {
	Dialect() sqlexec.Dialect
	Transaction(ctx context.Context, fn func(ctx context.Context, tx sqlexec.Execer) error) error
}

// Options configures a Provisioner.
type Options struct {
	// Rows per table. Zero means DefaultRows.
	Rows int

	// Seed for the data generator. Zero picks a random seed.
	Seed uint64
}

// Provisioner recreates a topic's table and fills it with synthetic rows.
type Provisioner struct {
	target Target
	rows   int
	now    func() time.Time

	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New creates a Provisioner for target.
func New(target Target, opts Options) *Provisioner {
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Provisioner{
		target: target,
		rows:   rows,
		now:    time.Now,
		faker:  gofakeit.New(opts.Seed),
	}
}

// Generate builds a fresh dataset for topic without touching the database.
func (p *Provisioner) Generate(topic schema.Topic) (Dataset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ds, ok := generate(p.faker, topic, p.rows, p.now())
	if !ok {
		return Dataset{}, fmt.Errorf("unknown schema topic %q", topic)
	}
	return ds, nil
}

// Provision ensures topic's table exists, empties it and inserts a new
// dataset. The whole sequence runs in one transaction.
func (p *Provisioner) Provision(ctx context.Context, topic schema.Topic) error {
	dialect := p.target.Dialect()
	ddl, err := DDL(dialect, topic)
	if err != nil {
		return err
	}
	ds, err := p.Generate(topic)
	if err != nil {
		return err
	}

	table := dialect.QuoteIdent(topic.String())
	insert := insertStatement(dialect, table, ds.Columns)

	start := time.Now()
	err = p.target.Transaction(ctx, func(ctx context.Context, tx sqlexec.Execer) error {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create table %s: %w", topic, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("empty table %s: %w", topic, err)
		}
		for i, row := range ds.Rows {
			if _, err := tx.ExecContext(ctx, insert, bindValues(dialect, row)...); err != nil {
				return fmt.Errorf("insert row %d into %s: %w", i+1, topic, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("provisioned practice table",
		"topic", topic,
		"rows", len(ds.Rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ProvisionAll provisions each topic in order, stopping at the first error.
func (p *Provisioner) ProvisionAll(ctx context.Context, topics []schema.Topic) error {
	for _, t := range topics {
		if err := p.Provision(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func insertStatement(d sqlexec.Dialect, table string, columns []string) string {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))
}

// bindValues adapts generated values to the driver. SQLite has no date
// type, so dates are stored as ISO text to keep comparisons and ordering
// lexical.
func bindValues(d sqlexec.Dialect, row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if t, ok := v.(time.Time); ok && d == sqlexec.DialectSQLite {
			out[i] = t.Format(time.DateOnly)
			continue
		}
		out[i] = v
	}
	return out
}
