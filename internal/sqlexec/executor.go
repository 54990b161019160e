package sqlexec

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Result is a materialized statement result.
type Result struct {
	// Read is true when the statement was recognised as a read and its
	// rows were fetched. Mutating statements leave Columns and Rows empty.
	Read bool

	Columns []string
	Rows    [][]any

	// RowsAffected is reported for non-read statements when the driver
	// supports it.
	RowsAffected int64
}

// QueryError wraps a driver failure for a single statement.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Config selects the practice database.
type Config struct {
	Driver string
	DSN    string
}

// Executor runs statements against the practice database. It holds a
// single connection and serializes every call, so two statements never
// run at the same time.
type Executor struct {
	mu      sync.Mutex
	db      *sql.DB
	dialect Dialect
	driver  string
}

// Open connects to the practice database.
func Open(ctx context.Context, cfg Config) (*Executor, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	// One connection: in-memory SQLite databases are per-connection, and
	// the practice dataset is a single stateful resource.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}

	slog.Debug("practice database connected", "driver", cfg.Driver)
	return &Executor{db: db, dialect: dialect, driver: cfg.Driver}, nil
}

// Dialect returns the dialect of the connected database.
func (e *Executor) Dialect() Dialect {
	return e.dialect
}

// Driver returns the database/sql driver name.
func (e *Executor) Driver() string {
	return e.driver
}

// Close releases the connection.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.db.Close()
}

// Execute runs one statement. Read statements return their rows; anything
// else returns a Result with Read false. Failures are returned as
// *QueryError.
func (e *Executor) Execute(ctx context.Context, query string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res, err := execute(ctx, e.db, query)
	slog.Debug("executed query",
		"query", query,
		"read", res != nil && res.Read,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err,
	)
	return res, err
}

// ErrDDLRefused is returned by isolated execution for schema changes that
// the dialect cannot roll back.
var ErrDDLRefused = errors.New("schema changes are not allowed on a shared practice database")

// ErrStatementRefused is returned by isolated execution for transaction
// control and for several statements sent at once.
var ErrStatementRefused = errors.New("only a single statement without transaction control is allowed")

// ExecuteIsolated runs one statement inside a transaction that is always
// rolled back, so its effects never reach later statements. Transaction
// control and multi-statement input are refused, as are schema statements
// on dialects where DDL commits implicitly.
func (e *Executor) ExecuteIsolated(ctx context.Context, query string) (*Result, error) {
	switch {
	case IsTransactionStatement(query), IsMultiStatement(query):
		return nil, &QueryError{Query: query, Err: ErrStatementRefused}
	case IsSchemaStatement(query) && !e.dialect.TransactionalDDL():
		return nil, &QueryError{Query: query, Err: ErrDDLRefused}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil {
			slog.Warn("rollback failed", "error", err)
		}
	}()

	res, err := execute(ctx, tx, query)
	slog.Debug("executed isolated query", "query", query, "error", err)
	return res, err
}

// Isolated is an Executor whose Execute never leaves changes behind.
// Sessions that share one practice database use it.
type Isolated struct {
	*Executor
}

// Execute runs query through ExecuteIsolated.
func (i Isolated) Execute(ctx context.Context, query string) (*Result, error) {
	return i.ExecuteIsolated(ctx, query)
}

// Execer is the write surface handed to Transaction callbacks.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Transaction runs fn inside a transaction while holding the executor, so
// no other statement can interleave. fn must use the given Execer.
func (e *Executor) Transaction(ctx context.Context, fn func(ctx context.Context, tx Execer) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execute(ctx context.Context, q queryer, query string) (*Result, error) {
	if !IsReadStatement(query) {
		r, err := q.ExecContext(ctx, query)
		if err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}
		res := &Result{}
		if n, err := r.RowsAffected(); err == nil {
			res.RowsAffected = n
		}
		return res, nil
	}

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	res, err := collect(rows)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	return res, nil
}

// collect materializes every row, normalizing driver byte slices to
// strings so results compare by value.
func collect(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	res := &Result{Read: true, Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return res, nil
}

// readPrefixes are the leading keywords of statements that return rows.
var readPrefixes = []string{"select", "with", "show", "explain", "values", "describe", "desc"}

// IsReadStatement reports whether query starts with a read keyword, after
// leading whitespace, comments and opening parentheses.
func IsReadStatement(query string) bool {
	q := stripLeading(query)
	lower := strings.ToLower(q)
	for _, p := range readPrefixes {
		if strings.HasPrefix(lower, p) {
			rest := lower[len(p):]
			if rest == "" || !isIdentChar(rest[0]) {
				return true
			}
		}
	}
	return false
}

// schemaPrefixes are the leading keywords of DDL statements.
var schemaPrefixes = []string{"create", "drop", "alter", "truncate", "rename"}

// transactionPrefixes start statements that would end an isolated
// transaction early.
var transactionPrefixes = []string{"begin", "commit", "rollback", "end", "savepoint", "release", "start"}

// IsSchemaStatement reports whether query starts with a DDL keyword.
func IsSchemaStatement(query string) bool {
	return hasKeywordPrefix(query, schemaPrefixes)
}

// IsTransactionStatement reports whether query controls the transaction.
func IsTransactionStatement(query string) bool {
	return hasKeywordPrefix(query, transactionPrefixes)
}

func hasKeywordPrefix(query string, keywords []string) bool {
	lower := strings.ToLower(stripLeading(query))
	for _, p := range keywords {
		if strings.HasPrefix(lower, p) {
			rest := lower[len(p):]
			if rest == "" || !isIdentChar(rest[0]) {
				return true
			}
		}
	}
	return false
}

// IsMultiStatement reports whether query holds more than one statement.
// Semicolons inside quotes and a trailing semicolon do not count.
func IsMultiStatement(query string) bool {
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == ';':
			if strings.TrimSpace(strings.Trim(query[i+1:], "; \t\r\n")) != "" {
				return true
			}
			return false
		}
	}
	return false
}

func stripLeading(q string) string {
	for {
		q = strings.TrimLeft(q, " \t\r\n(")
		switch {
		case strings.HasPrefix(q, "--"):
			nl := strings.IndexByte(q, '\n')
			if nl < 0 {
				return ""
			}
			q = q[nl+1:]
		case strings.HasPrefix(q, "/*"):
			end := strings.Index(q, "*/")
			if end < 0 {
				return ""
			}
			q = q[end+2:]
		default:
			return q
		}
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}
