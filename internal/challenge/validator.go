package challenge

import (
	"context"
	"errors"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// Executor runs a single SQL statement. Implementations must serialize
// calls; the validator never issues two statements at once.
type Executor interface {
	Execute(ctx context.Context, query string) (*sqlexec.Result, error)
}

// Verdict is the full outcome of checking one submission.
type Verdict struct {
	Correct   bool
	Submitted *sqlexec.Result
	Reference *sqlexec.Result
}

// Validator compares a learner's query with a challenge's reference query
// by running both against the live dataset.
type Validator struct {
	exec Executor
}

// NewValidator creates a Validator using exec for both statements.
func NewValidator(exec Executor) *Validator {
	return &Validator{exec: exec}
}

// Validate reports whether submitted produces exactly the reference rows.
// A statement that fails to run yields an *ExecutionError rather than false.
func (v *Validator) Validate(ctx context.Context, ch Challenge, submitted string) (bool, error) {
	verdict, err := v.Check(ctx, ch, submitted)
	if err != nil {
		return false, err
	}
	return verdict.Correct, nil
}

// Check runs the submitted query, then the reference query, and compares
// their rows. Both results are returned for display. Each statement runs in
// its Runnable form.
func (v *Validator) Check(ctx context.Context, ch Challenge, submitted string) (*Verdict, error) {
	got, err := v.exec.Execute(ctx, Runnable(submitted))
	if err != nil {
		return nil, &ExecutionError{Source: SourceSubmitted, Query: submitted, Err: err}
	}

	want, err := v.exec.Execute(ctx, Runnable(ch.ReferenceSQL))
	if err != nil {
		return nil, &ExecutionError{Source: SourceReference, Query: ch.ReferenceSQL, Err: err}
	}

	return &Verdict{
		Correct:   SameRows(got, want),
		Submitted: got,
		Reference: want,
	}, nil
}

// CheckReference runs the challenge's reference query once. A reference
// the database cannot evaluate yields *UngradableError, so the challenge can
// be refused before the learner answers it.
func (v *Validator) CheckReference(ctx context.Context, ch Challenge) error {
	res, err := v.exec.Execute(ctx, Runnable(ch.ReferenceSQL))
	if err == nil && !res.Read {
		err = errors.New("reference query returned no rows")
	}
	if err != nil {
		return &UngradableError{Topic: ch.Topic, Category: ch.Category, Err: err}
	}
	return nil
}

// SameRows reports whether two results hold identical rows in identical
// order. Column names are ignored; values are compared exactly. A result
// from a non-read statement never matches.
func SameRows(a, b *sqlexec.Result) bool {
	if a == nil || b == nil || !a.Read || !b.Read {
		return false
	}
	if len(a.Rows) != len(b.Rows) {
		return false
	}
	return cmp.Equal(a.Rows, b.Rows)
}
