package challenge

import (
	"errors"
	"fmt"

	"github.com/abhisek/sqlchallenge/internal/schema"
)

// ErrNoCandidates is returned when selection is asked to draw from an empty
// topic or category set.
var ErrNoCandidates = errors.New("no topics or categories to choose from")

// ErrNoChallenge is returned when a session is asked to validate or hint
// before any challenge has been issued.
var ErrNoChallenge = errors.New("no active challenge")

// TemplateNotFoundError reports a registry coverage gap for the selected
// pair. It is a configuration problem, not a learner error.
type TemplateNotFoundError struct {
	Topic    schema.Topic
	Category Category
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no challenge template for %s on %s", e.Category.Label(), e.Topic)
}

// UngradableError reports a challenge whose reference query cannot run on
// the connected database. Like a registry gap it is not the learner's fault.
type UngradableError struct {
	Topic    schema.Topic
	Category Category
	Err      error
}

func (e *UngradableError) Error() string {
	return fmt.Sprintf("reference answer for %s on %s cannot run on this database: %v",
		e.Category.Label(), e.Topic, e.Err)
}

func (e *UngradableError) Unwrap() error { return e.Err }

// Source names which statement failed during validation.
type Source string

const (
	SourceSubmitted Source = "submitted"
	SourceReference Source = "reference"
)

// ExecutionError reports that a statement could not be evaluated.
// A failing submitted query is unevaluable, not incorrect.
type ExecutionError struct {
	Source Source
	Query  string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s query could not run: %v", e.Source, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Outcome is the presentation-level classification of a submission.
type Outcome string

const (
	OutcomeCorrect     Outcome = "correct"
	OutcomeIncorrect   Outcome = "incorrect"
	OutcomeUnevaluable Outcome = "unevaluable"
	OutcomeRegistryGap Outcome = "registry-gap"
	OutcomeUngradable  Outcome = "ungradable"
	OutcomeFailed      Outcome = "failed"
)

// Classify maps a validation result to an Outcome so callers can render
// distinct messages for a wrong answer, a broken query and a bug.
func Classify(correct bool, err error) Outcome {
	if err == nil {
		if correct {
			return OutcomeCorrect
		}
		return OutcomeIncorrect
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		if execErr.Source == SourceReference {
			return OutcomeFailed
		}
		return OutcomeUnevaluable
	}
	var gap *TemplateNotFoundError
	if errors.As(err, &gap) {
		return OutcomeRegistryGap
	}
	var ungradable *UngradableError
	if errors.As(err, &ungradable) {
		return OutcomeUngradable
	}
	return OutcomeFailed
}

// Message returns the learner-facing text for an outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeCorrect:
		return "Correct!"
	case OutcomeIncorrect:
		return "Incorrect. Try again."
	case OutcomeUnevaluable:
		return "Your query could not run."
	case OutcomeRegistryGap:
		return "No challenge is registered for this combination."
	case OutcomeUngradable:
		return "This challenge cannot be graded on the current database."
	default:
		return "The reference answer could not be evaluated."
	}
}
