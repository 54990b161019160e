package hint

import "github.com/abhisek/sqlchallenge/internal/challenge"

// Input is everything the tutor sees when asked for a hint.
type Input struct {
	Challenge challenge.Challenge
	Query     string

	// Outcome and ErrorMessage describe the last submission, if any.
	Outcome      challenge.Outcome
	ErrorMessage string
}

// Hint is a nudge returned to the learner.
type Hint struct {
	Text    string
	Concept string
}
