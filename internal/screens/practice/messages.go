package practice

import (
	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/sqlexec"
)

// challengeLoadedMsg is sent when a challenge has been selected and its
// table provisioned.
type challengeLoadedMsg struct {
	Challenge challenge.Challenge
	Schema    string
	Err       error
}

// runDoneMsg carries the result of an ungraded run.
type runDoneMsg struct {
	Result *sqlexec.Result
	Err    error
}

// submitDoneMsg carries the verdict of a graded submission.
type submitDoneMsg struct {
	Verdict *challenge.Verdict
	Err     error
}

// hintDoneMsg carries a generated hint.
type hintDoneMsg struct {
	Hint *hint.Hint
	Err  error
}
