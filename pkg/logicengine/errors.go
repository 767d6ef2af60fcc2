package logicengine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors callers can match with errors.Is, per spec.md §7's
// caller-facing taxonomy. Search-time failures (unification, occurs
// check, arithmetic contradiction) are never wrapped as errors — they
// stay internal bool/(T, bool) returns and simply prune a search branch.
var (
	// ErrNoSolutions means a stage's combined goal had zero solutions;
	// the state vector is left unchanged.
	ErrNoSolutions = errors.New("no solutions found")
	// ErrAmbiguous means a stage's combined goal had two or more
	// solutions that disagree on at least one next-variable value; the
	// state vector is left unchanged.
	ErrAmbiguous = errors.New("ambiguous state update")
	// ErrUnknownStage means a caller asked to run a stage index or name
	// that doesn't exist.
	ErrUnknownStage = errors.New("unknown stage")
)

// StageError wraps one of the sentinel stage errors above with the
// failing stage's name and, for ErrAmbiguous, the differing state
// variables.
type StageError struct {
	Stage    string
	Sentinel error
	Diffs    []string // populated only for ErrAmbiguous
}

func (e *StageError) Error() string {
	switch e.Sentinel {
	case ErrNoSolutions:
		return fmt.Sprintf("State constraint failure in stage '%s': no solutions found", e.Stage)
	case ErrAmbiguous:
		return fmt.Sprintf("Ambiguous state update in stage '%s': multiple solutions found. Differing state vars: [%s]", e.Stage, strings.Join(e.Diffs, ", "))
	default:
		return fmt.Sprintf("stage '%s': %v", e.Stage, e.Sentinel)
	}
}

func (e *StageError) Unwrap() error {
	return e.Sentinel
}
