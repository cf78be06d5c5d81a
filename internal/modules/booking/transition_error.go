package booking

import "fmt"

// TransitionError reports a multi-step transition that failed and was fully
// rolled back. The wrapped cause is reachable with errors.Is/As, so callers
// can still distinguish an ownership mismatch from a store outage. It is
// safe to retry the operation.
type TransitionError struct {
	Op   string
	Step string
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %s failed at step %s: %v", e.Op, e.Step, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// RollbackError reports the one state this engine cannot recover from: a
// step failed and unwinding the already-committed steps failed too. The
// four records may disagree until an operator reconciles them; the
// transition id locates the relevant log lines. Never coalesced with
// TransitionError.
type RollbackError struct {
	Op           string
	Step         string
	TransitionID string
	Cause        error
	Unwind       error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("FATAL: booking %s failed at step %s and rollback failed (transition %s): cause: %v; unwind: %v",
		e.Op, e.Step, e.TransitionID, e.Cause, e.Unwind)
}

func (e *RollbackError) Unwrap() []error { return []error{e.Cause, e.Unwind} }
