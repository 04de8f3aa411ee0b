package game

import "fmt"

// ValidationError rejects a request whose actor or target is not allowed to
// perform the action. State is left untouched. Messages must never leak
// role or team information.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PhaseError rejects an action submitted for the wrong game phase.
type PhaseError struct {
	Action string
	Phase  Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s in phase %s", e.Action, e.Phase)
}

// NotFoundError marks an unknown room or player.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

// InvariantViolation marks corrupt state (deck exhausted below requirement,
// impossible transition). Fatal from the caller's point of view: logged and
// surfaced as a generic failure, never partially committed.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Msg }
