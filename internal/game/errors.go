package game

import (
	"errors"
	"fmt"
)

// IllegalActionError is a recoverable rejection of a player action: wrong
// phase, wrong turn, missing target or mode, unpayable cost. No state
// mutation survives the failed check.
type IllegalActionError struct {
	PlayerID string
	Reason   string
	Err      error
}

func (e *IllegalActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("illegal action by %s: %s: %v", e.PlayerID, e.Reason, e.Err)
	}
	return fmt.Sprintf("illegal action by %s: %s", e.PlayerID, e.Reason)
}

func (e *IllegalActionError) Unwrap() error { return e.Err }

func illegalAction(playerID, reason string) error {
	return &IllegalActionError{PlayerID: playerID, Reason: reason}
}

func illegalActionErr(playerID, reason string, err error) error {
	return &IllegalActionError{PlayerID: playerID, Reason: reason, Err: err}
}

// IsIllegalAction reports whether err is an illegal-action rejection.
func IsIllegalAction(err error) bool {
	var target *IllegalActionError
	return errors.As(err, &target)
}

// PlayExecutionError is a fault after a card entered Limbo, during cost
// payment or resolution. The play pipeline rolls the object back to its
// prior zone before this error surfaces.
type PlayExecutionError struct {
	CardID string
	Stage  string
	Err    error
}

func (e *PlayExecutionError) Error() string {
	return fmt.Sprintf("play of %s failed during %s: %v", e.CardID, e.Stage, e.Err)
}

func (e *PlayExecutionError) Unwrap() error { return e.Err }

// IntegrityError indicates a corrupt or incompletely specified ruleset:
// unknown phase, unknown verb, missing definition for an object known to
// exist. It is never caught internally; masking it would desynchronize
// state from rules.
type IntegrityError struct {
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("ruleset integrity fault: %s", e.Detail)
}

func integrityFault(format string, args ...any) error {
	return &IntegrityError{Detail: fmt.Sprintf(format, args...)}
}
