package stand

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("target not found")
	ErrEffectConflict = errors.New("effect conflict")
	ErrNoEffect       = errors.New("no effect on target")
	ErrAlreadyActive  = errors.New("ability already active")
	ErrNoValidTargets = errors.New("no valid targets")
	ErrNotActive      = errors.New("ability not active")
	ErrInvalidDelay   = errors.New("fuse delay must be positive")
)

// CommandError reports which engine operation failed and on which target.
type CommandError struct {
	Op        string
	TargetID  TargetID
	HasTarget bool // False for operations that take no target
	Err       error
}

func (e *CommandError) Error() string {
	if !e.HasTarget {
		return fmt.Sprintf("stand: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stand: %s target %d: %v", e.Op, e.TargetID, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

func opError(op string, id TargetID, err error) error {
	return &CommandError{Op: op, TargetID: id, HasTarget: true, Err: err}
}

func modeError(op string, err error) error {
	return &CommandError{Op: op, Err: err}
}
