package game

import (
	"errors"
	"fmt"
)

// Reasons a move is rejected. A rejected move never mutates state.
var (
	ErrGameOver           = errors.New("game is over")
	ErrWrongPhase         = errors.New("move not allowed in this phase")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrInvalidSteps       = errors.New("steps must be at least 1")
	ErrNotEnoughLeaders   = errors.New("not enough free leaders")
	ErrNoActionsLeft      = errors.New("no actions left this phase")
	ErrActionsRemaining   = errors.New("actions remain; keep inventing")
	ErrNoMatchingCard     = errors.New("no card of that build type left")
	ErrCardNotFound       = errors.New("card not found")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrDuplicateEraWonder = errors.New("already holds a wonder of that era")
	ErrWonderLocked       = errors.New("wonders cannot be flipped or demolished")
)

// RejectedError wraps the reason a move was refused.
type RejectedError struct {
	Move   Move
	Reason error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected %s by player %q: %v", e.Move, e.Move.Player, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}

func reject(m Move, reason error) error {
	return &RejectedError{Move: m, Reason: reason}
}

// IsRejected reports whether err is an inert move rejection.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// ConsistencyError reports a broken engine invariant. It means an engine bug
// and callers should abort the game.
type ConsistencyError struct {
	Violations []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("state consistency violated: %v", e.Violations)
}
