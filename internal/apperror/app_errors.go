package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished         = errors.New("game is already finished")
	ErrGameIsNotStarted     = errors.New("game is not started")
	ErrGameAlreadyStarted   = errors.New("game is already started")
	ErrTileNotFound         = errors.New("tile not found")
	ErrIllegalTileReference = errors.New("action references a tile missing from the board")
	ErrInvalidPlayer        = errors.New("invalid player registration")
	ErrNoPendingDecision    = errors.New("no pending decision")
	ErrWrongDecisionType    = errors.New("pending decision is of a different type")
	ErrDecisionPending      = errors.New("a decision is pending, resolve it first")
	ErrNotFound             = errors.New("not found")
	ErrUnknownVariant       = errors.New("unknown board variant")
)

// BoardFileError - a malformed or missing board document, with enough context
// to report to the user. Load failures leave the running session untouched.
type BoardFileError struct {
	Slot    string
	Variant string
	Err     error
}

func (that *BoardFileError) Error() string {
	return fmt.Sprintf("board file %q (variant %q): %v", that.Slot, that.Variant, that.Err)
}

func (that *BoardFileError) Unwrap() error {
	return that.Err
}

// PlayerFileError - same contract as BoardFileError, for the player roster.
type PlayerFileError struct {
	Slot string
	Err  error
}

func (that *PlayerFileError) Error() string {
	return fmt.Sprintf("player file %q: %v", that.Slot, that.Err)
}

func (that *PlayerFileError) Unwrap() error {
	return that.Err
}
