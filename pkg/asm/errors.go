package asm

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownComputation = errors.New("unknown computation")
	ErrUnknownDestination = errors.New("unknown destination")
	ErrUnknownJump        = errors.New("unknown jump")
	ErrInvalidLine        = errors.New("invalid line")
	ErrAddressOutOfRange  = errors.New("address out of range")
	ErrDuplicateLabel     = errors.New("duplicate label")
)

// LineError ties a translation failure to the source line it came from.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v on line %d: %s", e.Err, e.Line, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(l Line, err error) error {
	return &LineError{Line: l.No, Text: l.Text, Err: err}
}
