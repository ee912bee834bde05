package almanac

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSeeds indicates input that does not open with a "seeds:" line.
	ErrNoSeeds = errors.New("missing seeds line")

	// ErrMalformedSeeds indicates a seed that is not a non-negative integer.
	ErrMalformedSeeds = errors.New("malformed seeds line")

	// ErrMalformedHeader indicates a line that should name a map but does not.
	ErrMalformedHeader = errors.New("malformed map header")

	// ErrMalformedRule indicates a map line that is not "dest src length".
	ErrMalformedRule = errors.New("malformed map rule")

	// ErrEmptyStage indicates a map header without any rules.
	ErrEmptyStage = errors.New("map has no rules")

	// ErrBrokenChain indicates a map whose source category is not the
	// previous map's destination.
	ErrBrokenChain = errors.New("maps do not chain")
)

// ParseError records the input line a parse failure was found on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
