package remap

import "errors"

var (
	// ErrInvertedInterval indicates an interval whose start lies after its end.
	ErrInvertedInterval = errors.New("inverted interval")

	// ErrOverflow indicates an interval end that does not fit in an int64.
	ErrOverflow = errors.New("interval overflows int64")

	// ErrEmptyRule indicates a rewrite rule of length zero.
	ErrEmptyRule = errors.New("empty rewrite rule")

	// ErrLengthMismatch indicates a rule whose source and destination differ in length.
	ErrLengthMismatch = errors.New("rule is not length preserving")

	// ErrOverlappingRules indicates two rules of one table with intersecting sources.
	ErrOverlappingRules = errors.New("overlapping rule sources")

	// ErrOddPairs indicates a (start, length) list with a dangling start.
	ErrOddPairs = errors.New("odd number of values for (start, length) pairs")
)
