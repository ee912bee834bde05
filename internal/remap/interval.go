package remap

import (
	"fmt"
	"math"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start, End int64
}

// NewInterval returns [start, end). It fails if start > end.
func NewInterval(start, end int64) (Interval, error) {
	if start > end {
		return Interval{}, fmt.Errorf("%w: [%d, %d)", ErrInvertedInterval, start, end)
	}
	return Interval{start, end}, nil
}

// Span returns [start, start+length).
func Span(start, length int64) (Interval, error) {
	if length < 0 {
		return Interval{}, fmt.Errorf("%w: length %d", ErrInvertedInterval, length)
	}
	if start > math.MaxInt64-length {
		return Interval{}, fmt.Errorf("%w: %d+%d", ErrOverflow, start, length)
	}
	return Interval{start, start + length}, nil
}

// Point returns the interval holding only v.
func Point(v int64) Interval {
	return Interval{v, v + 1}
}

func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

func (iv Interval) Empty() bool {
	return iv.Start >= iv.End
}

func (iv Interval) Contains(v int64) bool {
	return iv.Start <= v && v < iv.End
}

// Intersect returns the common part of iv and o, which is empty when they
// do not overlap.
func (iv Interval) Intersect(o Interval) Interval {
	r := Interval{max(iv.Start, o.Start), min(iv.End, o.End)}
	if r.Start >= r.End {
		return Interval{}
	}
	return r
}

func (iv Interval) Shift(offset int64) Interval {
	return Interval{iv.Start + offset, iv.End + offset}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}
