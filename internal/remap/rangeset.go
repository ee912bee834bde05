package remap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/b97tsk/rangeset"
)

// Set is a collection of intervals. Unlike a range set it keeps intervals
// as given: nothing is merged unless Coalesce is called.
type Set []Interval

// Points returns one length-1 interval per value.
func Points(values ...int64) Set {
	s := make(Set, 0, len(values))
	for _, v := range values {
		s = append(s, Point(v))
	}
	return s
}

// Pairs reads values as consecutive (start, length) pairs.
func Pairs(values ...int64) (Set, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPairs, len(values))
	}
	s := make(Set, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		iv, err := Span(values[i], values[i+1])
		if err != nil {
			return nil, err
		}
		s = append(s, iv)
	}
	return s, nil
}

// Len returns the number of values the set represents, counting shared
// values once per interval.
func (s Set) Len() int64 {
	var n int64
	for _, iv := range s {
		if !iv.Empty() {
			n += iv.Len()
		}
	}
	return n
}

// Min returns the smallest start among the non-empty intervals.
func (s Set) Min() (int64, bool) {
	var (
		low int64
		ok  bool
	)
	for _, iv := range s {
		if iv.Empty() {
			continue
		}
		if !ok || iv.Start < low {
			low, ok = iv.Start, true
		}
	}
	return low, ok
}

// Sorted returns a copy ordered by start, then end.
func (s Set) Sorted() Set {
	out := slices.Clone(s)
	slices.SortFunc(out, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
	return out
}

func (s Set) union() rangeset.RangeSet[int64] {
	var u rangeset.RangeSet[int64]
	for _, iv := range s {
		u.AddRange(iv.Start, iv.End)
	}
	return u
}

// Disjoint reports whether no two intervals share a value.
func (s Set) Disjoint() bool {
	var covered int64
	for _, r := range s.union() {
		covered += r.High - r.Low
	}
	return covered == s.Len()
}

// Coalesce merges overlapping and adjacent intervals, returning the
// sorted, normalized form of the values s covers.
func (s Set) Coalesce() Set {
	u := s.union()
	out := make(Set, 0, len(u))
	for _, r := range u {
		out = append(out, Interval{r.Low, r.High})
	}
	return out
}
