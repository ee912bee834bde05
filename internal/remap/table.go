package remap

import (
	"cmp"
	"fmt"
	"slices"
)

// Rule rewrites every value of Source to the value at the same position
// in Destination.
type Rule struct {
	Source, Destination Interval
}

// NewRule builds a rule from a "dest src length" triple.
func NewRule(dst, src, length int64) (Rule, error) {
	if length == 0 {
		return Rule{}, ErrEmptyRule
	}
	source, err := Span(src, length)
	if err != nil {
		return Rule{}, err
	}
	destination, err := Span(dst, length)
	if err != nil {
		return Rule{}, err
	}
	return Rule{source, destination}, nil
}

func (r Rule) Offset() int64 {
	return r.Destination.Start - r.Source.Start
}

func (r Rule) String() string {
	return fmt.Sprintf("%v -> %v", r.Source, r.Destination)
}

// Overlap is the part of an interval that one rule rewrites.
type Overlap struct {
	Rule Rule
	Span Interval
}

// Mapped returns Span moved into the rule's destination.
func (o Overlap) Mapped() Interval {
	return o.Span.Shift(o.Rule.Offset())
}

// Table is one stage of the pipeline: a set of rules with disjoint
// sources. Values outside every source map to themselves.
type Table struct {
	From, To string
	rules    []Rule
}

// NewTable validates rules and returns them as a table. Rules are kept
// sorted by source start.
func NewTable(from, to string, rules ...Rule) (*Table, error) {
	sorted := slices.Clone(rules)
	for _, r := range sorted {
		if r.Source.Start > r.Source.End || r.Destination.Start > r.Destination.End {
			return nil, fmt.Errorf("rule %v: %w", r, ErrInvertedInterval)
		}
		if r.Source.Empty() {
			return nil, fmt.Errorf("rule %v: %w", r, ErrEmptyRule)
		}
		if r.Source.Len() != r.Destination.Len() {
			return nil, fmt.Errorf("rule %v: %w", r, ErrLengthMismatch)
		}
	}
	slices.SortFunc(sorted, func(a, b Rule) int {
		return cmp.Compare(a.Source.Start, b.Source.Start)
	})
	for i := 1; i < len(sorted); i++ {
		if prev, next := sorted[i-1], sorted[i]; prev.Source.End > next.Source.Start {
			return nil, fmt.Errorf("%w: %v and %v", ErrOverlappingRules, prev.Source, next.Source)
		}
	}
	return &Table{From: from, To: to, rules: sorted}, nil
}

// Name returns "from-to-to", or "" for an anonymous table.
func (t *Table) Name() string {
	if t.From == "" && t.To == "" {
		return ""
	}
	return t.From + "-to-" + t.To
}

// Rules returns a copy of the rules, sorted by source start.
func (t *Table) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Lookup maps a single value through the table.
func (t *Table) Lookup(v int64) int64 {
	for _, r := range t.rules {
		if r.Source.Contains(v) {
			return v + r.Offset()
		}
	}
	return v
}

// FindOverlap returns the first rule whose source shares at least one
// value with iv. The second result is false when no rule applies, in which
// case iv passes through unchanged.
func (t *Table) FindOverlap(iv Interval) (Overlap, bool) {
	for _, r := range t.rules {
		if span := iv.Intersect(r.Source); !span.Empty() {
			return Overlap{Rule: r, Span: span}, true
		}
	}
	return Overlap{}, false
}
