// Package almanac reads seed lists and category maps from their text form.
//
// An almanac opens with a seeds line and is followed by maps, each a
// header naming the source and destination categories and one rule per
// line:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// A rule line is "dest src length" and maps [src, src+length) onto
// [dest, dest+length).
package almanac

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/b97tsk/almanac/internal/remap"
)

const (
	_seedsPrefix  = "seeds:"
	_headerSuffix = " map:"
	_maxLineSize  = 1024 * 1024
)

// Almanac is a parsed seed list and its maps in input order.
type Almanac struct {
	Seeds  []int64
	Stages []*remap.Table
}

// ParseString parses an almanac held in memory.
func ParseString(s string) (*Almanac, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads an almanac from r.
func Parse(r io.Reader) (*Almanac, error) {
	var (
		a        Almanac
		seen     bool
		lineNo   int
		header   int
		from, to string
		rules    []remap.Rule
		inStage  bool
	)

	flush := func() error {
		if !inStage {
			return nil
		}
		inStage = false
		if len(rules) == 0 {
			return &ParseError{header, fmt.Errorf("%w: %s-to-%s", ErrEmptyStage, from, to)}
		}
		t, err := remap.NewTable(from, to, rules...)
		if err != nil {
			return &ParseError{header, err}
		}
		a.Stages = append(a.Stages, t)
		rules = nil
		return nil
	}

	s := bufio.NewScanner(r)
	s.Buffer(nil, _maxLineSize)
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())

		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, err
			}

		case !seen:
			seeds, err := parseSeeds(line)
			if err != nil {
				return nil, &ParseError{lineNo, err}
			}
			a.Seeds, seen = seeds, true

		case strings.HasSuffix(line, _headerSuffix):
			if err := flush(); err != nil {
				return nil, err
			}
			var err error
			from, to, err = parseHeader(line)
			if err != nil {
				return nil, &ParseError{lineNo, err}
			}
			header, inStage = lineNo, true

		case !inStage:
			return nil, &ParseError{lineNo, fmt.Errorf("%w: %q", ErrMalformedHeader, line)}

		default:
			rule, err := parseRule(line)
			if err != nil {
				return nil, &ParseError{lineNo, err}
			}
			rules = append(rules, rule)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !seen {
		return nil, ErrNoSeeds
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return &a, nil
}

func parseSeeds(line string) ([]int64, error) {
	rest, ok := strings.CutPrefix(line, _seedsPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSeeds, line)
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, ErrNoSeeds
	}
	seeds := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedSeeds, f)
		}
		seeds = append(seeds, v)
	}
	return seeds, nil
}

func parseHeader(line string) (from, to string, err error) {
	name := strings.TrimSpace(strings.TrimSuffix(line, _headerSuffix))
	from, to, ok := strings.Cut(name, "-to-")
	if !ok || from == "" || to == "" || strings.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}
	return from, to, nil
}

func parseRule(line string) (remap.Rule, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return remap.Rule{}, fmt.Errorf("%w: want 3 numbers, got %q", ErrMalformedRule, line)
	}
	var n [3]int64
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil || v < 0 {
			return remap.Rule{}, fmt.Errorf("%w: %q is not a non-negative integer", ErrMalformedRule, f)
		}
		n[i] = v
	}
	rule, err := remap.NewRule(n[0], n[1], n[2])
	if err != nil {
		return remap.Rule{}, fmt.Errorf("%w: %w", ErrMalformedRule, err)
	}
	return rule, nil
}

// Points returns every seed as a length-1 interval.
func (a *Almanac) Points() remap.Set {
	return remap.Points(a.Seeds...)
}

// Pairs reads the seeds as (start, length) pairs.
func (a *Almanac) Pairs() (remap.Set, error) {
	return remap.Pairs(a.Seeds...)
}

// Engine returns an engine over the almanac's maps.
func (a *Almanac) Engine(opts ...remap.Option) *remap.Engine {
	return remap.NewEngine(a.Stages, opts...)
}

// CheckChain reports the first map whose source category differs from the
// destination of the map before it.
func (a *Almanac) CheckChain() error {
	for i := 1; i < len(a.Stages); i++ {
		prev, next := a.Stages[i-1], a.Stages[i]
		if prev.To != next.From {
			return fmt.Errorf("%w: %s is followed by %s", ErrBrokenChain, prev.Name(), next.Name())
		}
	}
	return nil
}

// Lowest returns the lowest value any seed reaches. With pairs set the
// seeds are read as ranges and mapped as intervals, otherwise each seed is
// looked up on its own.
func (a *Almanac) Lowest(pairs bool, opts ...remap.Option) (int64, error) {
	e := a.Engine(opts...)
	if !pairs {
		if len(a.Seeds) == 0 {
			return 0, ErrNoSeeds
		}
		low := e.Scalar(a.Seeds[0])
		for _, seed := range a.Seeds[1:] {
			low = min(low, e.Scalar(seed))
		}
		return low, nil
	}
	set, err := a.Pairs()
	if err != nil {
		return 0, err
	}
	low, ok := e.Intervals(set).Min()
	if !ok {
		return 0, ErrNoSeeds
	}
	return low, nil
}
