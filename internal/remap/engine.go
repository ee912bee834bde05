// Package remap moves integer intervals through a pipeline of range
// tables.
//
// Each Table rewrites the values covered by its rules by a constant offset
// and leaves every other value alone. The Engine feeds a set of intervals
// through the tables in order, splitting an interval wherever a rule
// boundary cuts through it, so that after every stage the set still holds
// exactly as many values as it started with.
package remap

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// Engine runs values and intervals through an ordered list of tables.
type Engine struct {
	stages []*Table
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger that receives per-stage debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine returns an engine for stages, applied in the given order.
func NewEngine(stages []*Table, opts ...Option) *Engine {
	e := &Engine{
		stages: slices.Clone(stages),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stages returns the number of tables.
func (e *Engine) Stages() int {
	return len(e.stages)
}

// StageStats summarizes one stage of an Intervals run.
type StageStats struct {
	Stage  string
	In     int
	Out    int
	Splits int
	Values int64
}

// Stage maps set through a single table.
func (e *Engine) Stage(set Set, t *Table) Set {
	out, _ := e.stage(set, t)
	return out
}

func (e *Engine) stage(set Set, t *Table) (Set, StageStats) {
	stats := StageStats{Stage: t.Name(), In: len(set)}

	work := make([]Interval, 0, len(set))
	for _, iv := range set {
		if !iv.Empty() {
			work = append(work, iv)
		}
	}

	out := make(Set, 0, len(work))
	for len(work) > 0 {
		iv := work[len(work)-1]
		work = work[:len(work)-1]

		ov, ok := t.FindOverlap(iv)
		if !ok {
			out = append(out, iv)
			continue
		}

		// The mapped part is final for this stage: sources do not overlap,
		// so no other rule can claim it.
		out = append(out, ov.Mapped())

		if ov.Span.Start > iv.Start {
			work = append(work, Interval{iv.Start, ov.Span.Start})
			stats.Splits++
		}
		if iv.End > ov.Span.End {
			work = append(work, Interval{ov.Span.End, iv.End})
			stats.Splits++
		}
	}

	stats.Out = len(out)
	stats.Values = out.Len()
	return out, stats
}

// Intervals maps initial through every stage and returns the final set.
// With no stages it returns a copy of initial.
func (e *Engine) Intervals(initial Set) Set {
	set := slices.Clone(initial)
	want := set.Len()
	for i, t := range e.stages {
		var stats StageStats
		set, stats = e.stage(set, t)
		if stats.Values != want {
			panic(fmt.Sprintf("remap: stage %d (%s) changed value count from %d to %d", i, t.Name(), want, stats.Values))
		}
		e.logger.Debug("stage done",
			"index", i,
			"stage", stats.Stage,
			"in", stats.In,
			"out", stats.Out,
			"splits", stats.Splits,
			"values", stats.Values,
		)
	}
	return set
}

// Scalar maps a single value through every stage.
func (e *Engine) Scalar(v int64) int64 {
	for _, t := range e.stages {
		v = t.Lookup(v)
	}
	return v
}

// Trace returns v followed by its image after each stage.
func (e *Engine) Trace(v int64) []int64 {
	path := make([]int64, 0, len(e.stages)+1)
	path = append(path, v)
	for _, t := range e.stages {
		v = t.Lookup(v)
		path = append(path, v)
	}
	return path
}

// RemapIntervals maps initial through stages.
func RemapIntervals(initial Set, stages []*Table) Set {
	return NewEngine(stages).Intervals(initial)
}

// RemapScalar maps v through stages.
func RemapScalar(v int64, stages []*Table) int64 {
	return NewEngine(stages).Scalar(v)
}

// Lowest returns the smallest value covered by set.
func Lowest(set Set) (int64, bool) {
	return set.Min()
}
