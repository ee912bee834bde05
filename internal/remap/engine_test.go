package remap

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineScenarios(t *testing.T) {
	seedToSoil := mustTable(t, [3]int64{50, 98, 2}, [3]int64{52, 50, 48})

	t.Run("scalar inside second rule", func(t *testing.T) {
		require.Equal(t, int64(81), RemapScalar(79, []*Table{seedToSoil}))
	})

	t.Run("partial overlap falls through identity", func(t *testing.T) {
		only := mustTable(t, [3]int64{50, 98, 2})
		out := RemapIntervals(Set{{95, 100}}, []*Table{only})
		require.Equal(t, Set{{50, 52}, {95, 98}}, out.Sorted())
		require.Equal(t, int64(5), out.Len())
	})

	t.Run("interval straddling two rules", func(t *testing.T) {
		out := RemapIntervals(Set{{95, 100}}, []*Table{seedToSoil})
		require.Equal(t, Set{{50, 52}, {97, 100}}, out.Sorted())
	})

	t.Run("chained stages consume previous output", func(t *testing.T) {
		// Stage 1 moves [10, 20) to [100, 110); stage 2 only knows about
		// [100, 105), so it must see stage 1's output to do anything.
		first := mustTable(t, [3]int64{100, 10, 10})
		second := mustTable(t, [3]int64{0, 100, 5})

		out := RemapIntervals(Set{{10, 20}}, []*Table{first, second})
		require.Equal(t, Set{{0, 5}, {105, 110}}, out.Sorted())

		require.Equal(t, int64(3), RemapScalar(13, []*Table{first, second}))
		require.Equal(t, int64(107), RemapScalar(17, []*Table{first, second}))
	})

	t.Run("lowest start among several intervals", func(t *testing.T) {
		low, ok := Lowest(Set{{95, 98}, {50, 52}, {60, 61}})
		require.True(t, ok)
		require.Equal(t, int64(50), low)

		_, ok = Lowest(nil)
		require.False(t, ok)
	})
}

func TestEngineStage(t *testing.T) {
	e := NewEngine(nil)

	t.Run("empty table is identity", func(t *testing.T) {
		in := Set{{1, 4}, {10, 11}, {-3, 0}}
		require.ElementsMatch(t, in, e.Stage(in, mustTable(t)))
	})

	t.Run("interval covering a rule splits three ways", func(t *testing.T) {
		table := mustTable(t, [3]int64{1000, 10, 5})
		out := e.Stage(Set{{0, 30}}, table)
		require.Equal(t, Set{{0, 10}, {15, 30}, {1000, 1005}}, out.Sorted())
	})

	t.Run("leading and trailing parts match different rules", func(t *testing.T) {
		table := mustTable(t,
			[3]int64{500, 0, 10},
			[3]int64{1000, 10, 5},
			[3]int64{700, 15, 5},
		)
		out := e.Stage(Set{{5, 18}}, table)
		require.Equal(t, Set{{505, 510}, {700, 703}, {1000, 1005}}, out.Sorted())
	})

	t.Run("unit intervals", func(t *testing.T) {
		table := mustTable(t, [3]int64{50, 98, 2})
		out := e.Stage(Set{Point(97), Point(98), Point(99), Point(100)}, table)
		require.Equal(t, Set{{50, 51}, {51, 52}, {97, 98}, {100, 101}}, out.Sorted())
	})

	t.Run("drops empty intervals", func(t *testing.T) {
		out := e.Stage(Set{{4, 4}, {1, 2}}, mustTable(t))
		require.Equal(t, Set{{1, 2}}, out)
	})
}

func TestEngineNoStages(t *testing.T) {
	in := Set{{3, 9}, {20, 21}}
	out := RemapIntervals(in, nil)
	require.Equal(t, in, out)

	out[0] = Interval{0, 1}
	require.Equal(t, Interval{3, 9}, in[0], "result must not alias the input")

	require.Equal(t, int64(42), RemapScalar(42, nil))
}

func TestEngineTrace(t *testing.T) {
	first := mustTable(t, [3]int64{50, 98, 2}, [3]int64{52, 50, 48})
	second := mustTable(t, [3]int64{0, 81, 1})

	e := NewEngine([]*Table{first, second})
	require.Equal(t, 2, e.Stages())
	require.Equal(t, []int64{79, 81, 0}, e.Trace(79))
	require.Equal(t, []int64{5}, NewEngine(nil).Trace(5))
}

func TestEngineLogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	table, err := NewTable("seed", "soil", mustRule(t, 50, 98, 2))
	require.NoError(t, err)

	NewEngine([]*Table{table}, WithLogger(logger)).Intervals(Set{{95, 100}})
	require.Contains(t, buf.String(), "stage=seed-to-soil")
	require.Contains(t, buf.String(), "splits=1")
	require.Contains(t, buf.String(), "values=5")
}

// randomStage returns a table that permutes blocks of [0, n), so the
// stage is a bijection on values.
func randomStage(t *testing.T, rng *rand.Rand, n int64) *Table {
	t.Helper()
	cuts := map[int64]bool{0: true, n: true}
	for k := rng.Intn(6); k > 0; k-- {
		cuts[1+rng.Int63n(n-1)] = true
	}
	var points []int64
	for p := int64(0); p <= n; p++ {
		if cuts[p] {
			points = append(points, p)
		}
	}
	blocks := make([]Interval, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		blocks = append(blocks, Interval{points[i-1], points[i]})
	}
	order := rng.Perm(len(blocks))

	var (
		rules []Rule
		dst   int64
	)
	for _, i := range order {
		b := blocks[i]
		// Blocks that stay in place need no rule.
		if dst != b.Start {
			rules = append(rules, mustRule(t, dst, b.Start, b.Len()))
		}
		dst += b.Len()
	}
	table, err := NewTable("", "", rules...)
	require.NoError(t, err)
	return table
}

// randomDisjointSet returns disjoint intervals inside [-10, n+10).
func randomDisjointSet(rng *rand.Rand, n int64) Set {
	var (
		s   Set
		pos = int64(-10)
	)
	for pos < n+10 {
		pos += rng.Int63n(8)
		length := 1 + rng.Int63n(15)
		if pos+length > n+10 {
			break
		}
		s = append(s, Interval{pos, pos + length})
		pos += length
	}
	return s
}

func TestEngineProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 120

	for round := 0; round < 200; round++ {
		stages := make([]*Table, 1+rng.Intn(4))
		for i := range stages {
			stages[i] = randomStage(t, rng, n)
		}
		in := randomDisjointSet(rng, n)
		require.True(t, in.Disjoint())

		e := NewEngine(stages)
		out := e.Intervals(in)

		require.Equal(t, in.Len(), out.Len(), "round %d: length not conserved", round)
		require.True(t, out.Disjoint(), "round %d: output overlaps: %v", round, out.Sorted())

		for _, iv := range in {
			for v := iv.Start; v < iv.End; v++ {
				image := e.Scalar(v)
				hit := false
				for _, o := range out {
					if o.Contains(image) {
						hit = true
						break
					}
				}
				require.True(t, hit, "round %d: image %d of %d missing from %v", round, image, v, out)
			}
		}

		var (
			best  int64
			found bool
		)
		for _, iv := range in {
			for v := iv.Start; v < iv.End; v++ {
				if img := e.Scalar(v); !found || img < best {
					best, found = img, true
				}
			}
		}
		low, ok := out.Min()
		require.Equal(t, found, ok)
		require.Equal(t, best, low, "round %d", round)
	}
}
