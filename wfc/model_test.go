package wfc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/wavecollapse/grid"
	"github.com/katalvlaran/wavecollapse/pattern"
	"github.com/katalvlaran/wavecollapse/sample"
	"github.com/katalvlaran/wavecollapse/wfc"
)

// ModelSuite exercises the constraint engine end to end.
type ModelSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

// TestSingleColor: one pattern, nothing to choose, immediate success.
func (s *ModelSuite) TestSingleColor() {
	cfg := wfc.Config{N: 2, Width: 3, Height: 3, PeriodicInput: true, PeriodicOutput: true, Symmetry: 1}
	m, err := wfc.NewOverlapping([]byte{9, 8, 7, 255}, 1, 1, cfg)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, m.Patterns())
	require.Equal(s.T(), 1, m.Ruleset().Table.Weight(0))

	st := m.Generate(solveStream(1))
	require.Equal(s.T(), wfc.Success, st)
	require.Equal(s.T(), 0, m.Stats().Observations, "observe finds no undecided cell")
	require.Equal(s.T(), make([]int, 9), m.Observed())
	require.Equal(s.T(), wfc.Result{Status: wfc.Success, Cell: -1}, m.Result())
}

// TestCheckerboard: two diagonal blocks force a strictly alternating output.
func (s *ModelSuite) TestCheckerboard() {
	cfg := wfc.DefaultConfig(6, 6)
	for seed := uint32(0); seed < 8; seed++ {
		m := mustModel(checkerboard(4), cfg)
		require.Equal(s.T(), wfc.Success, m.Generate(solveStream(seed)), "seed %d", seed)

		obs := m.Observed()
		topo := m.Topology()
		for i, t := range obs {
			x, y := topo.Coordinate(i)
			for d := grid.Direction(0); d < grid.Directions; d++ {
				j, ok := topo.Neighbor(i, d)
				require.True(s.T(), ok)
				require.NotEqualf(s.T(), t, obs[j], "cell (%d,%d) repeats toward %s", x, y, d)
			}
		}
	}
}

// TestOddTorusContradicts: alternating blocks cannot tile an odd torus.
func (s *ModelSuite) TestOddTorusContradicts() {
	cfg := wfc.DefaultConfig(3, 3)
	for seed := uint32(0); seed < 8; seed++ {
		m := mustModel(checkerboard(4), cfg)
		st := m.Generate(solveStream(seed))
		require.Equal(s.T(), wfc.Contradiction, st)
		res := m.Result()
		require.Equal(s.T(), wfc.Contradiction, res.Status)
		require.GreaterOrEqual(s.T(), res.Cell, 0)
		require.Less(s.T(), res.Cell, 9)
		require.Equal(s.T(), 0, m.SumsOfOnes()[res.Cell])
		require.Nil(s.T(), m.Observed())
	}
}

// TestDeterminism: identical inputs and seeds give identical results.
func (s *ModelSuite) TestDeterminism() {
	src := randomSample(42, 8, 8)
	cfg := wfc.DefaultConfig(12, 12)
	for seed := uint32(0); seed < 5; seed++ {
		a := mustModel(src, cfg)
		b := mustModel(src, cfg)
		ra, rb := a.Generate(solveStream(seed)), b.Generate(solveStream(seed))
		require.Equal(s.T(), ra, rb)
		require.Equal(s.T(), a.Result(), b.Result())
		if diff := cmp.Diff(a.Observed(), b.Observed()); diff != "" {
			s.T().Fatalf("seed %d observed mismatch (-a +b):\n%s", seed, diff)
		}
		if diff := cmp.Diff(a.Entropies(), b.Entropies()); diff != "" {
			s.T().Fatalf("seed %d entropies mismatch (-a +b):\n%s", seed, diff)
		}
	}
}

// TestRegenerate: Generate on a used model matches a fresh model.
func (s *ModelSuite) TestRegenerate() {
	src := randomSample(7, 6, 6)
	cfg := wfc.DefaultConfig(10, 10)
	used := mustModel(src, cfg)
	used.Generate(solveStream(100))
	fresh := mustModel(src, cfg)

	require.Equal(s.T(), fresh.Generate(solveStream(3)), used.Generate(solveStream(3)))
	require.Equal(s.T(), fresh.Observed(), used.Observed())
	require.Equal(s.T(), fresh.Result(), used.Result())
}

// TestMonotonicAndConserved steps a solve and checks, after every
// iteration, that bans never revert and sumsOfOnes matches the wave.
func (s *ModelSuite) TestMonotonicAndConserved() {
	for seed := uint32(1); seed <= 4; seed++ {
		m := mustModel(randomSample(seed, 7, 7), wfc.DefaultConfig(9, 9))
		cells, t := m.Topology().Cells(), m.Patterns()
		prev := make([]bool, cells*t)
		for i := 0; i < cells; i++ {
			copy(prev[i*t:], m.Wave(i))
		}
		src := solveStream(seed)
		for step := 0; step < cells+1; step++ {
			st := m.SingleIteration(src)
			for i := 0; i < cells; i++ {
				ones := 0
				for p, ok := range m.Wave(i) {
					if ok {
						ones++
					}
					require.Falsef(s.T(), ok && !prev[i*t+p], "seed %d: (%d,%d) came back", seed, i, p)
					prev[i*t+p] = ok
				}
				require.Equal(s.T(), ones, m.SumsOfOnes()[i])
			}
			if st.Terminal() {
				break
			}
		}
		require.True(s.T(), m.Status().Terminal(), "seed %d did not finish", seed)
	}
}

// TestTerminationBound checks the ban and observe budget.
func (s *ModelSuite) TestTerminationBound() {
	for seed := uint32(0); seed < 6; seed++ {
		m := mustModel(randomSample(seed+20, 6, 6), wfc.DefaultConfig(8, 8))
		st := m.Generate(solveStream(seed))
		require.True(s.T(), st.Terminal())
		cells := m.Topology().Cells()
		stats := m.Stats()
		require.LessOrEqual(s.T(), stats.Bans, cells*m.Patterns())
		require.LessOrEqual(s.T(), stats.Observations, cells)
	}
}

// TestIterateBudget: a bounded Iterate can stop short and then resume.
func (s *ModelSuite) TestIterateBudget() {
	m := mustModel(checkerboard(4), wfc.DefaultConfig(6, 6))
	src := solveStream(5)
	require.Equal(s.T(), wfc.InProgress, m.Iterate(1, src))
	require.Equal(s.T(), wfc.InProgress, m.Status())
	require.Equal(s.T(), wfc.Success, m.Iterate(0, src))
	require.Equal(s.T(), wfc.Success, m.SingleIteration(src), "terminal status is sticky")

	m.Clear()
	require.Equal(s.T(), wfc.InProgress, m.Status())
	require.Nil(s.T(), m.Observed())
	for _, n := range m.SumsOfOnes() {
		require.Equal(s.T(), 2, n)
	}
}

// TestNonPeriodicBoundary: boundary cells stay unconstrained.
func (s *ModelSuite) TestNonPeriodicBoundary() {
	cfg := wfc.Config{N: 2, Width: 5, Height: 5, PeriodicInput: true, Symmetry: 8}
	m := mustModel(checkerboard(4), cfg)
	require.Equal(s.T(), wfc.Success, m.Generate(solveStream(9)))
	topo := m.Topology()
	for i := 0; i < topo.Cells(); i++ {
		x, y := topo.Coordinate(i)
		if topo.OnBoundary(x, y) {
			require.Equalf(s.T(), 2, m.SumsOfOnes()[i], "boundary cell (%d,%d)", x, y)
		} else {
			require.Equalf(s.T(), 1, m.SumsOfOnes()[i], "inner cell (%d,%d)", x, y)
		}
	}
}

// TestFirstContradictionWins: later empty cells never overwrite the first.
func (s *ModelSuite) TestFirstContradictionWins() {
	m := mustModel(checkerboard(4), wfc.DefaultConfig(6, 6))
	m.Ban(7, 0)
	m.Ban(7, 1)
	m.Ban(2, 0)
	m.Ban(2, 1)
	m.Ban(2, 1) // no-op
	require.Equal(s.T(), 7, m.ContradictionCell())
	require.Equal(s.T(), wfc.InProgress, m.Status())

	require.Equal(s.T(), wfc.Contradiction, m.SingleIteration(solveStream(0)))
	require.Equal(s.T(), wfc.Result{Status: wfc.Contradiction, Cell: 7}, m.Result())
	require.Equal(s.T(), 4, m.Stats().Bans)
}

// TestGround pins the horizon pattern to the bottom row.
func (s *ModelSuite) TestGround() {
	// Sky over a single row of earth: patterns are {sky, horizon}.
	smp := indexed(2, 3, sample.Palette{white, black},
		0, 0,
		0, 0,
		1, 1,
	)
	for _, ground := range []int{1, -1} {
		cfg := wfc.Config{N: 2, Width: 4, Height: 4, Symmetry: 1, Ground: ground}
		m := mustModel(smp, cfg)
		require.Equal(s.T(), 2, m.Patterns())
		require.Equal(s.T(), []int{0, 0, 1, 1}, m.Ruleset().Table.Pattern(1))

		for x := 0; x < 4; x++ {
			bottom := m.Topology().Index(x, 3)
			require.False(s.T(), m.Possible(bottom, 0))
			require.True(s.T(), m.Possible(bottom, 1))
			for y := 0; y < 3; y++ {
				require.False(s.T(), m.Possible(m.Topology().Index(x, y), 1))
			}
		}
		require.Equal(s.T(), -1, m.ContradictionCell())
		require.Equal(s.T(), wfc.Success, m.Generate(solveStream(0)))
	}
}

// TestNewErrors covers construction failures.
func (s *ModelSuite) TestNewErrors() {
	good := wfc.DefaultConfig(4, 4)
	rs, err := wfc.Compile(checkerboard(4), good.PatternOptions())
	require.NoError(s.T(), err)

	_, err = wfc.New(nil, good)
	require.ErrorIs(s.T(), err, wfc.ErrNilRuleset)

	bad := good
	bad.N = 3
	_, err = wfc.New(rs, bad)
	require.ErrorIs(s.T(), err, wfc.ErrRulesetMismatch)

	cases := []struct {
		name string
		mut  func(*wfc.Config)
		err  error
	}{
		{"ZeroN", func(c *wfc.Config) { c.N = 0 }, pattern.ErrBadN},
		{"Symmetry", func(c *wfc.Config) { c.Symmetry = 9 }, pattern.ErrBadSymmetry},
		{"ZeroWidth", func(c *wfc.Config) { c.Width = 0 }, wfc.ErrBadSize},
		{"SmallerThanN", func(c *wfc.Config) { c.Height = 1 }, wfc.ErrBadSize},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			cfg := good
			tc.mut(&cfg)
			_, err := wfc.New(rs, cfg)
			require.ErrorIs(s.T(), err, tc.err)
			_, err = wfc.NewOverlapping(rgba(checkerboard(4)), 4, 4, cfg)
			require.ErrorIs(s.T(), err, tc.err)
		})
	}

	_, err = wfc.NewOverlapping([]byte{1, 2, 3}, 1, 1, good)
	require.ErrorIs(s.T(), err, sample.ErrBufferSize)
	_, err = wfc.NewOverlapping(rgba(checkerboard(4)), 4, 4, wfc.Config{N: 5, Width: 5, Height: 5, Symmetry: 1})
	require.ErrorIs(s.T(), err, pattern.ErrDegenerateSample)
}

// TestStatusString covers the Stringer.
func (s *ModelSuite) TestStatusString() {
	require.Equal(s.T(), "in_progress", wfc.InProgress.String())
	require.Equal(s.T(), "success", wfc.Success.String())
	require.Equal(s.T(), "contradiction", wfc.Contradiction.String())
	require.Equal(s.T(), "unknown", wfc.Status(7).String())
	require.False(s.T(), wfc.InProgress.Terminal())
}
