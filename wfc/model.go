package wfc

import (
	"math"
	"math/bits"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/wavecollapse/grid"
	"github.com/katalvlaran/wavecollapse/rng"
)

// noiseScale bounds the tie-break perturbation added to entropies.
const noiseScale = 1e-6

// ban is one pending (cell, pattern) exclusion.
type ban struct {
	cell, pattern int32
}

// Model is the constraint engine for one solve at a time.
type Model struct {
	rs   *Ruleset
	topo *grid.Topology
	cfg  Config
	t    int // pattern count

	weights               []int
	weightLogWeights      []float64
	sumOfWeights          int
	sumOfWeightLogWeights float64
	startingEntropy       float64

	wave                   []bool
	compatible             []int32
	sumsOfOnes             []int
	sumsOfWeights          []int
	sumsOfWeightLogWeights []float64
	entropies              []float64
	stack                  []ban
	observed               []int

	ground        int // resolved ground pattern; 0 = none
	cleared       bool
	status        Status
	contradiction int
	stats         Stats

	log logrus.FieldLogger
}

// New allocates a Model for rs sized by cfg. The Model starts cleared.
// Returns ErrNilRuleset, ErrRulesetMismatch or any Config.Validate error.
func New(rs *Ruleset, cfg Config, opts ...Option) (*Model, error) {
	if rs == nil {
		return nil, ErrNilRuleset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.N != rs.Table.N {
		return nil, ErrRulesetMismatch
	}
	topo, err := grid.New(cfg.Width, cfg.Height, cfg.N, cfg.PeriodicOutput)
	if err != nil {
		return nil, err
	}

	m := &Model{rs: rs, topo: topo, cfg: cfg, log: discardLogger()}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	m.Clear()

	return m, nil
}

// initialize sizes the arenas and computes the cell-independent entropy terms.
func (m *Model) initialize() {
	m.t = m.rs.Patterns()
	cells := m.topo.Cells()

	m.weights = m.rs.Table.Weights()
	m.weightLogWeights = make([]float64, m.t)
	m.sumOfWeights = 0
	m.sumOfWeightLogWeights = 0
	for t, w := range m.weights {
		m.weightLogWeights[t] = float64(float64(w) * math.Log(float64(w)))
		m.sumOfWeights += w
		m.sumOfWeightLogWeights += m.weightLogWeights[t]
	}
	m.startingEntropy = entropy(m.sumOfWeights, m.sumOfWeightLogWeights)

	m.wave = make([]bool, cells*m.t)
	m.compatible = make([]int32, cells*m.t*grid.Directions)
	m.sumsOfOnes = make([]int, cells)
	m.sumsOfWeights = make([]int, cells)
	m.sumsOfWeightLogWeights = make([]float64, cells)
	m.entropies = make([]float64, cells)
	m.stack = make([]ban, 0, cells*m.t)

	if m.cfg.Ground != 0 {
		m.ground = ((m.cfg.Ground % m.t) + m.t) % m.t
	}
}

// entropy is ln(Σw) − Σ(w·ln w)/Σw.
func entropy(sumOfWeights int, sumOfWeightLogWeights float64) float64 {
	sum := float64(sumOfWeights)

	return math.Log(sum) - float64(sumOfWeightLogWeights/sum)
}

// Clear resets every cell to all patterns possible, restores the support
// counters and entropy sums, and forgets any contradiction. When a ground
// pattern is configured it is pinned to the bottom row and propagated.
func (m *Model) Clear() {
	prop := m.rs.Propagator
	for i := 0; i < m.topo.Cells(); i++ {
		for t := 0; t < m.t; t++ {
			m.wave[i*m.t+t] = true
			base := (i*m.t + t) * grid.Directions
			for d := grid.Direction(0); d < grid.Directions; d++ {
				m.compatible[base+int(d)] = int32(len(prop[d.Opposite()][t]))
			}
		}
		m.sumsOfOnes[i] = m.t
		m.sumsOfWeights[i] = m.sumOfWeights
		m.sumsOfWeightLogWeights[i] = m.sumOfWeightLogWeights
		m.entropies[i] = m.startingEntropy
	}
	m.stack = m.stack[:0]
	m.observed = nil
	m.status = InProgress
	m.contradiction = -1
	m.stats = Stats{}
	m.cleared = true

	if m.ground != 0 {
		m.pinGround()
	}
}

// pinGround restricts the bottom row to the ground pattern and bans it from
// every other row.
func (m *Model) pinGround() {
	w, h := m.topo.Width, m.topo.Height
	for x := 0; x < w; x++ {
		bottom := m.topo.Index(x, h-1)
		for t := 0; t < m.t; t++ {
			if t != m.ground {
				m.Ban(bottom, t)
			}
		}
		for y := 0; y < h-1; y++ {
			m.Ban(m.topo.Index(x, y), m.ground)
		}
	}
	m.Propagate()
}

// Ban excludes pattern t from cell i and queues the event for propagation.
// Banning an already excluded pattern is a no-op. The first cell to run out
// of patterns is recorded as the contradiction cell.
func (m *Model) Ban(i, t int) {
	w := i*m.t + t
	if !m.wave[w] {
		return
	}
	base := w * grid.Directions
	for d := 0; d < grid.Directions; d++ {
		m.compatible[base+d] = 0
	}
	m.wave[w] = false
	m.stack = append(m.stack, ban{cell: int32(i), pattern: int32(t)})
	m.stats.Bans++

	m.sumsOfOnes[i]--
	m.sumsOfWeights[i] -= m.weights[t]
	m.sumsOfWeightLogWeights[i] -= m.weightLogWeights[t]
	if m.sumsOfOnes[i] == 0 {
		// ln(0) is undefined; the cell is dead either way.
		m.entropies[i] = 0
		if m.contradiction < 0 {
			m.contradiction = i
			m.log.WithField("cell", i).Debug("contradiction")
		}
		return
	}
	m.entropies[i] = entropy(m.sumsOfWeights[i], m.sumsOfWeightLogWeights[i])
}

// Observe collapses the non-boundary cell of least (noisy) entropy to one
// pattern drawn by weight, banning the rest. It returns Contradiction when a
// cell has no patterns left, Success when every cell is decided (filling
// Observed), and InProgress when the new bans still need propagating.
func (m *Model) Observe(src rng.Source) Status {
	minEntropy := math.MaxFloat64
	argmin := -1

	for i := 0; i < m.topo.Cells(); i++ {
		x, y := m.topo.Coordinate(i)
		if m.topo.OnBoundary(x, y) {
			continue
		}
		amount := m.sumsOfOnes[i]
		if amount == 0 {
			if m.contradiction < 0 {
				m.contradiction = i
			}
			return Contradiction
		}
		e := m.entropies[i]
		if amount > 1 && e <= minEntropy {
			// The conversion forces rounding so the sum is never fused.
			noise := float64(noiseScale * rng.Float64(src))
			if e+noise < minEntropy {
				minEntropy = e + noise
				argmin = i
			}
		}
	}

	if argmin == -1 {
		m.observed = make([]int, m.topo.Cells())
		for i := range m.observed {
			m.observed[i] = -1
			for t := 0; t < m.t; t++ {
				if m.wave[i*m.t+t] {
					m.observed[i] = t
					break
				}
			}
		}
		return Success
	}

	r := m.draw(argmin, src.Uint32())
	m.log.WithFields(logrus.Fields{"cell": argmin, "pattern": r, "entropy": minEntropy}).Debug("collapse")
	for t := 0; t < m.t; t++ {
		if t != r {
			m.Ban(argmin, t)
		}
	}
	m.stats.Observations++

	return InProgress
}

// draw picks a still-possible pattern at cell i with probability
// proportional to its weight: the first whose cumulative weight reaches
// u/2^32 of the total, compared exactly in 128 bits.
func (m *Model) draw(i int, u uint32) int {
	row := m.wave[i*m.t : (i+1)*m.t]
	total := 0
	for t, ok := range row {
		if ok {
			total += m.weights[t]
		}
	}
	hi, lo := bits.Mul64(uint64(u), uint64(total))

	var cum uint64
	last := -1
	for t, ok := range row {
		if !ok {
			continue
		}
		last = t
		cum += uint64(m.weights[t])
		if ch, cl := cum>>32, cum<<32; ch > hi || ch == hi && cl >= lo {
			return t
		}
	}

	return last
}

// Propagate drains the ban stack, last in first out. Each ban removes one
// unit of support from every compatible pattern of each in-grid neighbor;
// a pattern whose support from any direction reaches zero is banned in turn.
func (m *Model) Propagate() {
	prop := m.rs.Propagator
	for len(m.stack) > 0 {
		e := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]

		for d := grid.Direction(0); d < grid.Directions; d++ {
			i2, ok := m.topo.Neighbor(int(e.cell), d)
			if !ok {
				continue
			}
			for _, t2 := range prop[d][e.pattern] {
				c := (i2*m.t+t2)*grid.Directions + int(d)
				m.compatible[c]--
				if m.compatible[c] == 0 {
					m.Ban(i2, t2)
				}
			}
		}
	}
	m.stats.Propagations++
}

// SingleIteration runs one Observe and, unless that was terminal, one
// Propagate. Terminal results are sticky until the next Clear.
func (m *Model) SingleIteration(src rng.Source) Status {
	if m.status.Terminal() {
		return m.status
	}
	if s := m.Observe(src); s.Terminal() {
		m.status = s
		if s == Contradiction {
			m.log.WithField("cell", m.contradiction).Debug("solve ended in contradiction")
		}
		return s
	}
	m.Propagate()

	return InProgress
}

// Iterate runs up to n iterations (0 = until terminal) without clearing
// first, so it can resume a partial solve. It returns the status reached,
// which is InProgress when the budget ran out.
func (m *Model) Iterate(n int, src rng.Source) Status {
	if !m.cleared {
		m.Clear()
	}
	for i := 0; n == 0 || i < n; i++ {
		if s := m.SingleIteration(src); s.Terminal() {
			return s
		}
	}

	return m.status
}

// Generate clears the model and solves to Success or Contradiction.
func (m *Model) Generate(src rng.Source) Status {
	m.Clear()

	return m.Iterate(0, src)
}

// Status returns the current solve status.
func (m *Model) Status() Status {
	return m.status
}

// Result returns the status with the first contradiction cell, or -1.
func (m *Model) Result() Result {
	cell := -1
	if m.status == Contradiction {
		cell = m.contradiction
	}

	return Result{Status: m.status, Cell: cell}
}

// ContradictionCell returns the first cell that ran out of patterns since
// the last Clear, or -1. It can be set before Status reports Contradiction.
func (m *Model) ContradictionCell() int {
	return m.contradiction
}

// Observed returns the chosen pattern per cell after Success, else nil.
// The slice must not be modified.
func (m *Model) Observed() []int {
	return m.observed
}

// Entropies returns the per-cell entropy view. The slice is live and must
// not be modified.
func (m *Model) Entropies() []float64 {
	return m.entropies
}

// SumsOfOnes returns the per-cell count of possible patterns. The slice is
// live and must not be modified.
func (m *Model) SumsOfOnes() []int {
	return m.sumsOfOnes
}

// Possible reports whether pattern t is still allowed at cell i.
func (m *Model) Possible(i, t int) bool {
	return m.wave[i*m.t+t]
}

// Wave returns the possibility row of cell i. The slice is live and must
// not be modified.
func (m *Model) Wave(i int) []bool {
	return m.wave[i*m.t : (i+1)*m.t : (i+1)*m.t]
}

// Stats returns the work counters since the last Clear.
func (m *Model) Stats() Stats {
	return m.stats
}

// Ruleset returns the shared, read-only ruleset.
func (m *Model) Ruleset() *Ruleset {
	return m.rs
}

// Topology returns the output grid.
func (m *Model) Topology() *grid.Topology {
	return m.topo
}

// Config returns the configuration the model was built with.
func (m *Model) Config() Config {
	return m.cfg
}

// Patterns returns T.
func (m *Model) Patterns() int {
	return m.t
}
