package pattern

import "errors"

// Sentinel errors for pattern extraction.
var (
	// ErrNilSample indicates a nil sample.
	ErrNilSample = errors.New("pattern: nil sample")
	// ErrBadN indicates a non-positive window size.
	ErrBadN = errors.New("pattern: N must be positive")
	// ErrBadSymmetry indicates a symmetry count outside [1,8].
	ErrBadSymmetry = errors.New("pattern: symmetry must be in [1,8]")
	// ErrCodeOverflow indicates C^(N²) does not fit in 64 bits.
	ErrCodeOverflow = errors.New("pattern: palette too large for window size")
	// ErrDegenerateSample indicates no pattern could be extracted.
	ErrDegenerateSample = errors.New("pattern: sample yields no patterns")
)

// MaxSymmetry is the size of the rotation/reflection cycle.
const MaxSymmetry = 8

// Options configures extraction.
type Options struct {
	// N is the side of the square window.
	N int
	// Symmetry is how many of the eight variants to count, in [1,8].
	Symmetry int
	// PeriodicInput wraps windows around the sample edges.
	PeriodicInput bool
}

// DefaultOptions returns N=2, all eight symmetries, periodic input.
func DefaultOptions() Options {
	return Options{N: 2, Symmetry: MaxSymmetry, PeriodicInput: true}
}

// Validate checks N and Symmetry.
func (o Options) Validate() error {
	if o.N <= 0 {
		return ErrBadN
	}
	if o.Symmetry < 1 || o.Symmetry > MaxSymmetry {
		return ErrBadSymmetry
	}

	return nil
}

// Table is the immutable result of extraction. Pattern t occupies
// cells[t*N*N : (t+1)*N*N], laid out x + y*N.
type Table struct {
	N int // window side
	C int // palette size used for encoding

	cells   []int
	weights []int
	codes   []uint64
	index   map[uint64]int
}
