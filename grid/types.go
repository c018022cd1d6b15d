package grid

import "errors"

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates non-positive width or height.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")
	// ErrBadWindow indicates a non-positive pattern window size.
	ErrBadWindow = errors.New("grid: window size N must be positive")
	// ErrLabelCount indicates a label slice whose length differs from the cell count.
	ErrLabelCount = errors.New("grid: label count must equal cell count")
)

// Direction indexes the four neighbor offsets.
type Direction int

const (
	// Left is (-1, 0).
	Left Direction = iota
	// Down is (0, +1).
	Down
	// Right is (+1, 0).
	Right
	// Up is (0, -1).
	Up
)

// Directions is the number of neighbor directions.
const Directions = 4

// Neighbor offsets and opposites, indexed by Direction.
var (
	DX       = [Directions]int{-1, 0, 1, 0}
	DY       = [Directions]int{0, 1, 0, -1}
	opposite = [Directions]Direction{Right, Up, Left, Down}
)

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return opposite[d]
}

// Offset returns (dx, dy) for d.
func (d Direction) Offset() (dx, dy int) {
	return DX[d], DY[d]
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	case Up:
		return "up"
	}

	return "invalid"
}

// Topology is an immutable Width×Height lattice with an N×N pattern window.
type Topology struct {
	Width, Height int
	N             int
	Periodic      bool
}
