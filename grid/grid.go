package grid

// New constructs a Topology.
// Returns ErrEmptyGrid for non-positive dimensions, ErrBadWindow for N <= 0.
func New(width, height, n int, periodic bool) (*Topology, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if n <= 0 {
		return nil, ErrBadWindow
	}

	return &Topology{Width: width, Height: height, N: n, Periodic: periodic}, nil
}

// Cells returns Width×Height.
func (g *Topology) Cells() int {
	return g.Width * g.Height
}

// InBounds reports whether (x,y) lies within the grid.
// Complexity: O(1).
func (g *Topology) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (g *Topology) Index(x, y int) int {
	return y*g.Width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (g *Topology) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}

// OnBoundary reports whether the N×N window anchored at (x,y) runs off a
// non-periodic grid. Periodic grids have no boundary.
func (g *Topology) OnBoundary(x, y int) bool {
	return !g.Periodic && (x < 0 || y < 0 || x+g.N > g.Width || y+g.N > g.Height)
}

// Wrap folds (x,y) back onto the grid by one period in each axis.
func (g *Topology) Wrap(x, y int) (int, int) {
	if x < 0 {
		x += g.Width
	} else if x >= g.Width {
		x -= g.Width
	}
	if y < 0 {
		y += g.Height
	} else if y >= g.Height {
		y -= g.Height
	}

	return x, y
}

// Neighbor returns the cell adjacent to i in direction d. ok is false when
// that neighbor is on the boundary (non-periodic grids only).
// Complexity: O(1).
func (g *Topology) Neighbor(i int, d Direction) (j int, ok bool) {
	x, y := g.Coordinate(i)
	x, y = x+DX[d], y+DY[d]
	if g.OnBoundary(x, y) {
		return -1, false
	}
	x, y = g.Wrap(x, y)

	return g.Index(x, y), true
}
