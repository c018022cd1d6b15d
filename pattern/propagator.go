package pattern

import (
	"sort"

	"github.com/katalvlaran/wavecollapse/grid"
)

// Propagator lists, per direction and pattern, the patterns allowed as that
// neighbor: P[d][t1] holds every t2 (ascending) that agrees with t1 when
// placed at offset (grid.DX[d], grid.DY[d]).
type Propagator [grid.Directions][][]int

// BuildPropagator tests every ordered pattern pair in every direction.
// Complexity: O(4·T²·N²) time, O(4·T²) memory worst case.
func BuildPropagator(tab *Table) Propagator {
	var prop Propagator
	t := tab.Len()
	for d := 0; d < grid.Directions; d++ {
		prop[d] = make([][]int, t)
		for t1 := 0; t1 < t; t1++ {
			list := make([]int, 0, t)
			for t2 := 0; t2 < t; t2++ {
				if Agrees(tab.Pattern(t1), tab.Pattern(t2), tab.N, grid.DX[d], grid.DY[d]) {
					list = append(list, t2)
				}
			}
			prop[d][t1] = list
		}
	}

	return prop
}

// Agrees reports whether p2, shifted by (dx,dy) relative to p1, matches p1
// on every cell the two windows share.
func Agrees(p1, p2 []int, n, dx, dy int) bool {
	xmin, xmax := dx, n
	if dx < 0 {
		xmin, xmax = 0, dx+n
	}
	ymin, ymax := dy, n
	if dy < 0 {
		ymin, ymax = 0, dy+n
	}
	for y := ymin; y < ymax; y++ {
		for x := xmin; x < xmax; x++ {
			if p1[x+n*y] != p2[x-dx+n*(y-dy)] {
				return false
			}
		}
	}

	return true
}

// Contains reports whether t2 ∈ P[d][t1].
func (p Propagator) Contains(d grid.Direction, t1, t2 int) bool {
	list := p[d][t1]
	i := sort.SearchInts(list, t2)

	return i < len(list) && list[i] == t2
}

// Len returns the number of patterns the propagator covers.
func (p Propagator) Len() int {
	return len(p[0])
}
