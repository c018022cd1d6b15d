package grid

// Components finds all 4-connected regions of cells that share a label.
// labels holds one value per cell, row-major. On periodic grids regions
// join across the wrapped edges.
//
// Returns one slice of cell indices per region, ordered by each region's
// first cell in row-major order; cells within a region are in BFS order.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for visited flags and output.
func (g *Topology) Components(labels []int) ([][]int, error) {
	total := g.Cells()
	if len(labels) != total {
		return nil, ErrLabelCount
	}
	seen := make([]bool, total)
	var comps [][]int
	queue := make([]int, 0, total)

	for i0 := 0; i0 < total; i0++ {
		if seen[i0] {
			continue
		}
		seen[i0] = true
		queue = append(queue[:0], i0)
		var comp []int
		for head := 0; head < len(queue); head++ {
			u := queue[head]
			comp = append(comp, u)
			ux, uy := g.Coordinate(u)
			for d := 0; d < Directions; d++ {
				vx, vy := ux+DX[d], uy+DY[d]
				if g.Periodic {
					vx, vy = g.Wrap(vx, vy)
				} else if !g.InBounds(vx, vy) {
					continue
				}
				v := g.Index(vx, vy)
				if seen[v] || labels[v] != labels[u] {
					continue
				}
				seen[v] = true
				queue = append(queue, v)
			}
		}
		comps = append(comps, comp)
	}

	return comps, nil
}
