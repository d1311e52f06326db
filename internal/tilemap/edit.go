package tilemap

// Paint writes tile at c, recording one history snapshot first.
// Nothing happens (and nothing is recorded) if c is out of bounds or the
// cell already holds tile. Returns true if the grid changed.
func Paint(g *Grid, h *History, c Coord, tile int) bool {
	if !g.InBounds(c) || tile < Empty {
		return false
	}
	if g.At(c) == tile {
		return false
	}
	if h != nil {
		h.PushUndo(g)
	}
	g.SetAt(c, tile)
	return true
}

// Erase clears the cell at c. Same rules as Paint with Empty.
func Erase(g *Grid, h *History, c Coord) bool {
	return Paint(g, h, c, Empty)
}

// Fill replaces the 4-connected region of Empty cells around seed, within
// seed's layer, with tile. The whole fill is recorded as a single history
// entry. It is a no-op when seed is out of bounds, seed is not Empty, or
// tile is Empty. Returns the number of cells written.
func Fill(g *Grid, h *History, seed Coord, tile int) int {
	if tile <= Empty {
		return 0
	}
	if !g.InBounds(seed) || g.At(seed) != Empty {
		return 0
	}

	if h != nil {
		h.PushUndo(g)
	}

	// Cells are written when pushed so nothing is queued twice.
	g.SetAt(seed, tile)
	filled := 1
	stack := []Coord{seed}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range c.Neighbors() {
			if !g.InBounds(n) || g.At(n) != Empty {
				continue
			}
			g.SetAt(n, tile)
			filled++
			stack = append(stack, n)
		}
	}
	return filled
}
