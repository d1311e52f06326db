// Package tilemap provides the layered tile grid, its edit history and the
// editing algorithms that operate on it.
// This package is UI-agnostic and has no external dependencies.
package tilemap

import "errors"

// Empty marks a cell with no tile placed.
const Empty = -1

var (
	// ErrInvalidDimension is returned when a grid is created with a
	// non-positive width, height or layer count.
	ErrInvalidDimension = errors.New("tilemap: grid dimensions must be positive")

	// ErrOutOfRange is returned by Get for positions outside the grid.
	ErrOutOfRange = errors.New("tilemap: position out of range")
)

// Grid is a width x height x layers array of tile ids.
// Cells are stored layer by layer, each layer in row-major order:
// index = (layer*H + y)*W + x.
type Grid struct {
	w, h, layers int
	cells        []int
}

// NewGrid creates a grid with every cell set to Empty.
func NewGrid(width, height, layers int) (*Grid, error) {
	if width <= 0 || height <= 0 || layers <= 0 {
		return nil, ErrInvalidDimension
	}
	g := &Grid{
		w:      width,
		h:      height,
		layers: layers,
		cells:  make([]int, width*height*layers),
	}
	for i := range g.cells {
		g.cells[i] = Empty
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Layers returns the number of layers.
func (g *Grid) Layers() int { return g.layers }

func (g *Grid) index(x, y, layer int) int {
	return (layer*g.h+y)*g.w + x
}

// IsValidPosition reports whether (x, y, layer) lies inside the grid.
func (g *Grid) IsValidPosition(x, y, layer int) bool {
	return x >= 0 && x < g.w &&
		y >= 0 && y < g.h &&
		layer >= 0 && layer < g.layers
}

// InBounds reports whether the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return g.IsValidPosition(c.X, c.Y, c.Layer)
}

// Get returns the tile id at (x, y, layer).
// Returns ErrOutOfRange for invalid positions.
func (g *Grid) Get(x, y, layer int) (int, error) {
	if !g.IsValidPosition(x, y, layer) {
		return Empty, ErrOutOfRange
	}
	return g.cells[g.index(x, y, layer)], nil
}

// At returns the tile id at c, or Empty if c is out of bounds.
func (g *Grid) At(c Coord) int {
	if !g.InBounds(c) {
		return Empty
	}
	return g.cells[g.index(c.X, c.Y, c.Layer)]
}

// Set writes a tile id at (x, y, layer).
// Invalid positions and values below Empty are silently ignored.
func (g *Grid) Set(x, y, layer, value int) {
	if !g.IsValidPosition(x, y, layer) || value < Empty {
		return
	}
	g.cells[g.index(x, y, layer)] = value
}

// SetAt writes a tile id at c with the same rules as Set.
func (g *Grid) SetAt(c Coord, value int) {
	g.Set(c.X, c.Y, c.Layer, value)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		w:      g.w,
		h:      g.h,
		layers: g.layers,
		cells:  cells,
	}
}

// IsLayerEmpty reports whether every cell of the layer is Empty.
// Layers outside the grid are considered empty.
func (g *Grid) IsLayerEmpty(layer int) bool {
	if layer < 0 || layer >= g.layers {
		return true
	}
	start := g.index(0, 0, layer)
	for _, v := range g.cells[start : start+g.w*g.h] {
		if v != Empty {
			return false
		}
	}
	return true
}

// FilledCount returns the number of non-empty cells across all layers.
func (g *Grid) FilledCount() int {
	count := 0
	for _, v := range g.cells {
		if v != Empty {
			count++
		}
	}
	return count
}

// Row returns a copy of row y of the given layer, x ascending.
// Returns nil for rows outside the grid.
func (g *Grid) Row(y, layer int) []int {
	if !g.IsValidPosition(0, y, layer) {
		return nil
	}
	start := g.index(0, y, layer)
	row := make([]int, g.w)
	copy(row, g.cells[start:start+g.w])
	return row
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	if g.w != other.w || g.h != other.h || g.layers != other.layers {
		return false
	}
	for i, v := range g.cells {
		if v != other.cells[i] {
			return false
		}
	}
	return true
}
