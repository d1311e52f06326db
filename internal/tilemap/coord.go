package tilemap

import "fmt"

// Coord addresses a single cell of a layered grid.
// X increases to the right, Y increases upward (row 0 is the bottom row).
type Coord struct {
	X     int
	Y     int
	Layer int
}

// C is a convenience constructor for Coord.
func C(x, y, layer int) Coord {
	return Coord{X: x, Y: y, Layer: layer}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Layer)
}

// Add returns a new Coord offset by (dx, dy) on the same layer.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy, Layer: c.Layer}
}

// Neighbors returns the four orthogonal neighbors on the same layer.
// Order: +x, -x, +y, -y.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(1, 0),
		c.Add(-1, 0),
		c.Add(0, 1),
		c.Add(0, -1),
	}
}
