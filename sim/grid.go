package sim

import "fmt"

// emptyCell marks a grid position with no occupant.
const emptyCell = -1

// Cell addresses one grid position. X in [0, Width), Y in [0, Height).
type Cell struct {
	X, Y int
}

// String renders the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// TaxicabDistance returns |dx| + |dy| between two cells.
func TaxicabDistance(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mooreOffsets lists the 8 neighbor offsets in row-major order.
var mooreOffsets = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is a bounded (non-wrapping) lattice. Each position stores the index of
// its occupant in the engine's agent slice, or emptyCell. The occupant's color
// is cached next to the index so neighborhood scans never touch the agents.
//
// Occupancy is maintained incrementally by Place and Remove; nothing
// rebuilds it from agent positions.
//
// Thread-safety: NOT thread-safe. Owned by a single Simulator.
type Grid struct {
	Width    int
	Height   int
	occupant []int
	colors   []Color
	occupied int
}

// NewGrid creates an empty width×height grid. Panics on non-positive dimensions.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("NewGrid: invalid dimensions %dx%d", width, height))
	}
	n := width * height
	g := &Grid{
		Width:    width,
		Height:   height,
		occupant: make([]int, n),
		colors:   make([]Color, n),
	}
	for i := range g.occupant {
		g.occupant[i] = emptyCell
	}
	return g
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

func (g *Grid) index(c Cell) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("Grid: cell %v out of bounds %dx%d", c, g.Width, g.Height))
	}
	return c.Y*g.Width + c.X
}

func (g *Grid) cellAt(i int) Cell {
	return Cell{X: i % g.Width, Y: i / g.Width}
}

// IsOccupied reports whether an agent stands on c.
func (g *Grid) IsOccupied(c Cell) bool {
	return g.occupant[g.index(c)] != emptyCell
}

// Occupant returns the agent index on c and true, or (-1, false) if c is empty.
func (g *Grid) Occupant(c Cell) (int, bool) {
	id := g.occupant[g.index(c)]
	return id, id != emptyCell
}

// ColorAt returns the occupant's color on c and true, or false if c is empty.
func (g *Grid) ColorAt(c Cell) (Color, bool) {
	i := g.index(c)
	if g.occupant[i] == emptyCell {
		return 0, false
	}
	return g.colors[i], true
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	return g.occupied
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	return g.Size() - g.occupied
}

// EmptyCells returns every unoccupied cell in row-major order.
// The order is part of the reproducibility contract: random draws index into it.
func (g *Grid) EmptyCells() []Cell {
	cells := make([]Cell, 0, g.EmptyCount())
	for i, id := range g.occupant {
		if id == emptyCell {
			cells = append(cells, g.cellAt(i))
		}
	}
	return cells
}

// Neighbors returns the in-bounds Moore neighborhood of c in row-major order:
// 3 cells at a corner, 5 on an edge, 8 in the interior.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(mooreOffsets))
	for _, off := range mooreOffsets {
		n := Cell{X: c.X + off.X, Y: c.Y + off.Y}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Place puts agent id of the given color on the empty cell c.
// Panics if c is already occupied.
func (g *Grid) Place(c Cell, id int, color Color) {
	i := g.index(c)
	if g.occupant[i] != emptyCell {
		panic(fmt.Sprintf("Grid.Place: cell %v already holds agent %d", c, g.occupant[i]))
	}
	g.occupant[i] = id
	g.colors[i] = color
	g.occupied++
}

// Remove clears c and returns the agent index that stood there.
// Panics if c is empty.
func (g *Grid) Remove(c Cell) int {
	i := g.index(c)
	id := g.occupant[i]
	if id == emptyCell {
		panic(fmt.Sprintf("Grid.Remove: cell %v is empty", c))
	}
	g.occupant[i] = emptyCell
	g.colors[i] = 0
	g.occupied--
	return id
}
