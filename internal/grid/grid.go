// Package grid implements the dirt field the agents clean.
package grid

import (
	"math/rand/v2"

	"github.com/spachava753/vacuumsim/internal/models"
)

// Grid is a fixed-size field of cells that are either dirty or clean.
// The dirt counter always equals the number of dirty cells.
type Grid struct {
	bounds  models.Bounds
	cells   []bool // row-major
	dirt    int
	initial int
}

// New creates a grid where every cell is independently dirty with
// probability p, drawing one value per cell from rng in row-major order.
func New(width, height int, p float64, rng *rand.Rand) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, models.Invalidf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if !(p >= 0 && p <= 1) {
		return nil, models.Invalidf("dirt probability must be in [0,1], got %g", p)
	}
	if rng == nil {
		return nil, models.Invalidf("random source is required")
	}

	g := &Grid{
		bounds: models.Bounds{Width: width, Height: height},
		cells:  make([]bool, width*height),
	}
	for i := range g.cells {
		if rng.Float64() < p {
			g.cells[i] = true
			g.dirt++
		}
	}
	g.initial = g.dirt
	return g, nil
}

// FromCells builds a grid from an explicit layout indexed [y][x].
// All rows must have the same non-zero length.
func FromCells(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, models.Invalidf("grid layout must not be empty")
	}
	width := len(cells[0])
	g := &Grid{
		bounds: models.Bounds{Width: width, Height: len(cells)},
		cells:  make([]bool, 0, width*len(cells)),
	}
	for y, row := range cells {
		if len(row) != width {
			return nil, models.Invalidf("row %d has %d cells, want %d", y, len(row), width)
		}
		for _, dirty := range row {
			if dirty {
				g.dirt++
			}
			g.cells = append(g.cells, dirty)
		}
	}
	g.initial = g.dirt
	return g, nil
}

func (g *Grid) Width() int            { return g.bounds.Width }
func (g *Grid) Height() int           { return g.bounds.Height }
func (g *Grid) Bounds() models.Bounds { return g.bounds }

// InitialDirt returns the number of dirty cells at construction.
func (g *Grid) InitialDirt() int { return g.initial }

// Remaining returns the current number of dirty cells.
func (g *Grid) Remaining() int { return g.dirt }

// IsFullyClean reports whether no dirty cell is left.
func (g *Grid) IsFullyClean() bool { return g.dirt == 0 }

// IsDirty reports whether the cell at (x, y) is dirty.
func (g *Grid) IsDirty(x, y int) (bool, error) {
	i, err := g.index(x, y)
	if err != nil {
		return false, err
	}
	return g.cells[i], nil
}

// Clean marks the cell at (x, y) clean and reports whether it was dirty.
// Cleaning an already clean cell is a no-op.
func (g *Grid) Clean(x, y int) (bool, error) {
	i, err := g.index(x, y)
	if err != nil {
		return false, err
	}
	if !g.cells[i] {
		return false, nil
	}
	g.cells[i] = false
	g.dirt--
	return true, nil
}

// Snapshot returns a copy of the dirt layout indexed [y][x].
func (g *Grid) Snapshot() [][]bool {
	rows := make([][]bool, g.bounds.Height)
	for y := range rows {
		start := y * g.bounds.Width
		rows[y] = append([]bool(nil), g.cells[start:start+g.bounds.Width]...)
	}
	return rows
}

func (g *Grid) index(x, y int) (int, error) {
	p := models.Position{X: x, Y: y}
	if !g.bounds.Contains(p) {
		return 0, &models.OutOfBoundsError{Pos: p, Bounds: g.bounds}
	}
	return y*g.bounds.Width + x, nil
}
