package grid_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/spachava753/vacuumsim/internal/grid"
	"github.com/spachava753/vacuumsim/internal/models"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func countDirty(t *testing.T, g *grid.Grid) int {
	t.Helper()
	n := 0
	for y := range g.Height() {
		for x := range g.Width() {
			dirty, err := g.IsDirty(x, y)
			if err != nil {
				t.Fatalf("IsDirty(%d,%d): %v", x, y, err)
			}
			if dirty {
				n++
			}
		}
	}
	return n
}

func TestNewDirtCountMatchesCells(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		p    float64
	}{
		{name: "single cell", w: 1, h: 1, p: 0.5},
		{name: "square", w: 8, h: 8, p: 0.3},
		{name: "wide", w: 13, h: 2, p: 0.7},
		{name: "tall", w: 1, h: 9, p: 0.1},
		{name: "never dirty", w: 5, h: 5, p: 0},
		{name: "always dirty", w: 4, h: 6, p: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := range uint64(20) {
				g, err := grid.New(tt.w, tt.h, tt.p, newRand(seed))
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				got := g.Remaining()
				if got != countDirty(t, g) {
					t.Fatalf("Remaining() = %d, counted %d", got, countDirty(t, g))
				}
				if got < 0 || got > tt.w*tt.h {
					t.Fatalf("Remaining() = %d out of [0,%d]", got, tt.w*tt.h)
				}
				if g.InitialDirt() != got {
					t.Errorf("InitialDirt() = %d, want %d", g.InitialDirt(), got)
				}
				switch tt.p {
				case 0:
					if got != 0 {
						t.Errorf("p=0 produced %d dirty cells", got)
					}
				case 1:
					if got != tt.w*tt.h {
						t.Errorf("p=1 produced %d dirty cells, want %d", got, tt.w*tt.h)
					}
				}
			}
		})
	}
}

func TestNewIsReproducible(t *testing.T) {
	a, err := grid.New(8, 8, 0.3, newRand(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := grid.New(8, 8, 0.3, newRand(42))
	if err != nil {
		t.Fatal(err)
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	for y := range sa {
		for x := range sa[y] {
			if sa[y][x] != sb[y][x] {
				t.Fatalf("cell (%d,%d) differs between identically seeded grids", x, y)
			}
		}
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		p    float64
		rng  *rand.Rand
	}{
		{name: "zero width", w: 0, h: 3, p: 0.5, rng: newRand(1)},
		{name: "negative height", w: 3, h: -1, p: 0.5, rng: newRand(1)},
		{name: "probability below zero", w: 3, h: 3, p: -0.1, rng: newRand(1)},
		{name: "probability above one", w: 3, h: 3, p: 1.5, rng: newRand(1)},
		{name: "probability NaN", w: 3, h: 3, p: math.NaN(), rng: newRand(1)},
		{name: "nil random source", w: 3, h: 3, p: 0.5, rng: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grid.New(tt.w, tt.h, tt.p, tt.rng)
			if !errors.Is(err, models.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	g, err := grid.FromCells([][]bool{
		{true, false},
		{false, true},
	})
	if err != nil {
		t.Fatal(err)
	}

	removed, err := g.Clean(0, 0)
	if err != nil || !removed {
		t.Fatalf("first Clean = (%v, %v), want (true, nil)", removed, err)
	}
	if g.Remaining() != 1 {
		t.Fatalf("Remaining() = %d after one clean, want 1", g.Remaining())
	}

	removed, err = g.Clean(0, 0)
	if err != nil || removed {
		t.Fatalf("second Clean = (%v, %v), want (false, nil)", removed, err)
	}
	if g.Remaining() != 1 {
		t.Fatalf("Remaining() = %d after repeated clean, want 1", g.Remaining())
	}

	if _, err := g.Clean(1, 0); err != nil {
		t.Fatal(err)
	}
	if g.Remaining() != 1 {
		t.Errorf("cleaning a clean cell changed Remaining() to %d", g.Remaining())
	}

	if _, err := g.Clean(1, 1); err != nil {
		t.Fatal(err)
	}
	if !g.IsFullyClean() || g.Remaining() != 0 {
		t.Errorf("expected fully clean grid, Remaining() = %d", g.Remaining())
	}
	if _, err := g.Clean(1, 1); err != nil {
		t.Fatal(err)
	}
	if g.Remaining() != 0 {
		t.Errorf("Remaining() went below zero: %d", g.Remaining())
	}
	if g.InitialDirt() != 2 {
		t.Errorf("InitialDirt() = %d, want 2", g.InitialDirt())
	}
}

func TestOutOfBounds(t *testing.T) {
	g, err := grid.New(3, 2, 0.5, newRand(7))
	if err != nil {
		t.Fatal(err)
	}

	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}}
	for _, c := range coords {
		if _, err := g.IsDirty(c[0], c[1]); !errors.Is(err, models.ErrOutOfBounds) {
			t.Errorf("IsDirty(%d,%d): expected ErrOutOfBounds, got %v", c[0], c[1], err)
		}
		before := g.Remaining()
		if _, err := g.Clean(c[0], c[1]); !errors.Is(err, models.ErrOutOfBounds) {
			t.Errorf("Clean(%d,%d): expected ErrOutOfBounds, got %v", c[0], c[1], err)
		}
		if g.Remaining() != before {
			t.Errorf("failed Clean changed Remaining()")
		}
	}

	var oob *models.OutOfBoundsError
	_, err = g.IsDirty(5, 5)
	if !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError, got %T", err)
	}
	if oob.Pos != (models.Position{X: 5, Y: 5}) {
		t.Errorf("unexpected position in error: %v", oob.Pos)
	}
}

func TestFromCellsRejectsRaggedRows(t *testing.T) {
	_, err := grid.FromCells([][]bool{{true, false}, {true}})
	if !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := grid.FromCells(nil); !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration for empty layout, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g, err := grid.FromCells([][]bool{{true, true}})
	if err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	snap[0][0] = false
	if dirty, _ := g.IsDirty(0, 0); !dirty {
		t.Error("mutating the snapshot changed the grid")
	}
}
