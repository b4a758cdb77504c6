package agent_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/spachava753/vacuumsim/internal/agent"
	"github.com/spachava753/vacuumsim/internal/models"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

func legalSet(b models.Bounds, p models.Position) map[models.Direction]bool {
	set := make(map[models.Direction]bool)
	for _, d := range b.LegalDirections(p) {
		set[d] = true
	}
	return set
}

func TestNew(t *testing.T) {
	bounds := models.Bounds{Width: 3, Height: 3}
	for _, kind := range agent.Kinds() {
		a, err := agent.New(kind, bounds)
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if a.Kind() != kind {
			t.Errorf("New(%s).Kind() = %s", kind, a.Kind())
		}
	}

	if _, err := agent.New("roomba", bounds); !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for unknown kind, got %v", err)
	}
	if _, err := agent.New(models.AgentModelBased, models.Bounds{}); !errors.Is(err, models.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for empty bounds, got %v", err)
	}
}

func TestCleanDominatesMovement(t *testing.T) {
	bounds := models.Bounds{Width: 4, Height: 4}
	for _, kind := range agent.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			a, err := agent.New(kind, bounds)
			if err != nil {
				t.Fatal(err)
			}
			rng := newRand(3)
			for y := range bounds.Height {
				for x := range bounds.Width {
					p := agent.Percept{Position: models.Position{X: x, Y: y}, Bounds: bounds, Dirty: true}
					if act := a.Decide(p, rng); !act.IsClean() {
						t.Fatalf("dirty cell at (%d,%d) produced %s", x, y, act)
					}
				}
			}
		})
	}
}

func TestMovesStayInBounds(t *testing.T) {
	bounds := models.Bounds{Width: 3, Height: 2}
	for _, kind := range agent.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			a, err := agent.New(kind, bounds)
			if err != nil {
				t.Fatal(err)
			}
			rng := newRand(11)
			for i := range 500 {
				pos := models.Position{X: i % bounds.Width, Y: (i / bounds.Width) % bounds.Height}
				act := a.Decide(agent.Percept{Position: pos, Bounds: bounds}, rng)
				if act.IsClean() {
					t.Fatalf("clean cell at %s produced CLEAN", pos)
				}
				if !bounds.Contains(pos.Step(act.Direction)) {
					t.Fatalf("%s from %s leaves the grid", act, pos)
				}
			}
		})
	}
}

func TestReflexCornerUsesOnlyLegalDirections(t *testing.T) {
	bounds := models.Bounds{Width: 5, Height: 5}
	corners := []models.Position{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}}
	r := agent.NewReflex()
	rng := newRand(5)

	for _, c := range corners {
		legal := legalSet(bounds, c)
		if len(legal) != 2 {
			t.Fatalf("corner %s has %d legal directions", c, len(legal))
		}
		seen := make(map[models.Direction]bool)
		for range 200 {
			act := r.Decide(agent.Percept{Position: c, Bounds: bounds}, rng)
			if !legal[act.Direction] {
				t.Fatalf("corner %s: illegal %s", c, act)
			}
			seen[act.Direction] = true
		}
		if len(seen) != 2 {
			t.Errorf("corner %s: expected both legal directions to be sampled, saw %v", c, seen)
		}
	}
}

func TestReflexIsPureFunctionOfPercept(t *testing.T) {
	bounds := models.Bounds{Width: 6, Height: 4}
	a, b := agent.NewReflex(), agent.NewReflex()

	// Warm up one instance so any hidden state would diverge.
	warm := newRand(99)
	for i := range 50 {
		a.Decide(agent.Percept{Position: models.Position{X: i % 6, Y: i % 4}, Bounds: bounds}, warm)
	}

	p := agent.Percept{Position: models.Position{X: 2, Y: 1}, Bounds: bounds}
	ra, rb := newRand(7), newRand(7)
	for range 100 {
		if x, y := a.Decide(p, ra), b.Decide(p, rb); x != y {
			t.Fatalf("identical percepts and random streams diverged: %s vs %s", x, y)
		}
	}
}

func TestReflexDirectionsAreUniform(t *testing.T) {
	bounds := models.Bounds{Width: 3, Height: 3}
	center := models.Position{X: 1, Y: 1}
	r := agent.NewReflex()
	rng := newRand(21)

	const n = 8000
	counts := make(map[models.Direction]int)
	for range n {
		counts[r.Decide(agent.Percept{Position: center, Bounds: bounds}, rng).Direction]++
	}
	for _, d := range models.Directions {
		share := float64(counts[d]) / n
		if share < 0.2 || share > 0.3 {
			t.Errorf("direction %s chosen %.3f of the time, want about 0.25", d, share)
		}
	}
}

func TestModelBasedPrefersUnvisitedNeighbours(t *testing.T) {
	bounds := models.Bounds{Width: 3, Height: 3}
	m, err := agent.NewModelBased(bounds)
	if err != nil {
		t.Fatal(err)
	}
	rng := newRand(4)

	// Occupy the centre and then Up and Left neighbours.
	center := models.Position{X: 1, Y: 1}
	for _, pos := range []models.Position{center, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		m.Decide(agent.Percept{Position: pos, Bounds: bounds, Dirty: true}, rng)
	}

	for range 300 {
		act := m.Decide(agent.Percept{Position: center, Bounds: bounds}, rng)
		next := center.Step(act.Direction)
		if m.Visited(next) {
			t.Fatalf("selected visited neighbour %s while unvisited ones exist", next)
		}
	}
}

func TestModelBasedFallsBackWhenBoxedIn(t *testing.T) {
	bounds := models.Bounds{Width: 3, Height: 1}
	m, err := agent.NewModelBased(bounds)
	if err != nil {
		t.Fatal(err)
	}
	rng := newRand(8)
	for x := range 3 {
		m.Decide(agent.Percept{Position: models.Position{X: x}, Bounds: bounds, Dirty: true}, rng)
	}
	if m.VisitedCount() != 3 {
		t.Fatalf("VisitedCount() = %d, want 3", m.VisitedCount())
	}

	middle := models.Position{X: 1}
	seen := make(map[models.Direction]bool)
	for range 200 {
		act := m.Decide(agent.Percept{Position: middle, Bounds: bounds}, rng)
		if act.IsClean() {
			t.Fatal("clean cell produced CLEAN")
		}
		seen[act.Direction] = true
	}
	if !seen[models.Left] || !seen[models.Right] || len(seen) != 2 {
		t.Errorf("fallback should sample every legal direction, saw %v", seen)
	}
}

func TestModelBasedMarksVisitedBeforeDeciding(t *testing.T) {
	bounds := models.Bounds{Width: 2, Height: 2}
	m, err := agent.NewModelBased(bounds)
	if err != nil {
		t.Fatal(err)
	}
	origin := models.Position{}
	if m.Visited(origin) {
		t.Fatal("fresh agent reports visited cell")
	}
	m.Decide(agent.Percept{Position: origin, Bounds: bounds}, newRand(1))
	if !m.Visited(origin) {
		t.Error("current cell not marked visited")
	}
	if m.Visited(models.Position{X: 5, Y: 5}) {
		t.Error("out of range position reported visited")
	}
}

func TestSingleCellGridHasNoMove(t *testing.T) {
	bounds := models.Bounds{Width: 1, Height: 1}
	for _, kind := range agent.Kinds() {
		a, err := agent.New(kind, bounds)
		if err != nil {
			t.Fatal(err)
		}
		act := a.Decide(agent.Percept{Bounds: bounds}, newRand(1))
		if !act.IsClean() {
			t.Errorf("%s on 1x1 grid produced %s", kind, act)
		}
	}
}
