package agent

import (
	"math/rand/v2"

	"github.com/spachava753/vacuumsim/internal/models"
)

// ModelBased remembers which cells it has occupied and prefers to move to
// neighbours it has not visited yet. When every legal neighbour is visited it
// falls back to a uniform random legal move. The memory is a belief about
// where the agent has been, not about where dirt is.
type ModelBased struct {
	bounds  models.Bounds
	visited []bool // row-major
	count   int
}

// NewModelBased creates an agent with an empty visited map sized to bounds.
func NewModelBased(bounds models.Bounds) (*ModelBased, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil, models.Invalidf("agent memory dimensions must be positive, got %dx%d", bounds.Width, bounds.Height)
	}
	return &ModelBased{
		bounds:  bounds,
		visited: make([]bool, bounds.Cells()),
	}, nil
}

func (*ModelBased) Kind() models.AgentKind { return models.AgentModelBased }

// MemoryBounds returns the extent of the visited map.
func (m *ModelBased) MemoryBounds() models.Bounds { return m.bounds }

// Decide marks the current position visited, then cleans or moves,
// preferring unvisited legal neighbours.
func (m *ModelBased) Decide(p Percept, rng *rand.Rand) models.Action {
	m.markVisited(p.Position)

	if p.Dirty {
		return models.Clean()
	}

	legal := p.Bounds.LegalDirections(p.Position)
	if len(legal) == 0 {
		return models.Clean()
	}
	unvisited := make([]models.Direction, 0, len(legal))
	for _, d := range legal {
		if !m.Visited(p.Position.Step(d)) {
			unvisited = append(unvisited, d)
		}
	}

	if len(unvisited) > 0 {
		return models.Move(pick(unvisited, rng))
	}
	return models.Move(pick(legal, rng))
}

// Visited reports whether the agent has occupied pos. Positions outside the
// agent's memory are reported as not visited.
func (m *ModelBased) Visited(pos models.Position) bool {
	if !m.bounds.Contains(pos) {
		return false
	}
	return m.visited[pos.Y*m.bounds.Width+pos.X]
}

// VisitedCount returns the number of distinct cells occupied so far.
func (m *ModelBased) VisitedCount() int {
	return m.count
}

// markVisited ignores positions outside the memory. NewRunner rejects a grid
// whose bounds differ from MemoryBounds, so a runner never reaches that case.
func (m *ModelBased) markVisited(pos models.Position) {
	if !m.bounds.Contains(pos) {
		return
	}
	i := pos.Y*m.bounds.Width + pos.X
	if !m.visited[i] {
		m.visited[i] = true
		m.count++
	}
}
