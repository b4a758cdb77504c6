// Package agent implements the cleaning-agent decision policies.
//
// Both architectures satisfy the same Agent capability: given what the agent
// perceives at its current position and a random source, return the next
// action. Agents only ever offer moves that stay inside the percept bounds.
// On a 1x1 grid there is no legal move and a clean cell yields CLEAN, which
// leaves the grid unchanged.
package agent

import (
	"math/rand/v2"

	"github.com/spachava753/vacuumsim/internal/models"
)

// Percept is what an agent observes at decision time.
type Percept struct {
	Position models.Position
	Bounds   models.Bounds
	Dirty    bool
}

// Agent decides the next action from the current percept.
type Agent interface {
	Kind() models.AgentKind
	Decide(p Percept, rng *rand.Rand) models.Action
}

// Bounded is implemented by agents whose memory is sized for one grid. A
// runner must only pair such an agent with a grid of the same bounds.
type Bounded interface {
	MemoryBounds() models.Bounds
}

// New constructs a fresh agent of the given kind for a grid of the given bounds.
func New(kind models.AgentKind, bounds models.Bounds) (Agent, error) {
	switch kind {
	case models.AgentReflex:
		return NewReflex(), nil
	case models.AgentModelBased:
		return NewModelBased(bounds)
	default:
		return nil, models.Invalidf("unknown agent kind %q", kind)
	}
}

// Kinds lists the agent kinds in comparison order.
func Kinds() []models.AgentKind {
	return []models.AgentKind{models.AgentReflex, models.AgentModelBased}
}

func pick(dirs []models.Direction, rng *rand.Rand) models.Direction {
	return dirs[rng.IntN(len(dirs))]
}
