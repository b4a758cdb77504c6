package agent

import (
	"math/rand/v2"

	"github.com/spachava753/vacuumsim/internal/models"
)

// Reflex cleans a dirty cell and otherwise wanders uniformly at random.
// It keeps no state between decisions.
type Reflex struct{}

// NewReflex creates a reflex agent.
func NewReflex() *Reflex {
	return &Reflex{}
}

func (*Reflex) Kind() models.AgentKind { return models.AgentReflex }

// Decide cleans a dirty cell, else moves in a uniformly drawn legal direction.
func (*Reflex) Decide(p Percept, rng *rand.Rand) models.Action {
	if p.Dirty {
		return models.Clean()
	}
	legal := p.Bounds.LegalDirections(p.Position)
	if len(legal) == 0 {
		return models.Clean()
	}
	return models.Move(pick(legal, rng))
}
