package models

// TerminationReason records why a trial stopped.
type TerminationReason string

const (
	TerminatedAllClean  TerminationReason = "all_clean"
	TerminatedStepLimit TerminationReason = "step_limit"
)

// Trial represents a single agent run in a freshly generated world.
type Trial struct {
	ID    string // unique identifier
	Agent AgentKind
	World WorldConfig
	Index int    // position within the comparison, selects the random streams
	Seed  uint64 // comparison seed
}

// StepRecord describes one completed simulation step.
type StepRecord struct {
	Step      int      `json:"step"`
	Action    Action   `json:"action"`
	Position  Position `json:"position"`
	Remaining int      `json:"remaining"`
	Removed   bool     `json:"removed"` // the CLEAN removed dirt
}

// TrialResult contains the outcome of a trial execution.
type TrialResult struct {
	ID            string            `json:"id"`
	Agent         AgentKind         `json:"agent"`
	World         string            `json:"world"`
	Index         int               `json:"index"`
	Moves         int               `json:"moves"`
	Cleans        int               `json:"cleans"`
	Steps         int               `json:"steps"`
	InitialDirt   int               `json:"initial_dirt"`
	RemainingDirt int               `json:"remaining_dirt"`
	TerminatedBy  TerminationReason `json:"terminated_by,omitempty"`
	Efficiency    float64           `json:"efficiency"`
	Error         *TrialError       `json:"error,omitempty"`
}

type TrialError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// Efficiency is cleans / steps, or 0 when no step was taken.
func Efficiency(cleans, steps int) float64 {
	if steps <= 0 {
		return 0
	}
	return float64(cleans) / float64(steps)
}
