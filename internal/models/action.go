package models

import (
	"encoding/json"
	"fmt"
)

// ActionKind distinguishes cleaning from moving.
type ActionKind int

const (
	ActionClean ActionKind = iota
	ActionMove
)

// Action is what an agent asks the runner to do in one step.
type Action struct {
	Kind      ActionKind
	Direction Direction // only meaningful when Kind == ActionMove
}

// Clean is the CLEAN action.
func Clean() Action {
	return Action{Kind: ActionClean}
}

// Move returns the MOVE action in direction d.
func Move(d Direction) Action {
	return Action{Kind: ActionMove, Direction: d}
}

// IsClean reports whether the action cleans the current cell.
func (a Action) IsClean() bool {
	return a.Kind == ActionClean
}

// String renders the action as CLEAN or MOVE_<DIRECTION>.
func (a Action) String() string {
	switch a.Kind {
	case ActionClean:
		return "CLEAN"
	case ActionMove:
		return "MOVE_" + a.Direction.String()
	default:
		return fmt.Sprintf("Action(%d)", int(a.Kind))
	}
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
