package models

import "fmt"

// Position is a cell coordinate. Row 0 is the top row.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position in direction d. It does not check bounds.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Direction is one of the four orthogonal moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in the fixed candidate order used when
// computing legal moves.
var Directions = [...]Direction{Up, Down, Left, Right}

// Delta returns the (dx, dy) offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Bounds describes the extent of a grid.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Cells returns the number of cells covered by the bounds.
func (b Bounds) Cells() int {
	return b.Width * b.Height
}

// LegalDirections returns the directions whose neighbour of p stays in bounds,
// in the order of Directions.
func (b Bounds) LegalDirections(p Position) []Direction {
	legal := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if b.Contains(p.Step(d)) {
			legal = append(legal, d)
		}
	}
	return legal
}
