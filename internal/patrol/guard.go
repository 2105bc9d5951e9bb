package patrol

import "fmt"

// Direction is the way the guard is facing.
type Direction int

// Clockwise order; TurnRight relies on it.
const (
	Up Direction = iota
	Right
	Down
	Left
)

var directions = [...]struct {
	dx, dy int
	marker rune
	name   string
}{
	Up:    {0, -1, '^', "up"},
	Right: {1, 0, '>', "right"},
	Down:  {0, 1, 'v', "down"},
	Left:  {-1, 0, '<', "left"},
}

// TurnRight returns the direction a quarter turn clockwise from d.
func (d Direction) TurnRight() Direction {
	return (d + 1) % Direction(len(directions))
}

// Delta is the unit step for d. Rows grow downwards.
func (d Direction) Delta() (dx, dy int) {
	v := directions[d]
	return v.dx, v.dy
}

// Marker is the rune used for d in grid text.
func (d Direction) Marker() rune {
	return directions[d].marker
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directions) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directions[d].name
}

// DirectionFromMarker maps ^ > v < to a direction.
func DirectionFromMarker(r rune) (Direction, bool) {
	for d, v := range directions {
		if v.marker == r {
			return Direction(d), true
		}
	}
	return 0, false
}

// Guard represents the guard's position and facing. Two guards are equal iff
// both fields are, which is what cycle detection keys on.
type Guard struct {
	Position Point
	Facing   Direction
}

// Ahead is the cell directly in front of the guard.
func (g Guard) Ahead() Point {
	return g.Position.Add(g.Facing.Delta())
}

func (g *Guard) Turn() {
	g.Facing = g.Facing.TurnRight()
}

func (g *Guard) Advance() {
	g.Position = g.Ahead()
}

func (g Guard) String() string {
	return fmt.Sprintf("%v %s", g.Position, g.Facing)
}
