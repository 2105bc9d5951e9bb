package patrol

import (
	"fmt"
	"maps"
	"os"
	"slices"
)

// Point is a grid cell. X is the column, Y the row.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p shifted by d.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Grid is the obstacle layout of a patrolled area. It is never mutated after
// construction; WithObstacle derives a new variant.
type Grid struct {
	Rows    int
	Columns int

	obstacles map[Point]struct{}
}

// NewGrid builds a grid of the given extent. Obstacles outside the extent
// are dropped.
func NewGrid(rows, columns int, obstacles []Point) *Grid {
	g := &Grid{Rows: rows, Columns: columns, obstacles: make(map[Point]struct{}, len(obstacles))}
	for _, p := range obstacles {
		if g.InBounds(p) {
			g.obstacles[p] = struct{}{}
		}
	}
	return g
}

// Load grid from text file
// Format: one row per line, '#' obstacle, one of ^ v < > the guard, anything
// else empty floor.
func LoadGrid(path string) (*Grid, Guard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Guard{}, fmt.Errorf("read grid %s: %w", path, err)
	}
	return parseGrid(path, string(data))
}

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Columns && p.Y >= 0 && p.Y < g.Rows
}

func (g *Grid) IsObstacle(p Point) bool {
	_, ok := g.obstacles[p]
	return ok
}

// WithObstacle returns a copy of g with one extra obstacle at p.
func (g *Grid) WithObstacle(p Point) *Grid {
	variant := &Grid{Rows: g.Rows, Columns: g.Columns, obstacles: maps.Clone(g.obstacles)}
	if variant.obstacles == nil {
		variant.obstacles = make(map[Point]struct{}, 1)
	}
	if variant.InBounds(p) {
		variant.obstacles[p] = struct{}{}
	}
	return variant
}

// Obstacles lists the obstacle cells in row-major order.
func (g *Grid) Obstacles() []Point {
	out := slices.Collect(maps.Keys(g.obstacles))
	sortPoints(out)
	return out
}

// StateBound is the number of distinct (position, facing) pairs the grid
// admits. No simulation on g runs more than StateBound(g)+1 steps.
func StateBound(g *Grid) int {
	return g.Rows * g.Columns * len(directions)
}

func sortPoints(ps []Point) {
	slices.SortFunc(ps, func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}
