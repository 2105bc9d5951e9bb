package patrol

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette styles each kind of cell when rendering.
type Palette struct {
	Obstacle    func(string) string
	Guard       func(string) string
	Visited     func(string) string
	Obstruction func(string) string
	Floor       func(string) string
}

// PlainPalette renders bare characters.
func PlainPalette() Palette {
	id := func(s string) string { return s }
	return Palette{Obstacle: id, Guard: id, Visited: id, Obstruction: id, Floor: id}
}

// StyledPalette colours cells for w. Colours are dropped when w is not a
// terminal that supports them.
func StyledPalette(w io.Writer) Palette {
	r := lipgloss.NewRenderer(w)
	fg := func(color string, bold bool) func(string) string {
		st := r.NewStyle().Foreground(lipgloss.Color(color)).Bold(bold)
		return func(s string) string { return st.Render(s) }
	}
	return Palette{
		Obstacle:    fg("241", false),
		Guard:       fg("226", true),
		Visited:     fg("42", false),
		Obstruction: fg("196", true),
		Floor:       fg("238", false),
	}
}

// Render draws the grid with the guard's start, its path and the given
// obstructions. Obstructions take precedence over path cells.
func Render(w io.Writer, grid *Grid, start Guard, path Itinerary, obstructions []Point, pal Palette) error {
	visited := make(map[Point]struct{}, len(path))
	for _, p := range path {
		visited[p] = struct{}{}
	}
	blocked := make(map[Point]struct{}, len(obstructions))
	for _, p := range obstructions {
		blocked[p] = struct{}{}
	}

	bw := bufio.NewWriter(w)
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Columns; x++ {
			p := Point{X: x, Y: y}
			var cell string
			switch {
			case p == start.Position:
				cell = pal.Guard(string(start.Facing.Marker()))
			case grid.IsObstacle(p):
				cell = pal.Obstacle("#")
			case hasPoint(blocked, p):
				cell = pal.Obstruction("O")
			case hasPoint(visited, p):
				cell = pal.Visited("X")
			default:
				cell = pal.Floor(".")
			}
			bw.WriteString(cell)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func hasPoint(set map[Point]struct{}, p Point) bool {
	_, ok := set[p]
	return ok
}
