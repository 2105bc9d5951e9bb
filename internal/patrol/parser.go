package patrol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrNoGuard is returned when the grid text holds no guard marker.
var ErrNoGuard = errors.New("grid has no guard marker")

type gridSource struct {
	Rows []*rowSource `parser:"EOL* @@*"`
}

type rowSource struct {
	Cells []string `parser:"@( Obstacle | Marker | Floor )+ EOL*"`
}

var gridLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Obstacle", Pattern: `#`},
	{Name: "Marker", Pattern: `[\^v<>]`},
	{Name: "Floor", Pattern: `[^#\^v<>\n]`},
})

var gridParser = participle.MustBuild[gridSource](participle.Lexer(gridLexer))

// ParseGrid reads a grid and the guard's starting state from text. Rows must
// be of equal length and hold exactly one guard marker; only a missing marker
// is reported. With several markers the last one wins.
func ParseGrid(src string) (*Grid, Guard, error) {
	return parseGrid("grid", src)
}

func parseGrid(name, src string) (*Grid, Guard, error) {
	if strings.Trim(src, "\r\n") == "" {
		return nil, Guard{}, fmt.Errorf("parse %s: %w", name, ErrNoGuard)
	}
	ast, err := gridParser.ParseString(name, src)
	if err != nil {
		return nil, Guard{}, fmt.Errorf("parse %s: %w", name, err)
	}

	var (
		obstacles []Point
		guard     Guard
		found     bool
		columns   int
	)
	for y, row := range ast.Rows {
		columns = max(columns, len(row.Cells))
		for x, cell := range row.Cells {
			p := Point{X: x, Y: y}
			if cell == "#" {
				obstacles = append(obstacles, p)
				continue
			}
			if d, ok := DirectionFromMarker([]rune(cell)[0]); ok {
				guard = Guard{Position: p, Facing: d}
				found = true
			}
		}
	}
	if !found {
		return nil, Guard{}, fmt.Errorf("parse %s: %w", name, ErrNoGuard)
	}
	return NewGrid(len(ast.Rows), columns, obstacles), guard, nil
}
