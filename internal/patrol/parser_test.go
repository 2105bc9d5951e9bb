package patrol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGridMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		marker string
		want   Direction
	}{
		{">", Right},
		{"<", Left},
		{"^", Up},
		{"v", Down},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			t.Parallel()

			grid, guard, err := ParseGrid("....#.....\n..." + tt.marker + ".....#\n")
			require.NoError(t, err)

			assert.Equal(t, Guard{Position: Point{X: 3, Y: 1}, Facing: tt.want}, guard)
			assert.Equal(t, []Point{{X: 4, Y: 0}, {X: 9, Y: 1}}, grid.Obstacles())
			assert.Equal(t, 2, grid.Rows)
			assert.Equal(t, 10, grid.Columns)
		})
	}
}

func TestParseGridSample(t *testing.T) {
	t.Parallel()

	grid, guard := mustLoad(t, "testdata/sample.txt")

	assert.Equal(t, 10, grid.Rows)
	assert.Equal(t, 10, grid.Columns)
	assert.Len(t, grid.Obstacles(), 8)
	assert.Equal(t, Guard{Position: Point{X: 4, Y: 6}, Facing: Up}, guard)
}

func TestParseGridLineEndings(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"crlf":             "#..\r\n.^.\r\n...\r\n",
		"no final newline": "#..\n.^.\n...",
		"blank lines":      "\n#..\n.^.\n...\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			grid, guard, err := ParseGrid(src)
			require.NoError(t, err)
			assert.Equal(t, 3, grid.Rows)
			assert.Equal(t, 3, grid.Columns)
			assert.Equal(t, []Point{{X: 0, Y: 0}}, grid.Obstacles())
			assert.Equal(t, Point{X: 1, Y: 1}, guard.Position)
		})
	}
}

func TestParseGridOtherCharactersAreFloor(t *testing.T) {
	t.Parallel()

	grid, _, err := ParseGrid("ab#\n ^X\n")
	require.NoError(t, err)

	assert.Equal(t, []Point{{X: 2, Y: 0}}, grid.Obstacles())
	assert.Equal(t, 3, grid.Columns)
}

func TestParseGridRaggedRowsUseLongest(t *testing.T) {
	t.Parallel()

	grid, _, err := ParseGrid("..\n.^...\n.\n")
	require.NoError(t, err)

	assert.Equal(t, 3, grid.Rows)
	assert.Equal(t, 5, grid.Columns)
}

func TestParseGridLastMarkerWins(t *testing.T) {
	t.Parallel()

	_, guard, err := ParseGrid("^..\n..<\n")
	require.NoError(t, err)

	assert.Equal(t, Guard{Position: Point{X: 2, Y: 1}, Facing: Left}, guard)
}

func TestParseGridWithoutGuard(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "\n\n", "..#\n...\n"} {
		_, _, err := ParseGrid(src)
		assert.True(t, errors.Is(err, ErrNoGuard), "ParseGrid(%q) error = %v", src, err)
	}
}

func TestLoadGridMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := LoadGrid("testdata/does-not-exist.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read grid testdata/does-not-exist.txt")
}
