package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleGrid = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Version(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "patrol version") {
		t.Errorf("version output missing 'patrol version', got: %s", out)
	}
}

func TestApp_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"path", "obstructions", "render", "--workers"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q, got: %s", want, out)
		}
	}
}

func TestApp_Path(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)

	out, _, err := run(t, "path", grid)
	if err != nil {
		t.Fatalf("path command failed: %v", err)
	}
	if strings.TrimSpace(out) != "41" {
		t.Errorf("path output = %q, want 41", out)
	}
}

func TestApp_Obstructions(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)

	for _, workers := range []string{"1", "4"} {
		out, stderr, err := run(t, "obstructions", "--workers", workers, "--log-format", "json", grid)
		if err != nil {
			t.Fatalf("obstructions command failed: %v", err)
		}
		if strings.TrimSpace(out) != "6" {
			t.Errorf("obstructions output = %q, want 6", out)
		}
		if !strings.Contains(stderr, `"workers":`+workers) {
			t.Errorf("expected search log with workers=%s on stderr, got: %s", workers, stderr)
		}
	}
}

func TestApp_Render(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)

	out, _, err := run(t, "render", "--obstructions", grid)
	if err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("render printed %d lines, want 10:\n%s", len(lines), out)
	}
	if lines[6] != ".#XO^XXXX." {
		t.Errorf("row 6 = %q, want %q", lines[6], ".#XO^XXXX.")
	}
	if got := strings.Count(out, "O"); got != 6 {
		t.Errorf("render marked %d obstructions, want 6", got)
	}
}

func TestApp_ConfigFile(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)
	cfg := writeFile(t, "patrol.yaml", "log:\n  level: error\n  format: json\nsearch:\n  workers: 2\n")

	out, stderr, err := run(t, "obstructions", "-c", cfg, grid)
	if err != nil {
		t.Fatalf("obstructions command failed: %v", err)
	}
	if strings.TrimSpace(out) != "6" {
		t.Errorf("obstructions output = %q, want 6", out)
	}
	if strings.Contains(stderr, "obstruction search finished") {
		t.Errorf("info log written at error level: %s", stderr)
	}
}

func TestApp_Errors(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)
	badCfg := writeFile(t, "patrol.yaml", "log:\n  level: loud\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing grid", []string{"path", filepath.Join(t.TempDir(), "none.txt")}, "read grid"},
		{"no argument", []string{"path"}, "accepts 1 arg"},
		{"bad config", []string{"path", "-c", badCfg, grid}, "invalid log level"},
		{"bad flag value", []string{"path", "--log-format", "xml", grid}, "invalid log format"},
		{"no guard", []string{"obstructions", writeFile(t, "empty.txt", "...\n")}, "no guard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestApp_Trace(t *testing.T) {
	grid := writeFile(t, "grid.txt", sampleGrid)

	out, stderr, err := run(t, "obstructions", "--trace", "--log-level", "error", grid)
	if err != nil {
		t.Fatalf("obstructions command failed: %v", err)
	}
	if strings.TrimSpace(out) != "6" {
		t.Errorf("obstructions output = %q, want 6", out)
	}
	for _, want := range []string{"patrol.search", "patrol.simulate"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected span %s on stderr, got: %s", want, stderr)
		}
	}
}
