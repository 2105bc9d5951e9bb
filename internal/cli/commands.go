package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"patrol/internal/logging"
	"patrol/internal/patrol"
)

func (a *App) searchOptions() []patrol.SearchOption {
	return []patrol.SearchOption{
		patrol.WithWorkers(a.cfg.Search.Workers),
		patrol.WithLogger(a.logger),
	}
}

// newPathCmd creates the path command.
func (a *App) newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <grid file>",
		Short: "Count the distinct cells the guard visits before leaving",
		Long: `Simulate the guard on the grid and print the number of distinct cells
it stands on before it steps off the grid. Prints 0 when the guard never
leaves.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			began := time.Now()
			n, err := patrol.CountGuardPath(args[0])
			if err != nil {
				return err
			}
			logging.With(a.logger.Debug(),
				logging.Count("distinct", n),
				logging.Duration(time.Since(began)),
			).Msg("path counted")
			fmt.Fprintln(a.stdout, n)
			return nil
		},
	}
}

// newObstructionsCmd creates the obstructions command.
func (a *App) newObstructionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "obstructions <grid file>",
		Short: "Count cells where one new obstacle traps the guard in a loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := patrol.CountGuardBlockingPossibilities(cmd.Context(), args[0], a.searchOptions()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, n)
			return nil
		},
	}
}

type renderOptions struct {
	obstructions bool
	color        bool
}

// newRenderCmd creates the render command.
func (a *App) newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <grid file>",
		Short: "Print the grid with the guard's path",
		Long: `Print the grid with the guard's path marked X. With --obstructions the
cells where a new obstacle would trap the guard are marked O.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, guard, err := patrol.LoadGrid(args[0])
			if err != nil {
				return err
			}

			out := patrol.Simulate(grid, guard)
			logging.With(a.logger.Debug(),
				logging.Grid(grid.Rows, grid.Columns),
				logging.Point("start", guard.Position.X, guard.Position.Y),
				logging.Direction(guard.Facing),
				logging.Status(string(out.Status)),
				logging.Count("steps", out.Steps),
			).Msg("simulated")
			if out.Loops() {
				logging.With(a.logger.Warn(), logging.Status(string(out.Status))).
					Msg("guard never leaves; no path to draw")
			}

			var blocks []patrol.Point
			if opts.obstructions {
				blocks = patrol.FindBlockingObstructions(cmd.Context(), grid, guard, a.searchOptions()...)
			}

			pal := patrol.PlainPalette()
			if opts.color {
				pal = patrol.StyledPalette(a.stdout)
			}
			return patrol.Render(a.stdout, grid, guard, out.Itinerary, blocks, pal)
		},
	}

	cmd.Flags().BoolVar(&opts.obstructions, "obstructions", false, "Mark loop-causing obstruction cells")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Colour the output when the terminal supports it")

	return cmd
}
