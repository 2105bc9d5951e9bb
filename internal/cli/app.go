// Package cli provides the patrol command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"patrol/internal/config"
	"patrol/internal/logging"
	"patrol/internal/telemetry"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	workers    int
	trace      bool
}

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions

	cfg      config.Config
	logger   *bolt.Logger
	shutdown telemetry.ShutdownFunc
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		shutdown: telemetry.Noop,
	}

	app.root = &cobra.Command{
		Use:   "patrol",
		Short: "Simulate a patrolling guard and find loop-causing obstructions",
		Long: `patrol reads a grid where '#' marks an obstacle and one of ^ > v <
marks the guard. The guard walks ahead, turns right at obstacles and
leaves the grid eventually, unless it is caught in a loop.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  app.setup,
		PersistentPostRunE: app.teardown,
	}

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "Path to a patrol.yaml configuration file")
	flags.StringVar(&app.opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&app.opts.logFormat, "log-format", "", "Log format: console or json")
	flags.IntVar(&app.opts.workers, "workers", 0, "Concurrent obstruction trials (0 = one per CPU)")
	flags.BoolVar(&app.opts.trace, "trace", false, "Print trace spans to stderr")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newPathCmd(),
		app.newObstructionsCmd(),
		app.newRenderCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup merges the config file with flags and builds the logger and tracer.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.opts.logFormat
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = a.opts.workers
	}
	if flags.Changed("trace") {
		cfg.Trace.Enabled = a.opts.trace
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.stderr,
	})

	if cfg.Trace.Enabled {
		shutdown, err := telemetry.Setup(a.stderr, Version)
		if err != nil {
			return fmt.Errorf("set up tracing: %w", err)
		}
		a.shutdown = shutdown
	}
	return nil
}

func (a *App) teardown(cmd *cobra.Command, _ []string) error {
	return a.shutdown(cmd.Context())
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "patrol version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
		},
	}
}
