package patrol

import (
	"context"
	"runtime"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"patrol/internal/logging"
)

const (
	tracerName = "patrol"

	// trial cost is uneven across candidates
	chunksPerWorker = 4
)

type searchConfig struct {
	workers int
	logger  *bolt.Logger
}

// SearchOption configures FindBlockingObstructions.
type SearchOption func(*searchConfig)

// WithWorkers bounds the number of concurrent trials. Values below one mean
// runtime.NumCPU().
func WithWorkers(n int) SearchOption {
	return func(c *searchConfig) {
		c.workers = n
	}
}

// WithLogger sets the logger used for search progress.
func WithLogger(l *bolt.Logger) SearchOption {
	return func(c *searchConfig) {
		c.logger = l
	}
}

func newSearchConfig(opts []SearchOption) searchConfig {
	cfg := searchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.NumCPU()
	}
	if cfg.logger == nil {
		cfg.logger = logging.Get()
	}
	return cfg
}

// Candidates lists the cells worth trying an obstruction on: every distinct
// cell of the baseline path except the start and existing obstacles. Cells
// off the baseline path cannot change where the guard walks.
func Candidates(grid *Grid, start Guard, baseline Itinerary) []Point {
	var out []Point
	for _, p := range baseline.Cells() {
		if p == start.Position || grid.IsObstacle(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FindBlockingObstructions returns every cell where one added obstacle makes
// the guard loop forever, sorted row-major. It returns nil when the guard
// already loops on the unmodified grid.
func FindBlockingObstructions(ctx context.Context, grid *Grid, start Guard, opts ...SearchOption) []Point {
	cfg := newSearchConfig(opts)
	runID := uuid.NewString()
	began := time.Now()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "patrol.search",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("rows", grid.Rows),
			attribute.Int("columns", grid.Columns),
			attribute.Int("workers", cfg.workers),
		))
	defer span.End()

	baseline := simulateTraced(ctx, grid, start)
	if baseline.Loops() {
		logging.With(cfg.logger.Warn(),
			logging.RunID(runID),
			logging.Point("start", start.Position.X, start.Position.Y),
		).Msg("guard loops without an added obstruction")
		span.SetAttributes(attribute.Bool("baseline_loops", true))
		return nil
	}

	candidates := Candidates(grid, start, baseline.Itinerary)
	chunks := partition(candidates, cfg.workers*chunksPerWorker)
	partials := make([][]Point, len(chunks))

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			partials[i] = runTrials(grid, start, chunk)
			return nil
		})
	}
	_ = g.Wait()

	var found []Point
	for _, part := range partials {
		found = append(found, part...)
	}
	sortPoints(found)

	span.SetAttributes(
		attribute.Int("candidates", len(candidates)),
		attribute.Int("obstructions", len(found)),
	)
	logging.With(cfg.logger.Info(),
		logging.RunID(runID),
		logging.Grid(grid.Rows, grid.Columns),
		logging.Count("candidates", len(candidates)),
		logging.Count("obstructions", len(found)),
		logging.Count("workers", cfg.workers),
		logging.Duration(time.Since(began)),
	).Msg("obstruction search finished")
	return found
}

// runTrials simulates each candidate on its own variant grid. start is passed
// by value, so every trial begins from the original state.
func runTrials(grid *Grid, start Guard, candidates []Point) []Point {
	var found []Point
	for _, c := range candidates {
		if Simulate(grid.WithObstacle(c), start).Loops() {
			found = append(found, c)
		}
	}
	return found
}

// partition splits ps into at most n contiguous chunks of near-equal size.
func partition(ps []Point, n int) [][]Point {
	if len(ps) == 0 {
		return nil
	}
	n = min(n, len(ps))
	size := (len(ps) + n - 1) / n
	chunks := make([][]Point, 0, n)
	for lo := 0; lo < len(ps); lo += size {
		chunks = append(chunks, ps[lo:min(lo+size, len(ps))])
	}
	return chunks
}

func simulateTraced(ctx context.Context, grid *Grid, start Guard) Outcome {
	_, span := otel.Tracer(tracerName).Start(ctx, "patrol.simulate")
	defer span.End()

	out := Simulate(grid, start)
	span.SetAttributes(
		attribute.String("status", string(out.Status)),
		attribute.Int("steps", out.Steps),
		attribute.Int("distinct", out.Itinerary.Distinct()),
	)
	return out
}
