package patrol

// Itinerary is every in-bounds position the guard stood on, in order,
// starting with its initial cell. A cell appears again each time the guard
// turns on it or walks back through it.
type Itinerary []Point

// Distinct is the number of different cells in the itinerary.
func (it Itinerary) Distinct() int {
	return len(it.Cells())
}

// Cells returns the distinct cells in order of first visit.
func (it Itinerary) Cells() []Point {
	seen := make(map[Point]struct{}, len(it))
	var out []Point
	for _, p := range it {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Outcome is the result of a finished simulation. Itinerary is only set when
// the guard exited.
type Outcome struct {
	Status    Status
	Itinerary Itinerary
	Steps     int
}

// Loops reports whether the guard would walk forever.
func (o Outcome) Loops() bool {
	return o.Status == Looping
}

// Simulator walks one guard across one grid.
type Simulator struct {
	grid      *Grid
	guard     Guard
	visited   map[Guard]struct{}
	itinerary Itinerary
	steps     int
	life      *lifecycle
}

// NewSimulator prepares a run from start. start is copied; the caller's
// value is never changed.
func NewSimulator(grid *Grid, start Guard) *Simulator {
	return &Simulator{
		grid:      grid,
		guard:     start,
		visited:   map[Guard]struct{}{start: {}},
		itinerary: Itinerary{start.Position},
		life:      newLifecycle(),
	}
}

// Guard is the current guard state.
func (s *Simulator) Guard() Guard {
	return s.guard
}

func (s *Simulator) Status() Status {
	return s.life.current
}

// Step runs one iteration: exit, turn or move, then the cycle check. A
// finished simulator does nothing and returns its final status.
func (s *Simulator) Step() Status {
	if s.life.current.Done() {
		return s.life.current
	}
	s.steps++

	ahead := s.guard.Ahead()
	if !s.grid.InBounds(ahead) {
		s.life.finish(eventExit, s.steps)
		return s.life.current
	}
	if s.grid.IsObstacle(ahead) {
		// one quarter turn only; the next step re-checks the new heading
		s.guard.Turn()
	} else {
		s.guard.Advance()
	}

	if _, seen := s.visited[s.guard]; seen {
		s.life.finish(eventLoop, s.steps)
		return s.life.current
	}
	s.visited[s.guard] = struct{}{}
	s.itinerary = append(s.itinerary, s.guard.Position)
	return s.life.current
}

// Run steps until the guard exits or repeats a state. Every Step either
// finishes or adds an unseen (position, facing) pair, so this takes at most
// StateBound(grid)+1 steps.
func (s *Simulator) Run() Outcome {
	for !s.Step().Done() {
	}
	out := Outcome{Status: s.life.current, Steps: s.life.ctx.Steps}
	if out.Status == Exited {
		out.Itinerary = s.itinerary
	}
	return out
}

// Simulate runs a fresh simulator to completion.
func Simulate(grid *Grid, start Guard) Outcome {
	return NewSimulator(grid, start).Run()
}
