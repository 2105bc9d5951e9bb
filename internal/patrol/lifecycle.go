package patrol

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Status is the state of one simulation run.
type Status string

const (
	Walking Status = "walking"
	Exited  Status = "exited"
	Looping Status = "looping"
)

// Done reports whether s is terminal.
func (s Status) Done() bool {
	return s == Exited || s == Looping
}

const (
	stateWalking statekit.StateID = statekit.StateID(Walking)
	stateExited  statekit.StateID = statekit.StateID(Exited)
	stateLooping statekit.StateID = statekit.StateID(Looping)

	eventExit statekit.EventType = "EXIT"
	eventLoop statekit.EventType = "LOOP"
)

// walkContext is the machine context: how many steps the run took when it
// finished.
type walkContext struct {
	Steps int
}

// stepsPayload travels with the terminal event.
type stepsPayload struct {
	Steps int
}

func recordSteps(ctx **walkContext, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	if p, ok := event.Payload.(stepsPayload); ok {
		(*ctx).Steps = p.Steps
	}
}

func newLifecycleMachine() (*statekit.MachineConfig[*walkContext], error) {
	return statekit.NewMachine[*walkContext]("patrol").
		WithInitial(stateWalking).
		WithContext(&walkContext{}).
		WithAction("recordSteps", recordSteps).
		State(stateWalking).
			On(eventExit).Target(stateExited).Do("recordSteps").
			On(eventLoop).Target(stateLooping).Do("recordSteps").
			Done().
		State(stateExited).
			Final().
			Done().
		State(stateLooping).
			Final().
			Done().
		Build()
}

var lifecycleMachine = mustLifecycleMachine()

func mustLifecycleMachine() *statekit.MachineConfig[*walkContext] {
	m, err := newLifecycleMachine()
	if err != nil {
		panic(fmt.Sprintf("patrol: build lifecycle machine: %v", err))
	}
	return m
}

// lifecycle tracks Walking -> Exited | Looping for a single run. The current
// status is cached so the stepping loop does not query the interpreter.
type lifecycle struct {
	interp  *statekit.Interpreter[*walkContext]
	ctx     *walkContext
	current Status
}

func newLifecycle() *lifecycle {
	ctx := &walkContext{}
	interp := statekit.NewInterpreter(lifecycleMachine)
	// every run gets its own context, the machine's default is shared
	interp.UpdateContext(func(c **walkContext) {
		*c = ctx
	})
	interp.Start()
	return &lifecycle{interp: interp, ctx: ctx, current: Status(interp.State().Value)}
}

func (l *lifecycle) finish(event statekit.EventType, steps int) {
	l.interp.Send(statekit.Event{Type: event, Payload: stepsPayload{Steps: steps}})
	l.current = Status(l.interp.State().Value)
	if !l.interp.Done() {
		panic(fmt.Sprintf("patrol: %s did not finish the run (state %s)", event, l.current))
	}
}
