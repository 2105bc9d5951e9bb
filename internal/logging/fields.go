package logging

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// With applies fields to an event in order.
func With(e *bolt.Event, fields ...Field) *bolt.Event {
	for _, f := range fields {
		e = f(e)
	}
	return e
}

// RunID adds a run ID field.
func RunID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("run_id", id)
	}
}

// Point adds a cell as "x,y" under key.
func Point(key string, x, y int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, fmt.Sprintf("%d,%d", x, y))
	}
}

// Direction adds the guard's facing.
func Direction(d fmt.Stringer) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("facing", d.String())
	}
}

// Status adds a simulation status.
func Status(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("status", s)
	}
}

// Count adds an integer counter under key.
func Count(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Grid adds grid dimensions.
func Grid(rows, columns int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("rows", rows).Int("columns", columns)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}
