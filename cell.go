package projection

import (
	"go.uber.org/zap"

	"github.com/wippyai/projection/errors"
	"github.com/wippyai/projection/internal/guard"
)

// EventType identifies a cell lifecycle notification.
type EventType uint8

const (
	EventMoved EventType = iota
	EventRestored
	EventPoisoned
)

func (t EventType) String() string {
	switch t {
	case EventMoved:
		return "moved"
	case EventRestored:
		return "restored"
	case EventPoisoned:
		return "poisoned"
	default:
		return "unknown"
	}
}

// Event represents a cell lifecycle event.
type Event struct {
	Err  error
	Type EventType
}

// Observer receives notifications about cell lifecycle events.
type Observer interface {
	OnCellEvent(Event)
}

// Cell is a location that tracks whether it currently holds a value.
// It is vacant during its own projection window and after a failed rebuild.
//
// A Cell must not be copied after first use.
type Cell[T any] struct {
	value     T
	observers []Observer
	vacant    bool
	open      bool
}

// NewCell creates a cell holding v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get returns the stored value. It panics with an *errors.Error of
// KindNotInitialized if the cell is vacant.
func (c *Cell[T]) Get() T {
	v, err := c.Load()
	if err != nil {
		panic(err)
	}
	return v
}

// Load returns the stored value, or an error if the cell is vacant.
func (c *Cell[T]) Load() (T, error) {
	if c.vacant {
		var zero T
		return zero, errors.NotInitialized(errors.PhaseAccess, "cell of "+guard.TypeName[T]())
	}
	return c.value, nil
}

// Set stores v and marks the cell live. It panics inside the cell's own
// projection window.
func (c *Cell[T]) Set(v T) {
	if c.vacant && c.open {
		panic(errors.NotInitialized(errors.PhaseAccess, "cell of "+guard.TypeName[T]()))
	}
	c.value = v
	c.vacant = false
}

// Vacant reports whether the cell is moved-from.
func (c *Cell[T]) Vacant() bool {
	return c.vacant
}

// Subscribe adds an observer for lifecycle events.
func (c *Cell[T]) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Unsubscribe removes an observer.
func (c *Cell[T]) Unsubscribe(o Observer) {
	for i, obs := range c.observers {
		if obs == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

func (c *Cell[T]) notify(e Event) {
	for _, o := range c.observers {
		o.OnCellEvent(e)
	}
}

// ModifyCell is With for a Cell. The cell is vacant while body runs, so a
// Get, Set, or nested ModifyCell on the same cell from inside body panics.
// When the rebuild fails, or the transform panics, the cell stays vacant
// until the next Set.
func ModifyCell[T, U, R any](c *Cell[T], p Projection[T, U], body func(*U) (R, error)) (R, error) {
	if c.vacant {
		panic(errors.NotInitialized(errors.PhaseProject, "cell of "+guard.TypeName[T]()))
	}

	var rebuildErr error
	moved, restored := false, false
	tracked := Funcs[T, U]{
		To: func(v T) U {
			moved = true
			return p.Project(v)
		},
		From: func(u U) (T, error) {
			v, err := guard.Call(func() (T, error) { return p.Rebuild(u) })
			if err != nil {
				rebuildErr = err
				return v, err
			}
			restored = true
			return v, nil
		},
	}

	c.vacant = true
	c.open = true
	defer func() {
		c.open = false
		switch {
		case !moved:
			// an EventMoved observer panicked before the value left the cell
			c.vacant = false
		case restored:
			c.vacant = false
			c.notify(Event{Type: EventRestored})
			Logger().Debug("cell projection closed", zap.String("type", guard.TypeName[T]()))
		default:
			c.notify(Event{Type: EventPoisoned, Err: rebuildErr})
			Logger().Warn("cell left vacant after projection",
				zap.String("type", guard.TypeName[T]()),
				zap.Error(rebuildErr))
		}
	}()

	c.notify(Event{Type: EventMoved})
	Logger().Debug("cell projection opened", zap.String("type", guard.TypeName[T]()))

	return With[T, U, R](&c.value, tracked, body)
}
