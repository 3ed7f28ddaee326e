package projection

import (
	"go.uber.org/zap"

	"github.com/wippyai/projection/errors"
	"github.com/wippyai/projection/internal/guard"
)

// Poisoner is implemented by location types that want their moved-from
// state to carry a recognizable bit pattern. Project calls Poison on the
// location right after moving its value out.
type Poisoner interface {
	Poison()
}

// Hole is the handle to a location whose value was moved out by Project.
// It refers to the same memory as the original location but never exposes
// it; the only operation is a single Initialize.
type Hole[T any] struct {
	dst  *T
	done bool
}

// Initialize writes v into the location. It panics if the hole was
// already initialized.
func (h *Hole[T]) Initialize(v T) {
	if h.done {
		panic(errors.AlreadyInitialized(errors.PhaseRebuild, guard.TypeName[T]()))
	}
	*h.dst = v
	h.done = true
}

// Initialized reports whether Initialize has been called.
func (h *Hole[T]) Initialized() bool {
	return h.done
}

// Refers reports whether the hole designates the location p.
func (h *Hole[T]) Refers(p *T) bool {
	return h.dst == p
}

// Project moves the value out of src, leaving the zero value of T in its
// place, and returns a hole for src together with transform applied to the
// moved value.
//
// The caller must hold exclusive access to src until the hole is
// initialized, must not read src in between, and must initialize the hole
// exactly once. Prefer With or Modify, which do this on every exit path.
//
// The location is destroyed before transform runs. A panicking transform
// leaves nothing to restore, so Project panics with an *errors.Error of
// KindTransformFailed and src keeps the zero value.
func Project[T, U any](src *T, transform func(T) U) (*Hole[T], U) {
	if src == nil {
		panic(errors.NilPointer(errors.PhaseProject, nil, guard.TypeName[*T]()))
	}

	v := *src
	var zero T
	*src = zero
	if p, ok := any(src).(Poisoner); ok {
		p.Poison()
	}

	return &Hole[T]{dst: src}, apply(v, transform)
}

func apply[T, U any](v T, transform func(T) U) U {
	defer func() {
		if r := recover(); r != nil {
			err := errors.TransformFailed(guard.TypeName[T](), guard.TypeName[U](), r)
			Logger().Error("projection transform panicked after the location was destroyed",
				zap.String("type", err.GoType),
				zap.String("view", err.ViewType),
				zap.Any("panic", r))
			panic(err)
		}
	}()
	return transform(v)
}
