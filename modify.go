package projection

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/projection/errors"
	"github.com/wippyai/projection/internal/guard"
)

// Projection converts a stored value of type T into a mutable view of type
// U and back. Project receives the stored value by ownership: it may move
// reference-typed fields into the view without sharing them.
type Projection[T, U any] interface {
	Project(T) U
	Rebuild(U) (T, error)
}

// Funcs adapts a pair of functions to the Projection interface.
type Funcs[T, U any] struct {
	To   func(T) U
	From func(U) (T, error)
}

// Project implements Projection.
func (f Funcs[T, U]) Project(v T) U {
	return f.To(v)
}

// Rebuild implements Projection.
func (f Funcs[T, U]) Rebuild(u U) (T, error) {
	return f.From(u)
}

// With projects the value at loc through p, calls body with the view, and
// writes the rebuilt value back into loc before returning. The write-back
// runs exactly once on every exit path of body, including panics.
//
// If Rebuild fails, loc is set to the zero value of T and the returned error
// includes an *errors.Error with PhaseRebuild, joined with body's error when
// body also failed. While body is panicking a rebuild failure is only logged
// and the panic continues.
func With[T, U, R any](loc *T, p Projection[T, U], body func(*U) (R, error)) (result R, err error) {
	hole, view := Project(loc, p.Project)

	returned := false
	defer func() {
		v, rerr := guard.Call(func() (T, error) { return p.Rebuild(view) })
		if rerr == nil {
			hole.Initialize(v)
			return
		}

		var zero T
		hole.Initialize(zero)
		failure := errors.RebuildFailed(guard.TypeName[T](), guard.TypeName[U](), rerr)
		if !returned {
			Logger().Warn("projection rebuild failed while unwinding",
				zap.String("type", failure.GoType),
				zap.String("view", failure.ViewType),
				zap.Error(rerr))
			return
		}
		if err != nil {
			err = stderrors.Join(err, failure)
		} else {
			err = failure
		}
	}()

	result, err = body(&view)
	returned = true
	return result, err
}

// Modify is With for bodies without a result.
func Modify[T, U any](loc *T, p Projection[T, U], body func(*U) error) error {
	_, err := With(loc, p, func(u *U) (struct{}, error) {
		return struct{}{}, body(u)
	})
	return err
}
