// Package projection provides mutable projections of values without
// needless copy-on-write duplication.
//
// A mutable projection exposes a stored value temporarily as a differently
// shaped value, lets the caller mutate that view in place, and folds the
// result back into the original location. Reading the stored value through
// a non-consuming getter leaves a second owner of any shared backing storage
// alive while the view is mutated, which forces a copy. Project instead moves
// the value out of its location, so the view is the only owner.
//
// # Primitive
//
// Project destroys the value at a location and returns a write-once Hole
// together with the transformed view:
//
//	hole, view := projection.Project(&x, toView)
//	mutate(&view)
//	hole.Initialize(fromView(view))
//
// Between Project and Initialize the location holds the zero value of its
// type as a placeholder. The caller must hold exclusive access to the
// location for the whole window and must initialize the hole exactly once
// on every exit path.
//
// # Scoped Operation
//
// With and Modify wrap the primitive in a single deferred write-back, so the
// location is restored on normal return, returned error, panic, and
// runtime.Goexit:
//
//	err := projection.Modify(&x, stringTagging, func(v *StringTagged) error {
//	    v.Tag += "3"
//	    return nil
//	})
//
// A Projection whose Rebuild fails resets the location to the zero value and
// the failure is reported as an *errors.Error with PhaseRebuild.
//
// # Cells
//
// Cell is a location that knows when it is moved-from. Reading a Cell inside
// its own projection window, or after a failed rebuild, panics instead of
// returning the placeholder. Observers receive lifecycle events.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Exclusive access to a
// location is a precondition, not something the package enforces.
package projection
