// Package errors provides structured error types for the projection library.
//
// Errors are categorized by Phase (which step of a projection failed) and Kind
// (error category). The Error type carries the location path, the Go type of
// the stored value, the projected view type, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRebuild, errors.KindRebuildFailed).
//		Path("record", "tag").
//		GoType("int").
//		ViewType("string").
//		Detail("tag %q is not an integer", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotInitialized(errors.PhaseAccess, "cell")
//	err := errors.OutOfBounds(errors.PhaseMemory, path, 70000, 65536)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
