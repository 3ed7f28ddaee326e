package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which step of a projection produced the error
type Phase string

const (
	PhaseProject   Phase = "project"   // moving the value out of its location
	PhaseTransform Phase = "transform" // stored value to view
	PhaseBody      Phase = "body"      // caller mutation of the view
	PhaseRebuild   Phase = "rebuild"   // view back to stored value
	PhaseAccess    Phase = "access"    // reads and writes of a location
	PhaseMemory    Phase = "memory"    // linear memory operations
	PhaseConfig    Phase = "config"    // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindNilPointer         Kind = "nil_pointer"
	KindNotInitialized     Kind = "not_initialized"
	KindAlreadyInitialized Kind = "already_initialized"
	KindTransformFailed    Kind = "transform_failed"
	KindRebuildFailed      Kind = "rebuild_failed"
	KindInvalidData        Kind = "invalid_data"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindInvalidInput       Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	ViewType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ViewType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ViewType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", view type ")
			b.WriteString(e.ViewType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("view type ")
			b.WriteString(e.ViewType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ViewType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the location path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name of the stored value
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ViewType sets the type name of the projected view
func (b *Builder) ViewType(t string) *Builder {
	b.err.ViewType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// NotInitialized creates an error for a read of a moved-from location
func NotInitialized(phase Phase, location string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s is moved-from", location),
	}
}

// AlreadyInitialized creates an error for a second write-back through a hole
func AlreadyInitialized(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAlreadyInitialized,
		GoType: goType,
		Detail: "hole initialized more than once",
	}
}

// TransformFailed creates an error for a transform that panicked after the
// location was destroyed. The recovered panic value is kept in Value.
func TransformFailed(goType, viewType string, recovered any) *Error {
	e := &Error{
		Phase:    PhaseTransform,
		Kind:     KindTransformFailed,
		GoType:   goType,
		ViewType: viewType,
		Detail:   fmt.Sprintf("transform panicked: %v", recovered),
		Value:    recovered,
	}
	if err, ok := recovered.(error); ok {
		e.Cause = err
	}
	return e
}

// RebuildFailed creates an error for a view that could not be folded back
func RebuildFailed(goType, viewType string, cause error) *Error {
	return &Error{
		Phase:    PhaseRebuild,
		Kind:     KindRebuildFailed,
		GoType:   goType,
		ViewType: viewType,
		Detail:   "location reset to zero value",
		Cause:    cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
