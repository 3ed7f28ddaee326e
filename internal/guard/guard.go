// Package guard holds the panic and naming helpers shared by the root
// projection wrappers and the linear-memory wrappers.
package guard

import (
	"fmt"
	"reflect"
)

// Call runs fn and converts a panic into an error, so a caller can still
// reinitialize its location after a failed rebuild.
func Call[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("rebuild panicked: %v", r)
			}
		}
	}()
	return fn()
}

// TypeName returns the Go type name of T as used in error details.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
