package cow

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

var duplications atomic.Int64

// Duplications returns how many times any buffer storage has been copied
// because it was shared at the moment of mutation.
func Duplications() int64 {
	return duplications.Load()
}

type storage[E any] struct {
	elems []E
	refs  int
}

// Buffer is a handle to copy-on-write storage. The zero Buffer is empty
// and has no storage.
type Buffer[E any] struct {
	s *storage[E]
}

// New creates a buffer holding a copy of elems with a single owner.
func New[E any](elems ...E) Buffer[E] {
	buf := make([]E, len(elems))
	copy(buf, elems)
	return Buffer[E]{s: &storage[E]{elems: buf, refs: 1}}
}

// Share returns a new owner of the same storage.
func (b Buffer[E]) Share() Buffer[E] {
	if b.s != nil {
		b.s.refs++
	}
	return b
}

// Release gives up this handle's ownership and empties the handle.
func (b *Buffer[E]) Release() {
	if b.s == nil {
		return
	}
	b.s.refs--
	b.s = nil
}

// Len returns the number of elements.
func (b Buffer[E]) Len() int {
	if b.s == nil {
		return 0
	}
	return len(b.s.elems)
}

// At returns the element at index i. It panics if i is out of range.
func (b Buffer[E]) At(i int) E {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("cow: index %d out of range (length %d)", i, b.Len()))
	}
	return b.s.elems[i]
}

// Values returns a copy of the elements.
func (b Buffer[E]) Values() []E {
	out := make([]E, b.Len())
	if b.s != nil {
		copy(out, b.s.elems)
	}
	return out
}

// Unique reports whether this handle is the only owner of its storage.
func (b Buffer[E]) Unique() bool {
	return b.s == nil || b.s.refs == 1
}

// Refs returns the number of owners of the storage.
func (b Buffer[E]) Refs() int {
	if b.s == nil {
		return 0
	}
	return b.s.refs
}

// BaseAddress returns the address of the element storage, or 0 when the
// buffer has no elements.
func (b Buffer[E]) BaseAddress() uintptr {
	if b.Len() == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.s.elems)))
}

// Set stores v at index i, duplicating shared storage first.
func (b *Buffer[E]) Set(i int, v E) {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("cow: index %d out of range (length %d)", i, b.Len()))
	}
	b.makeUnique()
	b.s.elems[i] = v
}

// Update replaces the element at index i with fn applied to it.
func (b *Buffer[E]) Update(i int, fn func(E) E) {
	b.Set(i, fn(b.At(i)))
}

// Append adds elements to the end, duplicating shared storage first.
func (b *Buffer[E]) Append(elems ...E) {
	b.makeUnique()
	b.s.elems = append(b.s.elems, elems...)
}

func (b *Buffer[E]) makeUnique() {
	if b.s == nil {
		b.s = &storage[E]{refs: 1}
		return
	}
	if b.s.refs == 1 {
		return
	}

	dup := make([]E, len(b.s.elems), cap(b.s.elems))
	copy(dup, b.s.elems)
	b.s.refs--
	b.s = &storage[E]{elems: dup, refs: 1}
	duplications.Add(1)
}

// String formats the elements like a slice.
func (b Buffer[E]) String() string {
	if b.s == nil {
		return "[]"
	}
	return fmt.Sprint(b.s.elems)
}

// Equal reports whether a and b hold the same elements.
func Equal[E comparable](a, b Buffer[E]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.s.elems[i] != b.s.elems[i] {
			return false
		}
	}
	return true
}
