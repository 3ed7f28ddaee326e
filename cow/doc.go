// Package cow provides a reference-counted copy-on-write buffer.
//
// Go has no copy hooks, so ownership is explicit: Share creates another
// owner of the same storage and Release gives one up. Plain assignment of a
// Buffer moves the handle without changing the owner count. A mutation
// through a handle whose storage has more than one owner first duplicates
// the storage, and the handle moves to the copy:
//
//	a := cow.New(1, 2, 3)
//	b := a.Share()       // two owners
//	b.Set(0, 9)          // b duplicates; a is unchanged
//	a.BaseAddress() != b.BaseAddress()
//
// Buffer is the backing store whose duplication mutable projections avoid;
// BaseAddress and Duplications make that observable.
package cow
