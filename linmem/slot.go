package linmem

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/projection"
	"github.com/wippyai/projection/errors"
	"github.com/wippyai/projection/internal/guard"
)

// PoisonByte fills a slot's bytes while its value is moved out.
const PoisonByte = 0xDE

// Slot is one value of type T stored at a fixed offset in linear memory.
// A Slot is not safe for concurrent use, and nothing else may write its
// region while a projection is open.
type Slot[T any] struct {
	mem    Memory
	codec  Codec[T]
	offset uint32
	moved  bool
}

// NewSlot creates a slot at offset. When mem implements MemorySizer the
// region is bounds-checked up front.
func NewSlot[T any](mem Memory, offset uint32, codec Codec[T]) (*Slot[T], error) {
	if mem == nil {
		return nil, errors.NilPointer(errors.PhaseMemory, []string{"memory"}, "linmem.Memory")
	}
	if codec == nil {
		return nil, errors.NilPointer(errors.PhaseMemory, []string{"codec"}, "linmem.Codec")
	}
	if sizer, ok := mem.(MemorySizer); ok {
		end := uint64(offset) + uint64(codec.Size())
		if end > uint64(sizer.Size()) {
			return nil, errors.OutOfBounds(errors.PhaseMemory, []string{"slot", strconv.FormatUint(uint64(offset), 10)},
				int(end), int(sizer.Size()))
		}
	}
	return &Slot[T]{mem: mem, codec: codec, offset: offset}, nil
}

// Offset returns the slot's address in linear memory.
func (s *Slot[T]) Offset() uint32 {
	return s.offset
}

// Moved reports whether the slot's value is currently moved out.
func (s *Slot[T]) Moved() bool {
	return s.moved
}

// Load decodes the stored value. It fails while the slot is moved-from.
func (s *Slot[T]) Load() (T, error) {
	var zero T
	if s.moved {
		return zero, s.movedError()
	}
	data, err := s.mem.Read(s.offset, s.codec.Size())
	if err != nil {
		return zero, err
	}
	return s.codec.Decode(data)
}

// Store encodes v into the slot. It fails while the slot is moved-from;
// the slot's Hole is the only way to refill it.
func (s *Slot[T]) Store(v T) error {
	if s.moved {
		return s.movedError()
	}
	return s.write(v)
}

func (s *Slot[T]) write(v T) error {
	buf := make([]byte, s.codec.Size())
	s.codec.Encode(v, buf)
	return s.mem.Write(s.offset, buf)
}

func (s *Slot[T]) poison() error {
	buf := make([]byte, s.codec.Size())
	for i := range buf {
		buf[i] = PoisonByte
	}
	return s.mem.Write(s.offset, buf)
}

func (s *Slot[T]) movedError() error {
	return errors.NotInitialized(errors.PhaseAccess, fmt.Sprintf("slot at offset %d", s.offset))
}

// Hole refills a slot whose value was moved out by Project.
type Hole[T any] struct {
	slot *Slot[T]
	done bool
}

// Initialize encodes v into the slot and makes it readable again. It
// fails if the hole was already initialized.
func (h *Hole[T]) Initialize(v T) error {
	if h.done {
		return errors.AlreadyInitialized(errors.PhaseRebuild, guard.TypeName[T]())
	}
	if err := h.slot.write(v); err != nil {
		return err
	}
	h.slot.moved = false
	h.done = true
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (h *Hole[T]) Initialized() bool {
	return h.done
}

// Project decodes the slot's value, poisons its bytes, and returns a hole
// for the slot together with transform applied to the value.
//
// A panicking transform leaves the slot poisoned and moved-from; Project
// then panics with an *errors.Error of KindTransformFailed.
func Project[T, U any](s *Slot[T], transform func(T) U) (*Hole[T], U, error) {
	var zero U
	v, err := s.Load()
	if err != nil {
		return nil, zero, err
	}
	if err := s.poison(); err != nil {
		return nil, zero, err
	}
	s.moved = true

	return &Hole[T]{slot: s}, apply(s, v, transform), nil
}

func apply[T, U any](s *Slot[T], v T, transform func(T) U) U {
	defer func() {
		if r := recover(); r != nil {
			err := errors.TransformFailed(guard.TypeName[T](), guard.TypeName[U](), r)
			Logger().Error("slot transform panicked after the value was moved out",
				zap.Uint32("offset", s.offset),
				zap.String("type", err.GoType),
				zap.Any("panic", r))
			panic(err)
		}
	}()
	return transform(v)
}

// With projects the slot through p, calls body with the view, and writes
// the rebuilt value back before returning, on every exit path of body.
// A failed rebuild stores the zero value of T and is reported like
// projection.With does.
func With[T, U, R any](s *Slot[T], p projection.Projection[T, U], body func(*U) (R, error)) (result R, err error) {
	hole, view, err := Project(s, p.Project)
	if err != nil {
		return result, err
	}

	returned := false
	defer func() {
		var failure error
		v, rerr := guard.Call(func() (T, error) { return p.Rebuild(view) })
		if rerr != nil {
			var zero T
			v = zero
			failure = errors.RebuildFailed(guard.TypeName[T](), guard.TypeName[U](), rerr)
		}
		if werr := hole.Initialize(v); werr != nil {
			failure = stderrors.Join(failure, werr)
		}
		if failure == nil {
			return
		}
		if !returned {
			Logger().Warn("slot write-back failed while unwinding",
				zap.Uint32("offset", s.offset),
				zap.Error(failure))
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
func Modify[T, U any](s *Slot[T], p projection.Projection[T, U], body func(*U) error) error {
	_, err := With(s, p, func(u *U) (struct{}, error) {
		return struct{}{}, body(u)
	})
	return err
}

