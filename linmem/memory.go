package linmem

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/projection/errors"
)

// Memory is byte-level access to WASM linear memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of WASM linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// WrapMemory wraps a wazero api.Memory to implement Memory and MemorySizer.
func WrapMemory(mem api.Memory) Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// Wrapper adapts wazero api.Memory to the Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// Read reads bytes from memory. The result aliases linear memory and is
// only valid until the next write or grow.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Value(offset).
			Detail("read out of bounds: offset=%d, length=%d", offset, length).
			Build()
	}
	return data, nil
}

// Write writes bytes to memory.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return errors.New(errors.PhaseMemory, errors.KindOutOfBounds).
			Value(offset).
			Detail("write out of bounds: offset=%d, length=%d", offset, len(data)).
			Build()
	}
	return nil
}
