package linmem

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/projection/errors"
)

// MaxPages is the largest memory a Sandbox can declare (4GiB).
const MaxPages = 65536

// Sandbox owns a wazero runtime with one module instance whose only
// content is an exported linear memory.
type Sandbox struct {
	runtime wazero.Runtime
	memory  Memory
}

// NewSandbox instantiates a module exporting a memory of the given size in
// 64KiB pages. The memory cannot grow past that size.
func NewSandbox(ctx context.Context, pages uint32) (*Sandbox, error) {
	if pages == 0 || pages > MaxPages {
		return nil, errors.InvalidInput(errors.PhaseMemory, "sandbox pages must be between 1 and 65536")
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithMemoryLimitPages(pages))

	compiled, err := rt.CompileModule(ctx, memoryModule(pages))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindInvalidData, err, "compile memory module")
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("linmem"))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseMemory, errors.KindInvalidData, err, "instantiate memory module")
	}

	return &Sandbox{
		runtime: rt,
		memory:  WrapMemory(mod.ExportedMemory("memory")),
	}, nil
}

// Memory returns the sandbox's linear memory.
func (s *Sandbox) Memory() Memory {
	return s.memory
}

// Close releases the module and the runtime.
func (s *Sandbox) Close(ctx context.Context) error {
	return s.runtime.Close(ctx)
}

// memoryModule encodes a core module with one memory of min pages,
// exported as "memory".
func memoryModule(pages uint32) []byte {
	limits := append([]byte{0x00}, uleb128(pages)...) // flags: min only
	memSection := append([]byte{0x01}, limits...)      // one memory

	out := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
	}
	out = append(out, 0x05)
	out = append(out, uleb128(uint32(len(memSection)))...)
	out = append(out, memSection...)
	out = append(out,
		0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
		0x06, 'm', 'e', 'm', 'o', 'r', 'y',
		0x02, 0x00, // kind: memory, index 0
	)
	return out
}

func uleb128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}
