// Package linmem applies mutable projections to values stored in
// WebAssembly linear memory.
//
// A Slot is a fixed-size region of a Memory holding one value encoded by a
// Codec. Projecting a slot decodes its value, overwrites the region with
// PoisonByte, and marks the slot moved-from until its Hole is initialized.
// Any Load in between fails, and anyone inspecting the raw bytes sees the
// poison pattern rather than a stale value.
//
// # Memory
//
// Memory is the byte-level access interface; WrapMemory adapts a wazero
// api.Memory to it. Sandbox instantiates a minimal module that exports a
// memory, for hosts that need a standalone linear memory:
//
//	sb, err := linmem.NewSandbox(ctx, 1)
//	if err != nil {
//	    return err
//	}
//	defer sb.Close(ctx)
//
//	slot, err := linmem.NewSlot(sb.Memory(), 16, linmem.Uint32)
//	err = linmem.Modify(slot, decimal, func(s *string) error {
//	    *s += "0"
//	    return nil
//	})
//
// # Rebuild Failures
//
// As in the projection package, a failed rebuild writes the zero value, so
// the slot is never left holding poison after With or Modify return.
package linmem
