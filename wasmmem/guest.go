package wasmmem

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/TyedeeGit/dsk"
	"github.com/TyedeeGit/dsk/errors"
)

// Export names a guest must provide for Bind.
const (
	MemoryExport  = "memory"
	ReallocExport = "cabi_realloc"
)

var (
	_ dsk.Memory      = (*Memory)(nil)
	_ dsk.MemorySizer = (*Memory)(nil)
	_ dsk.Allocator   = (*Realloc)(nil)
)

// Bind returns the linear memory and allocator exported by mod.
func Bind(ctx context.Context, mod api.Module) (*Memory, *Realloc, error) {
	if mod == nil {
		return nil, nil, errors.NullPointer(errors.PhaseGuest, "module")
	}
	mem := NewMemory(mod.ExportedMemory(MemoryExport))
	if mem == nil {
		return nil, nil, errors.Unsupported(errors.PhaseGuest, "module exports no "+MemoryExport)
	}
	alloc := NewRealloc(ctx, mod.ExportedFunction(ReallocExport))
	if alloc == nil {
		return nil, nil, errors.Unsupported(errors.PhaseGuest, "module exports no "+ReallocExport)
	}
	return mem, alloc, nil
}

// Memory is guest linear memory as a dsk.Memory. Views returned by Read
// are invalidated when the guest grows its memory.
type Memory struct {
	mem api.Memory
}

// NewMemory returns nil for a nil mem.
func NewMemory(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{mem: mem}
}

func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.outOfRange(offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return m.outOfRange(offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) outOfRange(offset, length uint32) error {
	return errors.New(errors.PhaseGuest, errors.KindBadSizeArg).
		Value(offset).
		Detail("guest span [%d, %d) outside memory of %d bytes", offset, uint64(offset)+uint64(length), m.mem.Size()).
		Build()
}

// Realloc allocates guest memory through the canonical ABI realloc
// export: realloc(ptr, old_size, align, new_size) -> ptr.
type Realloc struct {
	ctx context.Context
	fn  api.Function
}

// NewRealloc returns nil for a nil fn.
func NewRealloc(ctx context.Context, fn api.Function) *Realloc {
	if fn == nil {
		return nil
	}
	return &Realloc{ctx: ctx, fn: fn}
}

// Alloc fails with out_of_memory when the guest traps, returns nothing,
// or returns 0 for a non-empty request.
func (r *Realloc) Alloc(size, align uint32) (uint32, error) {
	results, err := r.fn.Call(r.ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseGuest, errors.KindOutOfMemory, err, ReallocExport+" trapped")
	}
	if len(results) == 0 {
		return 0, errors.New(errors.PhaseGuest, errors.KindOutOfMemory).
			Detail("%s returned no result", ReallocExport).
			Build()
	}
	ptr := api.DecodeU32(results[0])
	if ptr == 0 && size > 0 {
		return 0, errors.OutOfMemory(errors.PhaseGuest, uint64(size), 0)
	}
	return ptr, nil
}

// Free shrinks the block at ptr to zero bytes. Guest errors are ignored.
func (r *Realloc) Free(ptr, size, align uint32) {
	_, _ = r.fn.Call(r.ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
