// Package wasmmem moves packed data between abi buffers and the linear
// memory of a wazero guest module.
//
// Bind picks up the guest's memory and cabi_realloc exports:
//
//	mem, alloc, err := wasmmem.Bind(ctx, mod)
//
//	ptr, err := wasmmem.Store(mem, alloc, buf, 8)
//	back, err := wasmmem.Load(mem, ptr, uint32(buf.Size()))
//
// StorePair and LoadPair go through a (ptr, len) slot instead, and
// NewSeeker unpacks in place without copying.
package wasmmem
