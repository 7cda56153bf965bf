// Package dsk is the runtime support core for the DSK language toolchain.
//
// Compiled programs call into this module to lay out, serialize and allocate
// their values. The module has two halves that share one error model:
//
//	dsk/                 Root package with Memory and Allocator interfaces
//	├── abi/             Buffers, seekers, primitive codec, type descriptors
//	├── heap/            Compacting object heap and term heap
//	├── runtime/         Runtime context: heaps, lifecycle, fatal gate
//	├── wasmmem/         Buffer transfer into wazero guest memory
//	├── errors/          Structured error types
//	└── cmd/dsrt/        Descriptor tool and interactive heap inspector
//
// # Quick Start
//
// Pack a value whose shape is a descriptor:
//
//	arena := abi.NewArena()
//	point := arena.Struct(abi.Int32, abi.Int32)
//	size, _ := abi.SizeOf(arena, point) // 8
//
//	s := abi.NewSeeker(abi.MustAllocate(size))
//	_ = s.PackInt32(3)
//	_ = s.PackInt32(4)
//
// Allocate tracked objects:
//
//	rt := runtime.New()
//	defer rt.Deinit()
//
//	obj, _ := rt.Simple().Allocate(heap.Single(4))
//	binary.LittleEndian.PutUint32(obj.Obj, 42)
//	_ = rt.Simple().Delete(obj)
//
// # Wire Format
//
// All packed data is little-endian regardless of host byte order. Struct
// fields are concatenated in declared order with no padding; array elements
// are contiguous. Size values use the host word width.
//
// # Thread Safety
//
// Nothing in this module is safe for concurrent use. A Runtime and everything
// it owns belong to a single goroutine; use separate runtimes for isolation.
package dsk
