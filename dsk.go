package dsk

// Memory is offset-addressed byte storage. abi.Buffer implements it for
// in-process data and wasmmem.Memory for guest linear memory. Typed values
// go through an abi.Seeker over a Read view.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of a Memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator hands out regions of a Memory.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
