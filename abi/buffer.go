package abi

import (
	"github.com/TyedeeGit/dsk"
	"github.com/TyedeeGit/dsk/internal/arith"
	"github.com/TyedeeGit/dsk/errors"
)

// DefaultMaxAlloc is the largest block Allocate hands out.
const DefaultMaxAlloc = arith.MaxAlloc

var _ dsk.Memory = (*Buffer)(nil)

// Buffer is an owned, fixed-size byte region. A Buffer has data exactly when
// its size was successfully allocated; the zero Buffer and a freed Buffer
// have none.
type Buffer struct {
	data []byte
}

// Allocate returns a zeroed buffer of size bytes. On failure it returns an
// empty buffer alongside the error.
func Allocate(size uint64) (*Buffer, error) {
	return AllocateWithLimit(size, DefaultMaxAlloc)
}

// AllocateWithLimit is Allocate with an explicit size cap.
func AllocateWithLimit(size, limit uint64) (*Buffer, error) {
	if size > limit {
		return &Buffer{}, errors.OutOfMemory(errors.PhaseAlloc, size, limit)
	}
	return &Buffer{data: make([]byte, size)}, nil
}

// MustAllocate is Allocate that panics on failure.
func MustAllocate(size uint64) *Buffer {
	b, err := Allocate(size)
	if err != nil {
		panic(err)
	}
	return b
}

// Wrap adopts p as the buffer's storage without copying. The buffer never
// reaches past len(p), even when p has spare capacity.
func Wrap(p []byte) *Buffer {
	if p == nil {
		p = []byte{}
	}
	return &Buffer{data: p[:len(p):len(p)]}
}

func (b *Buffer) Size() uint64 {
	if b == nil {
		return 0
	}
	return uint64(len(b.data))
}

// Bytes returns the underlying storage.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// IsNil reports whether the buffer has no data.
func (b *Buffer) IsNil() bool {
	return b == nil || b.data == nil
}

// Reallocate changes the size. The common prefix is kept and any new bytes
// are zero. Growing always moves to fresh storage, so a wrapped slice is
// never written beyond its original length.
func (b *Buffer) Reallocate(size uint64) error {
	if b == nil {
		return errors.NullPointer(errors.PhaseAlloc, "buffer")
	}
	if size > DefaultMaxAlloc {
		return errors.OutOfMemory(errors.PhaseAlloc, size, DefaultMaxAlloc)
	}
	if b.data != nil && size <= uint64(len(b.data)) {
		b.data = b.data[:size:size]
		return nil
	}
	data := make([]byte, size)
	copy(data, b.data)
	b.data = data
	return nil
}

// Free releases the storage. Freeing twice is harmless.
func (b *Buffer) Free() {
	if b != nil {
		b.data = nil
	}
}

// Copy writes src[srcOffset:] into dest starting at destOffset.
func Copy(dest, src *Buffer, destOffset, srcOffset uint64) error {
	if dest.IsNil() {
		return errors.NullPointer(errors.PhaseSeek, "destination buffer")
	}
	if src.IsNil() {
		return errors.NullPointer(errors.PhaseSeek, "source buffer")
	}
	if srcOffset > src.Size() {
		return errors.BadPosition(errors.PhaseSeek, srcOffset, src.Size())
	}
	span := src.Size() - srcOffset
	if destOffset > dest.Size() || span > dest.Size()-destOffset {
		return errors.New(errors.PhaseSeek, errors.KindBadSizeArg).
			Value(span).
			Detail("copy of %d bytes at %d overflows destination of %d", span, destOffset, dest.Size()).
			Build()
	}
	copy(dest.data[destOffset:], src.data[srcOffset:])
	return nil
}

func (b *Buffer) span(offset, length uint32) ([]byte, error) {
	if b.IsNil() {
		return nil, errors.NullPointer(errors.PhaseSeek, "buffer")
	}
	end := uint64(offset) + uint64(length)
	if end > b.Size() {
		return nil, errors.New(errors.PhaseSeek, errors.KindBadSizeArg).
			Value(end).
			Detail("access [%d, %d) outside buffer of %d", offset, end, b.Size()).
			Build()
	}
	return b.data[offset:end], nil
}

// Read returns a view of length bytes at offset.
func (b *Buffer) Read(offset, length uint32) ([]byte, error) {
	return b.span(offset, length)
}

func (b *Buffer) Write(offset uint32, data []byte) error {
	p, err := b.span(offset, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(p, data)
	return nil
}
