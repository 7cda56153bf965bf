package wasmmem

import (
	"math"

	"github.com/TyedeeGit/dsk"
	"github.com/TyedeeGit/dsk/abi"
	"github.com/TyedeeGit/dsk/errors"
	"github.com/TyedeeGit/dsk/internal/arith"
)

// PairSize is the size of a packed (ptr, len) pair: two nat32.
const PairSize = 8

// Store allocates guest space for buf through alloc, copies buf in and
// returns the guest pointer. On a failed copy the space is freed again.
func Store(mem dsk.Memory, alloc dsk.Allocator, buf *abi.Buffer, align uint32) (uint32, error) {
	if buf.IsNil() {
		return 0, errors.NullPointer(errors.PhaseGuest, "buffer")
	}
	if !arith.FitsU32(buf.Size()) {
		return 0, errors.BadSize(errors.PhaseGuest, buf.Size(), math.MaxUint32)
	}
	size := uint32(buf.Size())

	ptr, err := alloc.Alloc(size, align)
	if err != nil {
		return 0, err
	}
	if err := mem.Write(ptr, buf.Bytes()); err != nil {
		alloc.Free(ptr, size, align)
		return 0, err
	}
	return ptr, nil
}

// Load copies size bytes at ptr out of guest memory into a new buffer.
func Load(mem dsk.Memory, ptr, size uint32) (*abi.Buffer, error) {
	data, err := mem.Read(ptr, size)
	if err != nil {
		return &abi.Buffer{}, err
	}
	out, err := abi.Allocate(uint64(size))
	if err != nil {
		return out, err
	}
	copy(out.Bytes(), data)
	return out, nil
}

// StorePair stores buf like Store and writes its (ptr, len) pair at slot,
// the way a canonical ABI return area holds a list.
func StorePair(mem dsk.Memory, alloc dsk.Allocator, buf *abi.Buffer, align, slot uint32) (uint32, error) {
	s, err := NewSeeker(mem, slot, PairSize)
	if err != nil {
		return 0, err
	}
	ptr, err := Store(mem, alloc, buf, align)
	if err != nil {
		return 0, err
	}
	if err := s.PackNat32(ptr); err != nil {
		alloc.Free(ptr, uint32(buf.Size()), align)
		return 0, err
	}
	if err := s.PackNat32(uint32(buf.Size())); err != nil {
		alloc.Free(ptr, uint32(buf.Size()), align)
		return 0, err
	}
	return ptr, nil
}

// LoadPair reads the (ptr, len) pair at slot and loads the span it names.
func LoadPair(mem dsk.Memory, slot uint32) (*abi.Buffer, error) {
	s, err := NewSeeker(mem, slot, PairSize)
	if err != nil {
		return &abi.Buffer{}, err
	}
	ptr, err := s.UnpackNat32()
	if err != nil {
		return &abi.Buffer{}, err
	}
	size, err := s.UnpackNat32()
	if err != nil {
		return &abi.Buffer{}, err
	}
	return Load(mem, ptr, size)
}

// NewSeeker returns a seeker over size bytes of guest memory at ptr.
// Packing through it writes the guest memory directly; resizing it moves
// the seeker to private storage and leaves the guest untouched. The seeker
// is only valid until the guest grows its memory.
func NewSeeker(mem dsk.Memory, ptr, size uint32, opts ...abi.SeekerOption) (*abi.Seeker, error) {
	view, err := mem.Read(ptr, size)
	if err != nil {
		return nil, err
	}
	return abi.NewSeeker(abi.Wrap(view), opts...), nil
}
