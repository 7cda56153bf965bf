package abi

import (
	"encoding/binary"

	"github.com/TyedeeGit/dsk/abi/internal/endian"
	"github.com/TyedeeGit/dsk/errors"
)

// Seeker is a cursor over a Buffer. After every successful operation the
// position is within [0, Size]. A failed operation leaves the seeker as it
// was.
type Seeker struct {
	buf    *Buffer
	host   binary.ByteOrder
	pos    uint64
	little bool
}

// SeekerOption configures a Seeker.
type SeekerOption func(*Seeker)

// WithHostOrder makes the codec behave as if the host stored integers in
// the given order. The wire format stays little-endian.
func WithHostOrder(order binary.ByteOrder) SeekerOption {
	return func(s *Seeker) {
		s.host = order
		s.little = endian.IsLittle(order)
	}
}

// NewSeeker returns a seeker at position 0. The seeker takes over buf for
// the operations that follow.
func NewSeeker(buf *Buffer, opts ...SeekerOption) *Seeker {
	s := &Seeker{
		buf:    buf,
		host:   endian.Host(),
		little: endian.HostLittle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Seeker) Buffer() *Buffer { return s.buf }

// Bytes returns the whole underlying buffer.
func (s *Seeker) Bytes() []byte { return s.buf.Bytes() }

func (s *Seeker) Position() uint64 { return s.pos }

// Remaining is the number of bytes between the position and the end.
func (s *Seeker) Remaining() uint64 {
	size := s.buf.Size()
	if s.pos >= size {
		return 0
	}
	return size - s.pos
}

// Read copies size bytes at the position into a new buffer and advances.
func (s *Seeker) Read(size uint64) (*Buffer, error) {
	p, err := s.take(errors.PhaseSeek, size)
	if err != nil {
		return &Buffer{}, err
	}
	out, err := Allocate(size)
	if err != nil {
		return out, err
	}
	copy(out.data, p)
	s.pos += size
	return out, nil
}

// Write copies buf at the position and advances by its size.
func (s *Seeker) Write(buf *Buffer) error {
	if buf.IsNil() {
		return errors.NullPointer(errors.PhaseSeek, "source buffer")
	}
	return s.put(errors.PhaseSeek, buf.data)
}

// WriteBytes is Write for a plain slice.
func (s *Seeker) WriteBytes(p []byte) error {
	return s.put(errors.PhaseSeek, p)
}

// Resize reallocates the underlying buffer. The position is not touched and
// may lie past the end until the next Goto.
func (s *Seeker) Resize(size uint64) error {
	if s.buf == nil {
		s.buf = &Buffer{}
	}
	return s.buf.Reallocate(size)
}

// Goto moves the cursor. Any position up to and including the end is valid.
func (s *Seeker) Goto(pos uint64) error {
	if pos > s.buf.Size() {
		return errors.BadPosition(errors.PhaseSeek, pos, s.buf.Size())
	}
	s.pos = pos
	return nil
}

// take returns the next n bytes without advancing.
func (s *Seeker) take(phase errors.Phase, n uint64) ([]byte, error) {
	if s.buf.IsNil() {
		return nil, errors.NullPointer(phase, "seeker buffer")
	}
	if s.pos > s.buf.Size() {
		return nil, errors.BadPosition(phase, s.pos, s.buf.Size())
	}
	if n > s.Remaining() {
		return nil, errors.BadSize(phase, n, s.Remaining())
	}
	return s.buf.data[s.pos : s.pos+n], nil
}

func (s *Seeker) put(phase errors.Phase, p []byte) error {
	dst, err := s.take(phase, uint64(len(p)))
	if err != nil {
		return err
	}
	copy(dst, p)
	s.pos += uint64(len(p))
	return nil
}
