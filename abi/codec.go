package abi

import (
	"math"

	"github.com/TyedeeGit/dsk/abi/internal/endian"
	"github.com/TyedeeGit/dsk/abi/internal/types"
	"github.com/TyedeeGit/dsk/errors"
)

// WordSize is the packed width of Size values on this host.
const WordSize = types.WordSize

func (s *Seeker) pack8(v uint8) error {
	return s.put(errors.PhasePack, []byte{v})
}

func (s *Seeker) pack16(v uint16) error {
	var tmp [2]byte
	s.host.PutUint16(tmp[:], endian.Ensure16(v, s.little))
	return s.put(errors.PhasePack, tmp[:])
}

func (s *Seeker) pack32(v uint32) error {
	var tmp [4]byte
	s.host.PutUint32(tmp[:], endian.Ensure32(v, s.little))
	return s.put(errors.PhasePack, tmp[:])
}

func (s *Seeker) pack64(v uint64) error {
	var tmp [8]byte
	s.host.PutUint64(tmp[:], endian.Ensure64(v, s.little))
	return s.put(errors.PhasePack, tmp[:])
}

func (s *Seeker) unpack8() (uint8, error) {
	p, err := s.take(errors.PhaseUnpack, 1)
	if err != nil {
		return 0, err
	}
	s.pos++
	return p[0], nil
}

func (s *Seeker) unpack16() (uint16, error) {
	p, err := s.take(errors.PhaseUnpack, 2)
	if err != nil {
		return 0, err
	}
	s.pos += 2
	return endian.Ensure16(s.host.Uint16(p), s.little), nil
}

func (s *Seeker) unpack32() (uint32, error) {
	p, err := s.take(errors.PhaseUnpack, 4)
	if err != nil {
		return 0, err
	}
	s.pos += 4
	return endian.Ensure32(s.host.Uint32(p), s.little), nil
}

func (s *Seeker) unpack64() (uint64, error) {
	p, err := s.take(errors.PhaseUnpack, 8)
	if err != nil {
		return 0, err
	}
	s.pos += 8
	return endian.Ensure64(s.host.Uint64(p), s.little), nil
}

func (s *Seeker) PackInt8(v int8) error   { return s.pack8(uint8(v)) }
func (s *Seeker) PackInt16(v int16) error { return s.pack16(uint16(v)) }
func (s *Seeker) PackInt32(v int32) error { return s.pack32(uint32(v)) }
func (s *Seeker) PackInt64(v int64) error { return s.pack64(uint64(v)) }

func (s *Seeker) PackNat8(v uint8) error   { return s.pack8(v) }
func (s *Seeker) PackNat16(v uint16) error { return s.pack16(v) }
func (s *Seeker) PackNat32(v uint32) error { return s.pack32(v) }
func (s *Seeker) PackNat64(v uint64) error { return s.pack64(v) }

func (s *Seeker) PackFloat32(v float32) error { return s.pack32(math.Float32bits(v)) }
func (s *Seeker) PackFloat64(v float64) error { return s.pack64(math.Float64bits(v)) }

// PackSize writes a host word.
func (s *Seeker) PackSize(v uint) error {
	if WordSize == 4 {
		return s.pack32(uint32(v))
	}
	return s.pack64(uint64(v))
}

func (s *Seeker) UnpackInt8() (int8, error) {
	v, err := s.unpack8()
	return int8(v), err
}

func (s *Seeker) UnpackInt16() (int16, error) {
	v, err := s.unpack16()
	return int16(v), err
}

func (s *Seeker) UnpackInt32() (int32, error) {
	v, err := s.unpack32()
	return int32(v), err
}

func (s *Seeker) UnpackInt64() (int64, error) {
	v, err := s.unpack64()
	return int64(v), err
}

func (s *Seeker) UnpackNat8() (uint8, error)   { return s.unpack8() }
func (s *Seeker) UnpackNat16() (uint16, error) { return s.unpack16() }
func (s *Seeker) UnpackNat32() (uint32, error) { return s.unpack32() }
func (s *Seeker) UnpackNat64() (uint64, error) { return s.unpack64() }

func (s *Seeker) UnpackFloat32() (float32, error) {
	v, err := s.unpack32()
	return math.Float32frombits(v), err
}

func (s *Seeker) UnpackFloat64() (float64, error) {
	v, err := s.unpack64()
	return math.Float64frombits(v), err
}

// UnpackSize reads a host word.
func (s *Seeker) UnpackSize() (uint, error) {
	if WordSize == 4 {
		v, err := s.unpack32()
		return uint(v), err
	}
	v, err := s.unpack64()
	return uint(v), err
}
