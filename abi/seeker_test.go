package abi

import (
	"errors"
	"testing"

	dskerrors "github.com/TyedeeGit/dsk/errors"
)

func TestSeekerWriteRead(t *testing.T) {
	s := NewSeeker(MustAllocate(6))

	if err := s.Write(Wrap([]byte{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	if s.Position() != 3 || s.Remaining() != 3 {
		t.Fatalf("pos=%d remaining=%d", s.Position(), s.Remaining())
	}
	if err := s.WriteBytes([]byte{4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining=%d", s.Remaining())
	}

	if err := s.Goto(1); err != nil {
		t.Fatal(err)
	}
	out, err := s.Read(2)
	if err != nil {
		t.Fatal(err)
	}
	if string(out.Bytes()) != string([]byte{2, 3}) || s.Position() != 3 {
		t.Errorf("Read = %v at %d", out.Bytes(), s.Position())
	}

	out.Bytes()[0] = 99
	if s.Bytes()[1] != 2 {
		t.Error("Read result aliases the seeker buffer")
	}
}

func TestSeekerReadBoundary(t *testing.T) {
	s := NewSeeker(Wrap([]byte{1, 2, 3, 4}))

	// a read of exactly the remaining bytes succeeds
	out, err := s.Read(4)
	if err != nil {
		t.Fatalf("exact-fit read: %v", err)
	}
	if out.Size() != 4 || s.Position() != 4 {
		t.Errorf("size=%d pos=%d", out.Size(), s.Position())
	}

	if _, err := s.Read(1); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("read past end: %v", err)
	}
	if s.Position() != 4 {
		t.Error("failed read moved the position")
	}

	if out, err := s.Read(0); err != nil || out.Size() != 0 {
		t.Errorf("empty read at end: %v, %v", out, err)
	}
}

func TestSeekerWritePastEnd(t *testing.T) {
	backing := make([]byte, 8)
	for i := range backing {
		backing[i] = 0xEE
	}
	// the seeker sees only the first 4 bytes; the rest stand in for
	// adjacent memory
	s := NewSeeker(Wrap(backing[:4]))

	if err := s.Goto(2); err != nil {
		t.Fatal(err)
	}
	err := s.WriteBytes([]byte{1, 2, 3})
	if !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Fatalf("err = %v, want bad_size_arg", err)
	}
	if s.Position() != 2 {
		t.Errorf("position moved to %d", s.Position())
	}
	for i, c := range backing {
		if c != 0xEE {
			t.Fatalf("byte %d overwritten: %x", i, backing)
		}
	}

	if err := s.PackNat64(1); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("PackNat64 past end: %v", err)
	}
	if err := s.Write(nil); !errors.Is(err, dskerrors.ErrNullPointer) {
		t.Errorf("Write(nil): %v", err)
	}
}

func TestSeekerGoto(t *testing.T) {
	s := NewSeeker(MustAllocate(4))

	if err := s.Goto(4); err != nil {
		t.Errorf("Goto(end): %v", err)
	}
	if err := s.Goto(5); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("Goto past end: %v", err)
	}
	if s.Position() != 4 {
		t.Errorf("position = %d", s.Position())
	}
}

func TestSeekerResize(t *testing.T) {
	s := NewSeeker(MustAllocate(8))
	if err := s.Goto(8); err != nil {
		t.Fatal(err)
	}

	if err := s.Resize(4); err != nil {
		t.Fatal(err)
	}
	// position is left alone, past the new end
	if s.Position() != 8 || s.Remaining() != 0 {
		t.Errorf("pos=%d remaining=%d", s.Position(), s.Remaining())
	}
	if err := s.PackNat8(1); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("pack past shrunk end: %v", err)
	}

	if err := s.Resize(16); err != nil {
		t.Fatal(err)
	}
	if s.Buffer().Size() != 16 || s.Remaining() != 8 {
		t.Errorf("size=%d remaining=%d", s.Buffer().Size(), s.Remaining())
	}

	empty := NewSeeker(nil)
	if err := empty.Resize(2); err != nil || empty.Remaining() != 2 {
		t.Errorf("Resize on empty seeker: %v", err)
	}

	// position stranded past a freed and regrown buffer
	stale := NewSeeker(MustAllocate(8))
	if err := stale.Goto(8); err != nil {
		t.Fatal(err)
	}
	stale.Buffer().Free()
	if err := stale.Resize(2); err != nil {
		t.Fatal(err)
	}
	if _, err := stale.Read(0); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("Read(0) past end: %v", err)
	}
	if err := stale.WriteBytes(nil); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("empty write past end: %v", err)
	}
	if _, err := stale.UnpackNat8(); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("unpack past end: %v", err)
	}
	if err := stale.Goto(0); err != nil || stale.Remaining() != 2 {
		t.Errorf("Goto back: %v", err)
	}
}

func TestSeekerNilBuffer(t *testing.T) {
	s := NewSeeker(&Buffer{})
	if _, err := s.Read(0); !errors.Is(err, dskerrors.ErrNullPointer) {
		t.Errorf("Read: %v", err)
	}
	if _, err := s.UnpackInt8(); !errors.Is(err, dskerrors.ErrNullPointer) {
		t.Errorf("UnpackInt8: %v", err)
	}
}
