package abi

import (
	"errors"
	"testing"

	dskerrors "github.com/TyedeeGit/dsk/errors"
)

func TestAllocate(t *testing.T) {
	b, err := Allocate(16)
	if err != nil {
		t.Fatal(err)
	}
	if b.Size() != 16 || b.IsNil() {
		t.Fatalf("size=%d nil=%v", b.Size(), b.IsNil())
	}
	for i, c := range b.Bytes() {
		if c != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}

	empty, err := Allocate(0)
	if err != nil || empty.IsNil() || empty.Size() != 0 {
		t.Errorf("Allocate(0) = %v, %v", empty, err)
	}
}

func TestAllocateLimit(t *testing.T) {
	b, err := AllocateWithLimit(100, 64)
	if !errors.Is(err, dskerrors.ErrOutOfMemory) {
		t.Fatalf("err = %v, want out_of_memory", err)
	}
	if b == nil || !b.IsNil() || b.Size() != 0 {
		t.Errorf("failed allocation should return an empty buffer, got %+v", b)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustAllocate should panic past the limit")
		}
	}()
	MustAllocate(DefaultMaxAlloc + 1)
}

func TestReallocate(t *testing.T) {
	b := Wrap([]byte{1, 2, 3, 4})

	if err := b.Reallocate(2); err != nil {
		t.Fatal(err)
	}
	if b.Size() != 2 || b.Bytes()[1] != 2 {
		t.Errorf("shrink: %v", b.Bytes())
	}

	// regrowing must not resurrect the dropped bytes
	if err := b.Reallocate(4); err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 0, 0}
	for i, c := range b.Bytes() {
		if c != want[i] {
			t.Fatalf("regrow: %v, want %v", b.Bytes(), want)
		}
	}

	if err := b.Reallocate(64); err != nil || b.Size() != 64 || b.Bytes()[0] != 1 {
		t.Errorf("grow: size=%d err=%v", b.Size(), err)
	}

	if err := b.Reallocate(DefaultMaxAlloc + 1); !errors.Is(err, dskerrors.ErrOutOfMemory) {
		t.Errorf("err = %v, want out_of_memory", err)
	}
	if b.Size() != 64 {
		t.Error("failed reallocation changed the buffer")
	}
}

func TestReallocateWrappedLeavesBackingAlone(t *testing.T) {
	backing := []byte{1, 2, 3, 4, 0xEE, 0xEE, 0xEE, 0xEE}
	b := Wrap(backing[:4])

	if err := b.Reallocate(8); err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 0xEE, 0xEE, 0xEE, 0xEE}
	for i, c := range backing {
		if c != want[i] {
			t.Fatalf("backing = %x, want %x", backing, want)
		}
	}
	if got := b.Bytes(); len(got) != 8 || got[3] != 4 || got[4] != 0 {
		t.Errorf("grown buffer = %x", got)
	}

	// shrink then regrow inside the wrapped range
	w := Wrap(backing[:4])
	if err := w.Reallocate(2); err != nil {
		t.Fatal(err)
	}
	if err := w.Reallocate(4); err != nil {
		t.Fatal(err)
	}
	if backing[2] != 3 || backing[3] != 4 {
		t.Errorf("regrow zeroed the backing array: %x", backing)
	}
}

func TestFree(t *testing.T) {
	b := MustAllocate(8)
	b.Free()
	if !b.IsNil() || b.Size() != 0 {
		t.Error("Free left data behind")
	}
	b.Free()

	var nilBuf *Buffer
	if !nilBuf.IsNil() || nilBuf.Size() != 0 || nilBuf.Bytes() != nil {
		t.Error("nil buffer accessors")
	}
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name      string
		dest      *Buffer
		src       *Buffer
		destOff   uint64
		srcOff    uint64
		want      []byte
		wantKind  dskerrors.Kind
		wantError bool
	}{
		{
			name: "whole",
			dest: MustAllocate(4), src: Wrap([]byte{1, 2, 3, 4}),
			want: []byte{1, 2, 3, 4},
		},
		{
			name: "offsets",
			dest: MustAllocate(5), src: Wrap([]byte{1, 2, 3, 4}),
			destOff: 2, srcOff: 1,
			want: []byte{0, 0, 2, 3, 4},
		},
		{
			name: "empty span at end",
			dest: MustAllocate(2), src: Wrap([]byte{9}),
			destOff: 2, srcOff: 1,
			want: []byte{0, 0},
		},
		{
			name: "overflow",
			dest: MustAllocate(3), src: Wrap([]byte{1, 2, 3, 4}),
			wantError: true, wantKind: dskerrors.KindBadSizeArg,
		},
		{
			name: "dest offset past end",
			dest: MustAllocate(3), src: Wrap([]byte{1}),
			destOff: 4,
			wantError: true, wantKind: dskerrors.KindBadSizeArg,
		},
		{
			name: "src offset past end",
			dest: MustAllocate(3), src: Wrap([]byte{1}),
			srcOff: 2,
			wantError: true, wantKind: dskerrors.KindBadSizeArg,
		},
		{
			name: "nil dest",
			dest: &Buffer{}, src: Wrap([]byte{1}),
			wantError: true, wantKind: dskerrors.KindNullPointer,
		},
		{
			name: "nil src",
			dest: MustAllocate(1), src: nil,
			wantError: true, wantKind: dskerrors.KindNullPointer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Copy(tc.dest, tc.src, tc.destOff, tc.srcOff)
			if tc.wantError {
				if kind, _ := dskerrors.KindOf(err); kind != tc.wantKind {
					t.Fatalf("err = %v, want %s", err, tc.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(tc.dest.Bytes()) != string(tc.want) {
				t.Errorf("dest = %v, want %v", tc.dest.Bytes(), tc.want)
			}
		})
	}
}

func TestCopyFailureLeavesDestination(t *testing.T) {
	dest := Wrap([]byte{7, 7, 7})
	if err := Copy(dest, Wrap([]byte{1, 2, 3}), 1, 0); err == nil {
		t.Fatal("expected error")
	}
	for _, c := range dest.Bytes() {
		if c != 7 {
			t.Fatalf("destination modified: %v", dest.Bytes())
		}
	}
}

func TestBufferMemory(t *testing.T) {
	b := MustAllocate(16)

	if err := b.Write(1, []byte{0x34, 0x12}); err != nil {
		t.Fatal(err)
	}
	p, err := b.Read(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if p[0] != 0 || p[1] != 0x34 || p[2] != 0x12 || p[3] != 0 {
		t.Errorf("Read = %x", p)
	}

	// Read is a view, not a copy
	p[0] = 0xAB
	if b.Bytes()[0] != 0xAB {
		t.Error("Read returned a copy")
	}

	if _, err := b.Read(9, 8); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("Read past end: %v", err)
	}
	if err := b.Write(14, []byte{1, 2, 3}); !errors.Is(err, dskerrors.ErrBadSizeArg) {
		t.Errorf("Write past end: %v", err)
	}
	if _, err := (&Buffer{}).Read(0, 0); !errors.Is(err, dskerrors.ErrNullPointer) {
		t.Errorf("Read on nil buffer: %v", err)
	}

	p, err = b.Read(3, 4)
	if err != nil || len(p) != 4 {
		t.Fatalf("Read = %v, %v", p, err)
	}
}
