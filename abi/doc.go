// Package abi implements the binary layer shared by compiled code and the
// runtime: owned buffers, a bounds-checked cursor, the little-endian
// primitive codec and type descriptors.
//
// # Buffers and Seekers
//
// A Buffer is a fixed-size byte region. A Seeker pairs a Buffer with a
// position and never reads or writes outside it:
//
//	s := abi.NewSeeker(abi.MustAllocate(12))
//	_ = s.PackNat32(7)
//	_ = s.PackFloat64(1.5)
//	_ = s.Goto(0)
//	n, _ := s.UnpackNat32()
//
// # Descriptors
//
// Descriptors describe the packed shape of a value and live in an Arena:
//
//	a := abi.NewArena()
//	pair := a.Struct(abi.Int32, a.Array(3, abi.Nat16))
//	size, _ := abi.SizeOf(a, pair) // 10
//
// The same shape in text form is "{i32, [3]n16}"; see Parse and Format.
// Descriptors can themselves be packed with PackDescriptor and read back
// with UnpackDescriptor. FromWIT imports fixed-layout WIT types.
//
// Every traversal is iterative, so arbitrarily deep descriptors cannot
// exhaust the goroutine stack. Options.MaxNodes bounds the work done on
// descriptors with heavily shared subtrees.
//
// # Errors
//
// All failures are *errors.Error values. A failed Seeker operation does not
// move the position.
package abi
