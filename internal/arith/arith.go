package arith

import "math"

// MaxAlloc is the default cap on a single block allocation.
const MaxAlloc = 1 << 30 // 1 GB

func SafeMul(a, b uint64) (uint64, bool) {
	if b != 0 && a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// FitsU32 reports whether v can be addressed with a 32-bit offset.
func FitsU32(v uint64) bool {
	return v <= math.MaxUint32
}
