package endian

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

// HostLittle reports whether the running host stores integers little-endian.
var HostLittle = func() bool {
	v := uint16(1)
	return *(*byte)(unsafe.Pointer(&v)) == 1
}()

// Host returns the host byte order.
func Host() binary.ByteOrder {
	if HostLittle {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// IsLittle reports whether order stores the least significant byte first.
func IsLittle(order binary.ByteOrder) bool {
	var buf [2]byte
	order.PutUint16(buf[:], 1)
	return buf[0] == 1
}

// Ensure16 converts between host representation and the little-endian wire
// representation. The conversion is its own inverse.
func Ensure16(v uint16, hostLittle bool) uint16 {
	if hostLittle {
		return v
	}
	return bits.ReverseBytes16(v)
}

func Ensure32(v uint32, hostLittle bool) uint32 {
	if hostLittle {
		return v
	}
	return bits.ReverseBytes32(v)
}

func Ensure64(v uint64, hostLittle bool) uint64 {
	if hostLittle {
		return v
	}
	return bits.ReverseBytes64(v)
}
