package types

import "math/bits"

// Tag discriminates descriptor nodes. Values match the wire encoding.
type Tag uint8

const (
	TagSimple Tag = iota
	TagArray
	TagStruct

	// TagForward marks a compound node that named a ref not yet in the
	// arena. It never appears on the wire.
	TagForward Tag = 0xFF
)

var tagNames = [...]string{
	TagSimple: "simple",
	TagArray:  "array",
	TagStruct: "struct",
}

func (t Tag) String() string {
	if t == TagForward {
		return "forward"
	}
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Kind is the scalar family of a simple node. Values match the wire encoding.
type Kind uint8

const (
	KindInt Kind = iota
	KindNat
	KindSize
	KindFloat
)

var kindNames = [...]string{
	KindInt:   "int",
	KindNat:   "nat",
	KindSize:  "size",
	KindFloat: "float",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Width is a width code. Integer kinds use W8..W64, floats use F32 and F64,
// and Size ignores it.
type Width uint8

const (
	W8 Width = iota
	W16
	W32
	W64
)

const (
	F32 Width = iota
	F64
)

// WordSize is the byte width of a Size value on this host.
const WordSize = bits.UintSize / 8

var (
	intSizes   = [...]uint64{W8: 1, W16: 2, W32: 4, W64: 8}
	floatSizes = [...]uint64{F32: 4, F64: 8}
)

// LeafSize returns the packed size of a simple node.
func LeafSize(k Kind, w Width) (uint64, bool) {
	switch k {
	case KindInt, KindNat:
		if int(w) < len(intSizes) {
			return intSizes[w], true
		}
	case KindFloat:
		if int(w) < len(floatSizes) {
			return floatSizes[w], true
		}
	case KindSize:
		return WordSize, true
	}
	return 0, false
}

// ValidLeaf reports whether k and w name a known scalar.
func ValidLeaf(k Kind, w Width) bool {
	_, ok := LeafSize(k, w)
	return ok
}
