package abi

import "github.com/TyedeeGit/dsk/abi/internal/types"

type (
	// Ref names a descriptor inside an Arena.
	Ref = types.Ref
	// Tag is the descriptor variant.
	Tag = types.Tag
	// Kind is the scalar family of a simple descriptor.
	Kind = types.Kind
	// Width is a scalar width code.
	Width = types.Width
)

const (
	TagSimple = types.TagSimple
	TagArray  = types.TagArray
	TagStruct = types.TagStruct
)

const (
	KindInt   = types.KindInt
	KindNat   = types.KindNat
	KindSize  = types.KindSize
	KindFloat = types.KindFloat
)

const (
	W8  = types.W8
	W16 = types.W16
	W32 = types.W32
	W64 = types.W64
	F32 = types.F32
	F64 = types.F64
)

// Scalar descriptors. They are valid in every Arena.
const (
	Int8    = types.RefInt8
	Int16   = types.RefInt16
	Int32   = types.RefInt32
	Int64   = types.RefInt64
	Nat8    = types.RefNat8
	Nat16   = types.RefNat16
	Nat32   = types.RefNat32
	Nat64   = types.RefNat64
	Float32 = types.RefFloat32
	Float64 = types.RefFloat64
	Size    = types.RefSize
)

// Arena owns a set of descriptors. Arrays and structs refer to their
// elements by Ref, so a descriptor is only meaningful together with the
// arena that produced it, and only while that arena is alive.
//
// Arenas are append-only and a compound descriptor can only name refs that
// already exist, so trees are acyclic. Naming any other ref produces a
// descriptor that every operation rejects with bad_ctype.
type Arena struct {
	a *types.Arena
}

func NewArena() *Arena {
	return &Arena{a: types.NewArena()}
}

// Simple returns the descriptor for a scalar. Unknown kind or width codes
// are accepted here and rejected when the descriptor is used.
func (a *Arena) Simple(k Kind, w Width) Ref {
	return a.a.AddSimple(k, w)
}

// Array describes num contiguous elements of elem.
func (a *Arena) Array(num uint64, elem Ref) Ref {
	return a.a.AddArray(num, elem)
}

// Struct describes fields packed in declared order with no padding.
func (a *Arena) Struct(fields ...Ref) Ref {
	return a.a.AddStruct(fields)
}

// Len is the number of descriptors in the arena, scalars included.
func (a *Arena) Len() int {
	return a.a.Len()
}

// Reset discards every compound descriptor.
func (a *Arena) Reset() {
	a.a.Reset()
}

// Descriptor is a read-only view of one arena entry.
type Descriptor struct {
	Fields []Ref // struct fields, aliasing the arena
	Num    uint64
	Elem   Ref
	Tag    Tag
	Kind   Kind
	Width  Width
}

// Describe returns the descriptor at r.
func (a *Arena) Describe(r Ref) (Descriptor, bool) {
	n, ok := a.a.Node(r)
	if !ok {
		return Descriptor{}, false
	}
	d := Descriptor{Tag: n.Tag, Kind: n.Kind, Width: n.Width, Num: n.Num, Elem: n.Elem}
	if n.Tag == types.TagStruct {
		if d.Fields, ok = a.a.Children(n); !ok {
			return Descriptor{}, false
		}
	}
	return d, true
}

// Options tunes descriptor traversal.
type Options struct {
	// MaxNodes caps the nodes visited in one traversal. Shared subtrees
	// count once per reference.
	MaxNodes int
}

type Option func(*Options)

// WithMaxNodes sets Options.MaxNodes. Non-positive values select the default.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		o.MaxNodes = n
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	return o
}
