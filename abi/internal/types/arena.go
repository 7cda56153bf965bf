package types

import "github.com/TyedeeGit/dsk/internal/list"

// Ref addresses a node inside an Arena.
type Ref uint32

// Leaf refs, present in every arena.
const (
	RefInt8 Ref = iota
	RefInt16
	RefInt32
	RefInt64
	RefNat8
	RefNat16
	RefNat32
	RefNat64
	RefFloat32
	RefFloat64
	RefSize

	NumLeaves = int(RefSize) + 1
)

type Node struct {
	Num   uint64 // array length or struct field count
	Elem  Ref    // array element
	First uint32 // struct: first entry in the child table
	Tag   Tag
	Kind  Kind
	Width Width
}

// Arena is append-only storage for descriptor nodes.
type Arena struct {
	nodes    *list.List[Node]
	children *list.List[Ref]
}

func NewArena() *Arena {
	a := &Arena{
		nodes:    list.WithCapacity[Node](NumLeaves),
		children: list.New[Ref](),
	}
	a.seedLeaves()
	return a
}

func (a *Arena) seedLeaves() {
	for _, w := range []Width{W8, W16, W32, W64} {
		a.nodes.Append(Node{Tag: TagSimple, Kind: KindInt, Width: w})
	}
	for _, w := range []Width{W8, W16, W32, W64} {
		a.nodes.Append(Node{Tag: TagSimple, Kind: KindNat, Width: w})
	}
	a.nodes.Append(Node{Tag: TagSimple, Kind: KindFloat, Width: F32})
	a.nodes.Append(Node{Tag: TagSimple, Kind: KindFloat, Width: F64})
	a.nodes.Append(Node{Tag: TagSimple, Kind: KindSize})
}

// Leaf returns the predefined ref for a scalar, if any.
func Leaf(k Kind, w Width) (Ref, bool) {
	switch k {
	case KindInt:
		if w <= W64 {
			return RefInt8 + Ref(w), true
		}
	case KindNat:
		if w <= W64 {
			return RefNat8 + Ref(w), true
		}
	case KindFloat:
		if w <= F64 {
			return RefFloat32 + Ref(w), true
		}
	case KindSize:
		return RefSize, true
	}
	return 0, false
}

// AddSimple returns the ref of a scalar node. Known scalars reuse the leaf
// refs; unknown kind or width codes are stored as-is so that the error
// surfaces when the node is evaluated.
func (a *Arena) AddSimple(k Kind, w Width) Ref {
	if r, ok := Leaf(k, w); ok {
		return r
	}
	return Ref(a.nodes.Append(Node{Tag: TagSimple, Kind: k, Width: w}))
}

// AddArray appends an array node. An elem that is not already in the arena
// yields a TagForward node, so every valid node only points backwards.
func (a *Arena) AddArray(num uint64, elem Ref) Ref {
	if !a.defined(elem) {
		return a.forward(num, elem)
	}
	return Ref(a.nodes.Append(Node{Tag: TagArray, Num: num, Elem: elem}))
}

// AddStruct appends a struct node, with the same rule as AddArray for
// its children.
func (a *Arena) AddStruct(children []Ref) Ref {
	for _, c := range children {
		if !a.defined(c) {
			return a.forward(uint64(len(children)), c)
		}
	}
	first := a.children.Extend(len(children))
	for i, c := range children {
		a.children.Set(first+i, c)
	}
	return Ref(a.nodes.Append(Node{
		Tag:   TagStruct,
		Num:   uint64(len(children)),
		First: uint32(first),
	}))
}

func (a *Arena) defined(r Ref) bool {
	return int(r) < a.nodes.Len()
}

// forward records a rejected compound node. Elem holds the offending ref.
func (a *Arena) forward(num uint64, missing Ref) Ref {
	return Ref(a.nodes.Append(Node{Tag: TagForward, Num: num, Elem: missing}))
}

// Node returns the node at r.
func (a *Arena) Node(r Ref) (Node, bool) {
	if int(r) >= a.nodes.Len() {
		return Node{}, false
	}
	return a.nodes.Get(int(r)), true
}

// Children returns the child refs of a struct node. The slice aliases the
// arena until the next append.
func (a *Arena) Children(n Node) ([]Ref, bool) {
	if n.Tag != TagStruct {
		return nil, false
	}
	end := uint64(n.First) + n.Num
	if end > uint64(a.children.Len()) {
		return nil, false
	}
	return a.children.Slice()[n.First:end], true
}

// Len is the number of nodes, leaves included.
func (a *Arena) Len() int {
	return a.nodes.Len()
}

// Reset drops every node except the leaves. Refs handed out before the
// reset are invalid afterwards.
func (a *Arena) Reset() {
	a.nodes.Truncate(NumLeaves)
	a.children.Reset()
}
