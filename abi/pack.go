package abi

import (
	"github.com/TyedeeGit/dsk/internal/list"
	"github.com/TyedeeGit/dsk/abi/internal/types"
	"github.com/TyedeeGit/dsk/errors"
)

// Descriptor wire layout, pre-order:
//
//	simple: tag u8, kind u8, width u8
//	array:  tag u8, num u64, element
//	struct: tag u8, num u64, num fields

const (
	simpleHeader   = 3
	compoundHeader = 9
)

// PackDescriptor writes root and everything below it at the position. On
// failure the position is restored.
func PackDescriptor(s *Seeker, a *Arena, root Ref, opts ...Option) error {
	o := buildOptions(opts)
	start := s.pos

	if err := packDescriptor(s, a.a, root, o.MaxNodes); err != nil {
		s.pos = start
		return err
	}
	return nil
}

func packDescriptor(s *Seeker, a *types.Arena, root Ref, maxNodes int) error {
	work := list.New[Ref]()
	work.Append(root)
	visited := 0

	for {
		ref, ok := work.Pop()
		if !ok {
			return nil
		}
		if visited++; visited > maxNodes {
			return errors.Overflow(errors.PhasePack, "descriptor exceeds node limit")
		}

		n, ok := a.Node(ref)
		if !ok {
			return errors.BadCType(errors.PhasePack, "dangling descriptor ref %d", ref)
		}
		if err := s.pack8(uint8(n.Tag)); err != nil {
			return err
		}

		switch n.Tag {
		case types.TagSimple:
			if !types.ValidLeaf(n.Kind, n.Width) {
				return errors.BadCType(errors.PhasePack, "invalid simple descriptor kind=%d width=%d", n.Kind, n.Width)
			}
			if err := s.pack8(uint8(n.Kind)); err != nil {
				return err
			}
			if err := s.pack8(uint8(n.Width)); err != nil {
				return err
			}
		case types.TagArray:
			if err := s.pack64(n.Num); err != nil {
				return err
			}
			work.Append(n.Elem)
		case types.TagStruct:
			kids, ok := a.Children(n)
			if !ok {
				return errors.BadCType(errors.PhasePack, "struct ref %d has fields outside the arena", ref)
			}
			if err := s.pack64(n.Num); err != nil {
				return err
			}
			// reversed so fields pop in declared order
			for i := len(kids) - 1; i >= 0; i-- {
				work.Append(kids[i])
			}
		default:
			return errors.BadCType(errors.PhasePack, "invalid descriptor tag %d", n.Tag)
		}
	}
}

// pending is a compound node whose children are still being read.
type pending struct {
	kids []Ref
	num  uint64
	tag  Tag
}

// UnpackDescriptor reads one descriptor tree at the position into a and
// returns its root. Truncated input fails with failed_unpack and invalid
// tags, kinds or widths with bad_ctype; either way the position is restored.
// Nodes read before the failure stay in the arena, unreferenced.
func UnpackDescriptor(s *Seeker, a *Arena, opts ...Option) (Ref, error) {
	o := buildOptions(opts)
	start := s.pos

	root, err := unpackDescriptor(s, a.a, o.MaxNodes)
	if err != nil {
		s.pos = start
		return 0, err
	}
	return root, nil
}

func unpackDescriptor(s *Seeker, a *types.Arena, maxNodes int) (Ref, error) {
	stack := list.New[*pending]()
	visited := 0

	for {
		if visited++; visited > maxNodes {
			return 0, errors.Overflow(errors.PhaseUnpack, "descriptor exceeds node limit")
		}

		tag, err := s.unpack8()
		if err != nil {
			return 0, truncated(err, "node tag")
		}

		var ref Ref
		switch Tag(tag) {
		case types.TagSimple:
			kind, err := s.unpack8()
			if err != nil {
				return 0, truncated(err, "simple kind")
			}
			width, err := s.unpack8()
			if err != nil {
				return 0, truncated(err, "simple width")
			}
			k, w := Kind(kind), Width(width)
			if !types.ValidLeaf(k, w) || (k == types.KindSize && w != 0) {
				return 0, errors.BadCType(errors.PhaseUnpack, "invalid simple descriptor kind=%d width=%d", kind, width)
			}
			ref = a.AddSimple(k, w)

		case types.TagArray:
			num, err := s.unpack64()
			if err != nil {
				return 0, truncated(err, "array length")
			}
			stack.Append(&pending{tag: types.TagArray, num: num})
			continue

		case types.TagStruct:
			num, err := s.unpack64()
			if err != nil {
				return 0, truncated(err, "struct field count")
			}
			if num == 0 {
				ref = a.AddStruct(nil)
				break
			}
			// every field needs at least a simple header
			if num > s.Remaining()/simpleHeader {
				return 0, errors.FailedUnpack(
					errors.BadSize(errors.PhaseUnpack, num*simpleHeader, s.Remaining()),
					"struct field count exceeds input")
			}
			stack.Append(&pending{tag: types.TagStruct, num: num, kids: make([]Ref, 0, min(num, 64))})
			continue

		default:
			return 0, errors.BadCType(errors.PhaseUnpack, "invalid descriptor tag %d", tag)
		}

		// attach the finished node, closing every parent it completes
		for {
			top, ok := stack.Last()
			if !ok {
				return ref, nil
			}
			top.kids = append(top.kids, ref)
			if top.tag == types.TagArray {
				ref = a.AddArray(top.num, ref)
			} else if uint64(len(top.kids)) == top.num {
				ref = a.AddStruct(top.kids)
			} else {
				break
			}
			stack.Pop()
		}
	}
}

func truncated(cause error, what string) error {
	return errors.FailedUnpack(cause, "truncated descriptor: "+what)
}
