package abi

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/TyedeeGit/dsk/internal/list"
	"github.com/TyedeeGit/dsk/abi/internal/types"
	"github.com/TyedeeGit/dsk/errors"
)

// FromWIT converts a fixed-layout WIT type into a descriptor in a.
//
// Integers, floats, bool and char map to scalars; records and tuples map to
// structs; enums and flags map to their discriminant or bit-vector width.
// Types that need indirection or a tagged payload (string, list, option,
// result, variant, resources) are unsupported.
func FromWIT(a *Arena, t wit.Type, opts ...Option) (Ref, error) {
	o := buildOptions(opts)
	work := list.New[wit.Type]()
	stack := list.New[*pending]()
	work.Append(t)
	visited := 0

	for {
		t, ok := work.Pop()
		if !ok {
			return 0, errors.New(errors.PhaseParse, errors.KindUnsupported).Detail("empty WIT type").Build()
		}
		if visited++; visited > o.MaxNodes {
			return 0, errors.Overflow(errors.PhaseParse, "WIT type exceeds node limit")
		}

		ref, fields, err := witNode(a, t)
		if err != nil {
			return 0, err
		}
		if fields != nil {
			if len(fields) > 0 {
				stack.Append(&pending{tag: types.TagStruct, num: uint64(len(fields))})
				for i := len(fields) - 1; i >= 0; i-- {
					work.Append(fields[i])
				}
				continue
			}
			ref = a.Struct()
		}

		for {
			top, ok := stack.Last()
			if !ok {
				return ref, nil
			}
			top.kids = append(top.kids, ref)
			if uint64(len(top.kids)) < top.num {
				break
			}
			ref = a.Struct(top.kids...)
			stack.Pop()
		}
	}
}

// witNode resolves t to a finished descriptor, or to the field types of a
// struct still to be built. A non-nil empty field list is an empty struct.
func witNode(a *Arena, t wit.Type) (Ref, []wit.Type, error) {
	for {
		switch typ := t.(type) {
		case wit.Bool, wit.U8:
			return Nat8, nil, nil
		case wit.S8:
			return Int8, nil, nil
		case wit.U16:
			return Nat16, nil, nil
		case wit.S16:
			return Int16, nil, nil
		case wit.U32, wit.Char:
			return Nat32, nil, nil
		case wit.S32:
			return Int32, nil, nil
		case wit.U64:
			return Nat64, nil, nil
		case wit.S64:
			return Int64, nil, nil
		case wit.F32:
			return Float32, nil, nil
		case wit.F64:
			return Float64, nil, nil
		case *wit.TypeDef:
			switch kind := typ.Kind.(type) {
			case *wit.Record:
				fields := make([]wit.Type, len(kind.Fields))
				for i, f := range kind.Fields {
					fields[i] = f.Type
				}
				return 0, fields, nil
			case *wit.Tuple:
				fields := make([]wit.Type, len(kind.Types))
				copy(fields, kind.Types)
				return 0, fields, nil
			case *wit.Enum:
				return discriminant(len(kind.Cases)), nil, nil
			case *wit.Flags:
				return flags(a, len(kind.Flags)), nil, nil
			case wit.Type:
				t = kind
				continue
			default:
				return 0, nil, errors.Unsupported(errors.PhaseParse, fmt.Sprintf("WIT type %T", typ.Kind))
			}
		default:
			return 0, nil, errors.Unsupported(errors.PhaseParse, fmt.Sprintf("WIT type %T", t))
		}
	}
}

func discriminant(cases int) Ref {
	switch {
	case cases <= 1<<8:
		return Nat8
	case cases <= 1<<16:
		return Nat16
	default:
		return Nat32
	}
}

func flags(a *Arena, n int) Ref {
	switch {
	case n == 0:
		return a.Struct()
	case n <= 8:
		return Nat8
	case n <= 16:
		return Nat16
	case n <= 32:
		return Nat32
	case n <= 64:
		return Nat64
	default:
		return a.Array(uint64((n+31)/32), Nat32)
	}
}
