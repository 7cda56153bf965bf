package abi

import "github.com/TyedeeGit/dsk/abi/internal/layout"

// DefaultMaxNodes is the node cap used when none is configured.
const DefaultMaxNodes = layout.DefaultMaxNodes

// Sizer computes descriptor sizes and keeps its work stacks between calls.
type Sizer struct {
	calc *layout.Calculator
}

func NewSizer(opts ...Option) *Sizer {
	o := buildOptions(opts)
	return &Sizer{calc: layout.NewCalculator(o.MaxNodes)}
}

// SizeOf returns the packed size of root: the sum of the fields for a
// struct, the element size times the count for an array.
func (s *Sizer) SizeOf(a *Arena, root Ref) (uint64, error) {
	return s.calc.Size(a.a, root)
}

// SizeOf is a one-shot Sizer.SizeOf.
func SizeOf(a *Arena, root Ref, opts ...Option) (uint64, error) {
	return NewSizer(opts...).SizeOf(a, root)
}
