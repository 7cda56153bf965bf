package heap

import (
	"github.com/TyedeeGit/dsk/abi"
	"github.com/TyedeeGit/dsk/errors"
)

// Ref names a type descriptor in a TermHeap's arena.
type Ref = abi.Ref

// TermHeap tracks objects whose size comes from a type descriptor. It
// follows the same compaction rule as Heap.
//
// A TermHeap is not safe for concurrent use.
type TermHeap struct {
	objects  *table[*TermObject]
	arena    *abi.Arena
	sizer    *abi.Sizer
	maxAlloc uint64
}

// NewTermHeap creates an empty term heap with its own descriptor arena.
func NewTermHeap(cfg *Config) *TermHeap {
	var opts []abi.Option
	if cfg != nil && cfg.MaxDescriptorNodes > 0 {
		opts = append(opts, abi.WithMaxNodes(cfg.MaxDescriptorNodes))
	}
	return &TermHeap{
		objects:  newTable[*TermObject](StrategyTerm, cfg.logger()),
		arena:    abi.NewArena(),
		sizer:    abi.NewSizer(opts...),
		maxAlloc: cfg.maxAlloc(),
	}
}

// Arena returns the arena that term shapes must come from.
func (h *TermHeap) Arena() *abi.Arena {
	return h.arena
}

func (h *TermHeap) footprint(shape Ref) (uint64, error) {
	size, err := h.sizer.SizeOf(h.arena, shape)
	if err != nil {
		return 0, err
	}
	if size > h.maxAlloc {
		return 0, errors.OutOfMemory(errors.PhaseHeap, size, h.maxAlloc)
	}
	return size, nil
}

// Allocate appends a zeroed object sized for shape.
func (h *TermHeap) Allocate(shape Ref) (*TermObject, error) {
	size, err := h.footprint(shape)
	if err != nil {
		return nil, err
	}
	obj := &TermObject{
		Data:  make([]byte, size),
		Shape: shape,
	}
	h.objects.insert(obj, size)
	return obj, nil
}

// Resize gives obj a new shape. The bytes both shapes have in common are
// kept and any new bytes are zero. The object keeps its index.
func (h *TermHeap) Resize(obj *TermObject, shape Ref) error {
	if _, err := h.objects.check(obj); err != nil {
		return err
	}
	size, err := h.footprint(shape)
	if err != nil {
		return err
	}
	data := make([]byte, size)
	copy(data, obj.Data)
	obj.Data = data
	obj.Shape = shape
	return nil
}

// Seeker returns a seeker over obj's bytes for packing and unpacking in
// place.
func (h *TermHeap) Seeker(obj *TermObject, opts ...abi.SeekerOption) (*abi.Seeker, error) {
	if _, err := h.objects.check(obj); err != nil {
		return nil, err
	}
	return abi.NewSeeker(abi.Wrap(obj.Data), opts...), nil
}

// Delete frees obj and compacts the heap.
func (h *TermHeap) Delete(obj *TermObject) error {
	return h.objects.remove(obj)
}

func (h *TermHeap) Get(i int) (*TermObject, bool) {
	return h.objects.get(i)
}

// Each calls fn for every live object in index order until fn returns
// false. fn must not allocate, resize or delete.
func (h *TermHeap) Each(fn func(*TermObject) bool) {
	h.objects.each(fn)
}

func (h *TermHeap) Len() int { return h.objects.entries.Len() }

func (h *TermHeap) Cap() int { return h.objects.entries.Cap() }

// Teardown frees every object and drops every compound shape. It returns
// the number of objects freed.
func (h *TermHeap) Teardown() int {
	n := h.objects.teardown()
	h.arena.Reset()
	return n
}

// Subscribe registers o for lifecycle events and returns a function that
// removes it.
func (h *TermHeap) Subscribe(o Observer) (unsubscribe func()) {
	return h.objects.subscribe(o)
}
