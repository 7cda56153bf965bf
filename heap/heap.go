package heap

import (
	"go.uber.org/zap"

	"github.com/TyedeeGit/dsk/errors"
	"github.com/TyedeeGit/dsk/internal/arith"
)

// DefaultMaxAlloc caps a single object when Config.MaxAlloc is zero.
const DefaultMaxAlloc = arith.MaxAlloc

// Config holds heap options. A nil *Config selects the defaults.
type Config struct {
	// Logger overrides the package logger.
	Logger *zap.Logger
	// MaxAlloc is the largest object footprint in bytes. Larger requests
	// fail with out_of_memory.
	MaxAlloc uint64
	// MaxDescriptorNodes bounds descriptor traversal in the term heap.
	MaxDescriptorNodes int
}

func (c *Config) logger() *zap.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return Logger()
}

func (c *Config) maxAlloc() uint64 {
	if c != nil && c.MaxAlloc > 0 {
		return c.MaxAlloc
	}
	return DefaultMaxAlloc
}

// Heap tracks simple objects in a dense array. An object's Index always
// equals its position; deleting an object shifts every later one down.
// Delete is O(n) in the number of later objects.
//
// A Heap is not safe for concurrent use.
type Heap struct {
	objects  *table[*SimpleObject]
	maxAlloc uint64
}

// New creates an empty heap with default configuration.
func New() *Heap {
	return NewWithConfig(nil)
}

// NewWithConfig creates an empty heap. The backing array starts with
// capacity 1.
func NewWithConfig(cfg *Config) *Heap {
	return &Heap{
		objects:  newTable[*SimpleObject](StrategySimple, cfg.logger()),
		maxAlloc: cfg.maxAlloc(),
	}
}

// Allocate appends a zeroed object with the footprint of d.
func (h *Heap) Allocate(d Descriptor) (*SimpleObject, error) {
	size, err := d.Footprint()
	if err != nil {
		return nil, err
	}
	if size > h.maxAlloc {
		return nil, errors.OutOfMemory(errors.PhaseHeap, size, h.maxAlloc)
	}

	obj := &SimpleObject{
		Obj:       make([]byte, size),
		Allocator: d,
	}
	h.objects.insert(obj, size)
	return obj, nil
}

// Delete frees obj and compacts the heap. It fails with invalid_heap when
// obj is not the live object at obj.Index, which covers double deletes and
// objects from another heap.
func (h *Heap) Delete(obj *SimpleObject) error {
	return h.objects.remove(obj)
}

// Get returns the object at index i.
func (h *Heap) Get(i int) (*SimpleObject, bool) {
	return h.objects.get(i)
}

// Each calls fn for every live object in index order until fn returns
// false. fn must not allocate or delete.
func (h *Heap) Each(fn func(*SimpleObject) bool) {
	h.objects.each(fn)
}

func (h *Heap) Len() int { return h.objects.entries.Len() }

// Cap is the capacity of the backing array.
func (h *Heap) Cap() int { return h.objects.entries.Cap() }

// Teardown frees every object and resets the heap to its initial state.
// It returns the number of objects freed.
func (h *Heap) Teardown() int {
	return h.objects.teardown()
}

// Subscribe registers o for lifecycle events and returns a function that
// removes it.
func (h *Heap) Subscribe(o Observer) (unsubscribe func()) {
	return h.objects.subscribe(o)
}
