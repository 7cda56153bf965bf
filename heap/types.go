package heap

import (
	"fmt"

	"github.com/TyedeeGit/dsk/internal/arith"
	"github.com/TyedeeGit/dsk/errors"
)

// Strategy is the allocation strategy of an object. The set is closed.
type Strategy uint8

const (
	// StrategySimple objects are flat blocks sized by a Descriptor.
	StrategySimple Strategy = iota
	// StrategyTerm objects are shaped by a type descriptor and resizable.
	StrategyTerm
)

func (s Strategy) String() string {
	switch s {
	case StrategySimple:
		return "simple"
	case StrategyTerm:
		return "term"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Object is implemented by *SimpleObject and *TermObject.
type Object interface {
	Strategy() Strategy
	// Position is the object's current index in its heap, or -1 once freed.
	Position() int
	Bytes() []byte

	setPosition(int)
	release()
}

// Descriptor gives the flat footprint of a simple object: Size bytes, or
// Num elements of Size bytes when IsArray is set.
type Descriptor struct {
	Num     uint64
	Size    uint64
	IsArray bool
}

// Single describes one block of size bytes.
func Single(size uint64) Descriptor {
	return Descriptor{Size: size}
}

// Array describes num contiguous elements of size bytes.
func Array(num, size uint64) Descriptor {
	return Descriptor{IsArray: true, Num: num, Size: size}
}

// Footprint returns the byte size the descriptor asks for.
func (d Descriptor) Footprint() (uint64, error) {
	if !d.IsArray {
		return d.Size, nil
	}
	n, ok := arith.SafeMul(d.Num, d.Size)
	if !ok {
		return 0, errors.Overflow(errors.PhaseHeap, fmt.Sprintf("array of %d elements of %d bytes", d.Num, d.Size))
	}
	return n, nil
}

func (d Descriptor) String() string {
	if d.IsArray {
		return fmt.Sprintf("[%d]x%d", d.Num, d.Size)
	}
	return fmt.Sprintf("%d", d.Size)
}

// EventType identifies a heap lifecycle event.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventDeleted
	// EventMoved reports an object renumbered by compaction.
	EventMoved
	// EventTeardown reports an object freed by Teardown.
	EventTeardown
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventDeleted:
		return "deleted"
	case EventMoved:
		return "moved"
	case EventTeardown:
		return "teardown"
	default:
		return fmt.Sprintf("event(%d)", uint8(t))
	}
}

// Event describes one change to a heap. For EventMoved, From is the old
// index and Index the new one.
type Event struct {
	Object   Object
	Size     uint64
	Index    int
	From     int
	Strategy Strategy
	Type     EventType
}

// Observer receives heap lifecycle events.
type Observer interface {
	OnHeapEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHeapEvent(e Event) { f(e) }
