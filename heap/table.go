package heap

import (
	"go.uber.org/zap"

	"github.com/TyedeeGit/dsk/errors"
	"github.com/TyedeeGit/dsk/internal/list"
)

// table is a dense, index-compacting array of objects. For every live
// object o, entries[o.Position()] == o.
type table[T interface {
	comparable
	Object
}] struct {
	entries   *list.List[T]
	log       *zap.Logger
	observers []subscription
	nextSub   int
	strategy  Strategy
}

type subscription struct {
	o  Observer
	id int
}

func newTable[T interface {
	comparable
	Object
}](strategy Strategy, log *zap.Logger) *table[T] {
	return &table[T]{
		entries:  list.New[T](),
		log:      log,
		strategy: strategy,
	}
}

func (t *table[T]) insert(obj T, size uint64) int {
	oldCap := t.entries.Cap()
	idx := t.entries.Append(obj)
	obj.setPosition(idx)

	if c := t.entries.Cap(); c != oldCap {
		t.log.Debug("heap grown",
			zap.Stringer("strategy", t.strategy),
			zap.Int("len", t.entries.Len()),
			zap.Int("cap", c))
	}

	t.notify(Event{Type: EventAllocated, Object: obj, Index: idx, From: idx, Size: size, Strategy: t.strategy})
	return idx
}

// check verifies that obj is the live entry at its recorded position.
func (t *table[T]) check(obj T) (int, error) {
	var zero T
	if obj == zero {
		return 0, errors.NullPointer(errors.PhaseHeap, "object")
	}
	idx := obj.Position()
	if idx < 0 || idx >= t.entries.Len() {
		return 0, errors.InvalidHeap("%s object index %d outside heap of %d", t.strategy, idx, t.entries.Len())
	}
	if t.entries.Get(idx) != obj {
		return 0, errors.InvalidHeap("%s heap slot %d holds a different object", t.strategy, idx)
	}
	return idx, nil
}

// remove frees obj and closes the gap, renumbering every later object.
func (t *table[T]) remove(obj T) error {
	idx, err := t.check(obj)
	if err != nil {
		return err
	}
	size := uint64(len(obj.Bytes()))

	oldCap := t.entries.Cap()
	t.entries.Remove(idx)
	obj.release()

	for i := idx; i < t.entries.Len(); i++ {
		moved := t.entries.Get(i)
		moved.setPosition(i)
		t.notify(Event{Type: EventMoved, Object: moved, Index: i, From: i + 1, Strategy: t.strategy})
	}

	if c := t.entries.Cap(); c != oldCap {
		t.log.Debug("heap shrunk",
			zap.Stringer("strategy", t.strategy),
			zap.Int("len", t.entries.Len()),
			zap.Int("cap", c))
	}

	t.notify(Event{Type: EventDeleted, Object: obj, Index: idx, From: idx, Size: size, Strategy: t.strategy})
	return nil
}

// teardown frees every live object, index 0 included, and returns how
// many there were.
func (t *table[T]) teardown() int {
	n := t.entries.Len()
	for i := n - 1; i >= 0; i-- {
		obj := t.entries.Get(i)
		size := uint64(len(obj.Bytes()))
		obj.release()
		t.notify(Event{Type: EventTeardown, Object: obj, Index: i, From: i, Size: size, Strategy: t.strategy})
	}
	t.entries = list.New[T]()

	t.log.Debug("heap torn down", zap.Stringer("strategy", t.strategy), zap.Int("freed", n))
	return n
}

func (t *table[T]) get(i int) (T, bool) {
	if i < 0 || i >= t.entries.Len() {
		var zero T
		return zero, false
	}
	return t.entries.Get(i), true
}

func (t *table[T]) each(fn func(T) bool) {
	for _, obj := range t.entries.Slice() {
		if !fn(obj) {
			return
		}
	}
}

func (t *table[T]) subscribe(o Observer) func() {
	id := t.nextSub
	t.nextSub++
	t.observers = append(t.observers, subscription{o: o, id: id})
	return func() {
		for i, s := range t.observers {
			if s.id == id {
				t.observers = append(t.observers[:i], t.observers[i+1:]...)
				return
			}
		}
	}
}

func (t *table[T]) notify(e Event) {
	for _, s := range t.observers {
		s.o.OnHeapEvent(e)
	}
}
