package list

import "unsafe"

// List is a growable homogeneous array. Capacity is always a power of two
// large enough for Len, except that removing the last element leaves the
// capacity alone. It shrinks by half once Len drops to half of Cap.
type List[T any] struct {
	data     []T
	count    int
	capacity int
}

// New returns an empty list with capacity 1.
func New[T any]() *List[T] {
	return &List[T]{
		data:     make([]T, 1),
		capacity: 1,
	}
}

// WithCapacity returns an empty list whose capacity is the smallest power of
// two holding n elements.
func WithCapacity[T any](n int) *List[T] {
	c := ceilPow2(n)
	return &List[T]{
		data:     make([]T, c),
		capacity: c,
	}
}

// ElemSize is the byte size of one element.
func (l *List[T]) ElemSize() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func (l *List[T]) Len() int { return l.count }

func (l *List[T]) Cap() int { return l.capacity }

// Get returns element i. It panics when i is out of range.
func (l *List[T]) Get(i int) T {
	if i < 0 || i >= l.count {
		panic("list: index out of range")
	}
	return l.data[i]
}

// Set replaces element i. It panics when i is out of range.
func (l *List[T]) Set(i int, v T) {
	if i < 0 || i >= l.count {
		panic("list: index out of range")
	}
	l.data[i] = v
}

// Append adds v at the end and returns its index.
func (l *List[T]) Append(v T) int {
	if l.count == l.capacity {
		l.resize(l.capacity * 2)
	}
	l.data[l.count] = v
	l.count++
	return l.count - 1
}

// Extend appends n zero elements and returns the index of the first.
func (l *List[T]) Extend(n int) int {
	first := l.count
	if n <= 0 {
		return first
	}
	if need := l.count + n; need > l.capacity {
		l.resize(ceilPow2(need))
	}
	l.count += n
	return first
}

// Pop removes and returns the last element.
func (l *List[T]) Pop() (T, bool) {
	var zero T
	if l.count == 0 {
		return zero, false
	}
	l.count--
	v := l.data[l.count]
	l.data[l.count] = zero
	l.shrink()
	return v, true
}

// Last returns the last element without removing it.
func (l *List[T]) Last() (T, bool) {
	var zero T
	if l.count == 0 {
		return zero, false
	}
	return l.data[l.count-1], true
}

// Remove deletes element i, shifting later elements down by one.
func (l *List[T]) Remove(i int) T {
	if i < 0 || i >= l.count {
		panic("list: index out of range")
	}
	v := l.data[i]
	copy(l.data[i:], l.data[i+1:l.count])
	l.count--
	var zero T
	l.data[l.count] = zero
	l.shrink()
	return v
}

// Truncate drops everything past the first n elements.
func (l *List[T]) Truncate(n int) {
	if n < 0 || n >= l.count {
		return
	}
	var zero T
	for i := n; i < l.count; i++ {
		l.data[i] = zero
	}
	l.count = n
	for l.count > 0 && l.count <= l.capacity/2 && l.capacity > 1 {
		l.resize(l.capacity / 2)
	}
}

// Reset empties the list. Capacity is kept for reuse.
func (l *List[T]) Reset() {
	var zero T
	for i := 0; i < l.count; i++ {
		l.data[i] = zero
	}
	l.count = 0
}

// Slice returns the live elements. The slice aliases the list until the
// next mutation.
func (l *List[T]) Slice() []T {
	return l.data[:l.count]
}

func (l *List[T]) shrink() {
	if l.count > 0 && l.count <= l.capacity/2 && l.capacity > 1 {
		l.resize(l.capacity / 2)
	}
}

func (l *List[T]) resize(capacity int) {
	data := make([]T, capacity)
	copy(data, l.data[:l.count])
	l.data = data
	l.capacity = capacity
}

func ceilPow2(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}
