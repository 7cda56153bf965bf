package list

import (
	"testing"
)

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func TestAppendGrowth(t *testing.T) {
	l := New[int]()
	if l.Cap() != 1 || l.Len() != 0 {
		t.Fatalf("new list: len=%d cap=%d", l.Len(), l.Cap())
	}

	for i := 0; i < 100; i++ {
		idx := l.Append(i)
		if idx != i {
			t.Fatalf("Append index: got %d, want %d", idx, i)
		}
		if l.Cap() < l.Len() {
			t.Fatalf("capacity %d below count %d", l.Cap(), l.Len())
		}
		if !isPow2(l.Cap()) {
			t.Fatalf("capacity %d is not a power of two", l.Cap())
		}
	}

	for i := 0; i < 100; i++ {
		if got := l.Get(i); got != i {
			t.Errorf("Get(%d) = %d", i, got)
		}
	}
	if l.Cap() != 128 {
		t.Errorf("cap after 100 appends: got %d, want 128", l.Cap())
	}
}

func TestShrinkHysteresis(t *testing.T) {
	l := New[int]()
	for i := 1; i <= 5; i++ {
		l.Append(i)
	}
	if l.Cap() != 8 {
		t.Fatalf("cap after 5 appends: got %d, want 8", l.Cap())
	}

	// 5 -> 4: 4 <= 8/2, shrink to 4
	l.Pop()
	if l.Len() != 4 || l.Cap() != 4 {
		t.Errorf("after 1 pop: len=%d cap=%d, want 4/4", l.Len(), l.Cap())
	}

	// 4 -> 3: 3 > 4/2, no shrink
	l.Pop()
	if l.Len() != 3 || l.Cap() != 4 {
		t.Errorf("after 2 pops: len=%d cap=%d, want 3/4", l.Len(), l.Cap())
	}

	// 3 -> 2: 2 <= 4/2, shrink to 2
	l.Pop()
	if l.Len() != 2 || l.Cap() != 2 {
		t.Errorf("after 3 pops: len=%d cap=%d, want 2/2", l.Len(), l.Cap())
	}

	if l.Get(0) != 1 || l.Get(1) != 2 {
		t.Errorf("remaining elements: %v", l.Slice())
	}
}

func TestEmptyKeepsCapacity(t *testing.T) {
	l := New[int]()
	l.Append(1)
	l.Append(2)
	if l.Cap() != 2 {
		t.Fatalf("cap: got %d, want 2", l.Cap())
	}

	l.Pop() // 1 <= 2/2, shrink to 1
	if l.Cap() != 1 {
		t.Errorf("cap after pop to 1: got %d, want 1", l.Cap())
	}
	l.Pop()
	if l.Len() != 0 || l.Cap() != 1 {
		t.Errorf("empty: len=%d cap=%d", l.Len(), l.Cap())
	}

	if _, ok := l.Pop(); ok {
		t.Error("Pop on empty list should fail")
	}
	if _, ok := l.Last(); ok {
		t.Error("Last on empty list should fail")
	}
}

func TestRemoveShiftsDown(t *testing.T) {
	l := New[string]()
	for _, s := range []string{"a", "b", "c", "d"} {
		l.Append(s)
	}

	got := l.Remove(1)
	if got != "b" {
		t.Errorf("Remove returned %q", got)
	}
	want := []string{"a", "c", "d"}
	for i, w := range want {
		if l.Get(i) != w {
			t.Errorf("Get(%d) = %q, want %q", i, l.Get(i), w)
		}
	}
}

func TestExtendAndTruncate(t *testing.T) {
	l := New[int]()
	first := l.Extend(5)
	if first != 0 || l.Len() != 5 || l.Cap() != 8 {
		t.Fatalf("Extend: first=%d len=%d cap=%d", first, l.Len(), l.Cap())
	}
	l.Set(4, 9)

	next := l.Extend(3)
	if next != 5 || l.Len() != 8 || l.Cap() != 8 {
		t.Fatalf("second Extend: first=%d len=%d cap=%d", next, l.Len(), l.Cap())
	}
	if l.Get(4) != 9 {
		t.Error("Extend clobbered existing element")
	}

	l.Truncate(2)
	if l.Len() != 2 || l.Cap() != 2 {
		t.Errorf("Truncate: len=%d cap=%d, want 2/2", l.Len(), l.Cap())
	}
}

func TestWithCapacity(t *testing.T) {
	tests := []struct {
		n, cap int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32},
	}
	for _, tt := range tests {
		l := WithCapacity[byte](tt.n)
		if l.Cap() != tt.cap {
			t.Errorf("WithCapacity(%d).Cap() = %d, want %d", tt.n, l.Cap(), tt.cap)
		}
	}
}

func TestElemSize(t *testing.T) {
	if got := New[uint32]().ElemSize(); got != 4 {
		t.Errorf("uint32 ElemSize = %d", got)
	}
	if got := New[[3]uint16]().ElemSize(); got != 6 {
		t.Errorf("[3]uint16 ElemSize = %d", got)
	}
}

func TestIndexPanics(t *testing.T) {
	l := New[int]()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	l.Get(0)
}
