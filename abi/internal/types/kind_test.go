package types

import "testing"

func TestStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{TagSimple.String(), "simple"},
		{TagArray.String(), "array"},
		{TagStruct.String(), "struct"},
		{Tag(9).String(), "unknown"},
		{KindInt.String(), "int"},
		{KindNat.String(), "nat"},
		{KindSize.String(), "size"},
		{KindFloat.String(), "float"},
		{Kind(9).String(), "unknown"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("got %q, want %q", tc.got, tc.want)
		}
	}
}

func TestLeafSize(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		w    Width
		size uint64
		ok   bool
	}{
		{"i8", KindInt, W8, 1, true},
		{"i16", KindInt, W16, 2, true},
		{"i32", KindInt, W32, 4, true},
		{"i64", KindInt, W64, 8, true},
		{"n8", KindNat, W8, 1, true},
		{"n64", KindNat, W64, 8, true},
		{"f32", KindFloat, F32, 4, true},
		{"f64", KindFloat, F64, 8, true},
		{"size", KindSize, 0, WordSize, true},
		{"bad int width", KindInt, Width(4), 0, false},
		{"bad float width", KindFloat, Width(2), 0, false},
		{"bad kind", Kind(7), W8, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			size, ok := LeafSize(tc.kind, tc.w)
			if size != tc.size || ok != tc.ok {
				t.Errorf("LeafSize = %d, %v; want %d, %v", size, ok, tc.size, tc.ok)
			}
			if ValidLeaf(tc.kind, tc.w) != tc.ok {
				t.Errorf("ValidLeaf disagrees with LeafSize")
			}
		})
	}
}
