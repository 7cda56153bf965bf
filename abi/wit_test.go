package abi

import (
	"errors"
	"testing"

	"go.bytecodealliance.org/wit"

	dskerrors "github.com/TyedeeGit/dsk/errors"
)

func TestFromWITPrimitives(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
		want Ref
	}{
		{"bool", wit.Bool{}, Nat8},
		{"u8", wit.U8{}, Nat8},
		{"s8", wit.S8{}, Int8},
		{"u16", wit.U16{}, Nat16},
		{"s16", wit.S16{}, Int16},
		{"u32", wit.U32{}, Nat32},
		{"s32", wit.S32{}, Int32},
		{"u64", wit.U64{}, Nat64},
		{"s64", wit.S64{}, Int64},
		{"f32", wit.F32{}, Float32},
		{"f64", wit.F64{}, Float64},
		{"char", wit.Char{}, Nat32},
	}

	a := NewArena()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromWIT(a, tc.typ)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got ref %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFromWITCompound(t *testing.T) {
	point := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.S32{}},
		{Name: "y", Type: wit.S32{}},
	}}}
	alias := &wit.TypeDef{Kind: point}
	color := &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "red"}, {Name: "green"}}}}

	flags := func(n int) *wit.TypeDef {
		f := make([]wit.Flag, n)
		for i := range f {
			f[i] = wit.Flag{Name: string(rune('a' + i%26))}
		}
		return &wit.TypeDef{Kind: &wit.Flags{Flags: f}}
	}

	tests := []struct {
		name   string
		typ    wit.Type
		format string
		size   uint64
	}{
		{"record", point, "{i32, i32}", 8},
		{"alias", alias, "{i32, i32}", 8},
		{"tuple", &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, point, wit.F64{}}}},
			"{n8, {i32, i32}, f64}", 17},
		{"empty record", &wit.TypeDef{Kind: &wit.Record{}}, "{}", 0},
		{"enum", color, "n8", 1},
		{"flags 3", flags(3), "n8", 1},
		{"flags 12", flags(12), "n16", 2},
		{"flags 40", flags(40), "n64", 8},
		{"flags 70", flags(70), "[3]n32", 12},
		{"nested", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "c", Type: color},
			{Name: "p", Type: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{point, point}}}},
		}}}, "{n8, {{i32, i32}, {i32, i32}}}", 17},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewArena()
			r, err := FromWIT(a, tc.typ)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Format(a, r)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.format {
				t.Errorf("Format = %q, want %q", got, tc.format)
			}
			if size, _ := SizeOf(a, r); size != tc.size {
				t.Errorf("size = %d, want %d", size, tc.size)
			}
		})
	}
}

func TestFromWITUnsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
	}{
		{"string", wit.String{}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}},
		{"result", &wit.TypeDef{Kind: &wit.Result{OK: wit.U8{}}}},
		{"string field", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "ok", Type: wit.U8{}},
			{Name: "name", Type: wit.String{}},
		}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromWIT(NewArena(), tc.typ)
			if !errors.Is(err, dskerrors.ErrUnsupported) {
				t.Errorf("err = %v, want unsupported", err)
			}
		})
	}
}
