package abi

import (
	"strconv"
	"strings"

	"github.com/TyedeeGit/dsk/internal/list"
	"github.com/TyedeeGit/dsk/abi/internal/types"
	"github.com/TyedeeGit/dsk/errors"
)

var scalarNames = map[string]Ref{
	"i8":   Int8,
	"i16":  Int16,
	"i32":  Int32,
	"i64":  Int64,
	"n8":   Nat8,
	"n16":  Nat16,
	"n32":  Nat32,
	"n64":  Nat64,
	"f32":  Float32,
	"f64":  Float64,
	"size": Size,
}

// Parse reads a descriptor written in the text syntax into a:
//
//	i8 i16 i32 i64 n8 n16 n32 n64 f32 f64 size
//	[N]T           array of N elements of T
//	{T, T, ...}    struct
func Parse(a *Arena, src string) (Ref, error) {
	p := parser{src: src}
	stack := list.New[*pending]()

	for {
		p.skipSpace()
		if p.eof() {
			return 0, p.errorf("unexpected end of input")
		}

		var ref Ref
		switch c := p.src[p.pos]; {
		case c == '[':
			p.pos++
			num, err := p.number()
			if err != nil {
				return 0, err
			}
			if err := p.expect(']'); err != nil {
				return 0, err
			}
			stack.Append(&pending{tag: types.TagArray, num: num})
			continue

		case c == '{':
			p.pos++
			p.skipSpace()
			if p.peek('}') {
				p.pos++
				ref = a.Struct()
				break
			}
			stack.Append(&pending{tag: types.TagStruct})
			continue

		case isIdent(c):
			start := p.pos
			for !p.eof() && isIdent(p.src[p.pos]) {
				p.pos++
			}
			name := p.src[start:p.pos]
			r, ok := scalarNames[name]
			if !ok {
				p.pos = start
				return 0, p.errorf("unknown scalar %q", name)
			}
			ref = r

		default:
			return 0, p.errorf("unexpected %q", c)
		}

		for {
			top, ok := stack.Last()
			if !ok {
				p.skipSpace()
				if !p.eof() {
					return 0, p.errorf("trailing input")
				}
				return ref, nil
			}
			if top.tag == types.TagArray {
				ref = a.Array(top.num, ref)
				stack.Pop()
				continue
			}

			top.kids = append(top.kids, ref)
			p.skipSpace()
			if p.peek(',') {
				p.pos++
				break
			}
			if err := p.expect('}'); err != nil {
				return 0, err
			}
			ref = a.Struct(top.kids...)
			stack.Pop()
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek(c byte) bool {
	return !p.eof() && p.src[p.pos] == c
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if !p.peek(c) {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) number() (uint64, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expected array length")
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	if err != nil {
		return 0, errors.New(errors.PhaseParse, errors.KindBadCType).
			Cause(err).
			Detail("array length at offset %d", start).
			Build()
	}
	return n, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindBadCType).
		Value(p.pos).
		Detail("offset %d: "+format, append([]any{p.pos}, args...)...).
		Build()
}

func isIdent(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// Format renders root in the text syntax accepted by Parse.
func Format(a *Arena, root Ref, opts ...Option) (string, error) {
	o := buildOptions(opts)

	type item struct {
		lit string
		ref Ref
	}

	var b strings.Builder
	work := list.New[item]()
	work.Append(item{ref: root})
	visited := 0

	for {
		it, ok := work.Pop()
		if !ok {
			return b.String(), nil
		}
		if it.lit != "" {
			b.WriteString(it.lit)
			continue
		}
		if visited++; visited > o.MaxNodes {
			return "", errors.Overflow(errors.PhaseParse, "descriptor exceeds node limit")
		}

		d, ok := a.Describe(it.ref)
		if !ok {
			return "", errors.BadCType(errors.PhaseParse, "dangling descriptor ref %d", it.ref)
		}
		switch d.Tag {
		case types.TagSimple:
			name, ok := scalarName(d.Kind, d.Width)
			if !ok {
				return "", errors.BadCType(errors.PhaseParse, "invalid simple descriptor kind=%d width=%d", d.Kind, d.Width)
			}
			b.WriteString(name)
		case types.TagArray:
			b.WriteByte('[')
			b.WriteString(strconv.FormatUint(d.Num, 10))
			b.WriteByte(']')
			work.Append(item{ref: d.Elem})
		case types.TagStruct:
			b.WriteByte('{')
			work.Append(item{lit: "}"})
			for i := len(d.Fields) - 1; i >= 0; i-- {
				work.Append(item{ref: d.Fields[i]})
				if i > 0 {
					work.Append(item{lit: ", "})
				}
			}
		default:
			return "", errors.BadCType(errors.PhaseParse, "invalid descriptor tag %d", d.Tag)
		}
	}
}

func scalarName(k Kind, w Width) (string, bool) {
	r, ok := types.Leaf(k, w)
	if !ok {
		return "", false
	}
	for name, ref := range scalarNames {
		if ref == r {
			return name, true
		}
	}
	return "", false
}
