package layout

import (
	"fmt"

	"github.com/TyedeeGit/dsk/internal/arith"
	"github.com/TyedeeGit/dsk/internal/list"
	"github.com/TyedeeGit/dsk/abi/internal/types"
	"github.com/TyedeeGit/dsk/errors"
)

// DefaultMaxNodes bounds the token count of a single evaluation.
const DefaultMaxNodes = 1 << 24

type Op uint8

const (
	OpSimple Op = iota
	OpArray
	OpStruct
)

func (o Op) String() string {
	switch o {
	case OpSimple:
		return "SIMPLE"
	case OpArray:
		return "ARRAY"
	case OpStruct:
		return "STRUCT"
	default:
		return "UNKNOWN"
	}
}

// Token is one flattened node. Value is the leaf size for OpSimple and the
// element or field count otherwise.
type Token struct {
	Value uint64
	Op    Op
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%d)", t.Op, t.Value)
}

// Calculator holds the stacks used by Size. The stacks are kept between
// calls, so one Calculator serves many evaluations without reallocating.
type Calculator struct {
	work     *list.List[types.Ref]
	tokens   *list.List[Token]
	operands *list.List[uint64]
	maxNodes int
}

// NewCalculator returns a calculator that rejects trees with more than
// maxNodes nodes. A non-positive maxNodes selects DefaultMaxNodes.
func NewCalculator(maxNodes int) *Calculator {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &Calculator{
		work:     list.New[types.Ref](),
		tokens:   list.New[Token](),
		operands: list.New[uint64](),
		maxNodes: maxNodes,
	}
}

func (c *Calculator) MaxNodes() int {
	return c.maxNodes
}

// Size returns the packed byte size of the tree rooted at root.
func (c *Calculator) Size(a *types.Arena, root types.Ref) (uint64, error) {
	tokens, err := c.Flatten(a, root)
	if err != nil {
		return 0, err
	}
	return c.Evaluate(tokens)
}

// Flatten emits the pre-order token sequence of the tree rooted at root.
// The returned slice aliases the calculator until the next call.
func (c *Calculator) Flatten(a *types.Arena, root types.Ref) ([]Token, error) {
	c.work.Reset()
	c.tokens.Reset()
	c.work.Append(root)

	for {
		ref, ok := c.work.Pop()
		if !ok {
			break
		}
		if c.tokens.Len() >= c.maxNodes {
			return nil, errors.New(errors.PhaseSize, errors.KindOverflow).
				Value(c.maxNodes).
				Detail("descriptor exceeds %d nodes", c.maxNodes).
				Build()
		}

		n, ok := a.Node(ref)
		if !ok {
			return nil, errors.BadCType(errors.PhaseSize, "dangling descriptor ref %d", ref)
		}

		switch n.Tag {
		case types.TagSimple:
			size, ok := types.LeafSize(n.Kind, n.Width)
			if !ok {
				return nil, errors.BadCType(errors.PhaseSize, "invalid simple descriptor kind=%d width=%d", n.Kind, n.Width)
			}
			c.tokens.Append(Token{Op: OpSimple, Value: size})
		case types.TagArray:
			c.tokens.Append(Token{Op: OpArray, Value: n.Num})
			c.work.Append(n.Elem)
		case types.TagStruct:
			kids, ok := a.Children(n)
			if !ok {
				return nil, errors.BadCType(errors.PhaseSize, "struct ref %d has %d fields outside the arena", ref, n.Num)
			}
			c.tokens.Append(Token{Op: OpStruct, Value: n.Num})
			for _, k := range kids {
				c.work.Append(k)
			}
		case types.TagForward:
			return nil, errors.BadCType(errors.PhaseSize, "descriptor %d refers to undefined ref %d", ref, n.Elem)
		default:
			return nil, errors.BadCType(errors.PhaseSize, "invalid descriptor tag %d", n.Tag)
		}
	}

	return c.tokens.Slice(), nil
}

// Evaluate folds a pre-order token sequence into a single size.
func (c *Calculator) Evaluate(tokens []Token) (uint64, error) {
	c.operands.Reset()

	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		switch tok.Op {
		case OpSimple:
			c.operands.Append(tok.Value)
		case OpArray:
			x, ok := c.operands.Pop()
			if !ok {
				return 0, malformed(i, tok)
			}
			size, ok := arith.SafeMul(x, tok.Value)
			if !ok {
				return 0, errors.Overflow(errors.PhaseSize, fmt.Sprintf("array of %d elements of %d bytes", tok.Value, x))
			}
			c.operands.Append(size)
		case OpStruct:
			if tok.Value > uint64(c.operands.Len()) {
				return 0, malformed(i, tok)
			}
			var sum uint64
			for j := uint64(0); j < tok.Value; j++ {
				x, _ := c.operands.Pop()
				var ok bool
				if sum, ok = arith.SafeAdd(sum, x); !ok {
					return 0, errors.Overflow(errors.PhaseSize, fmt.Sprintf("struct of %d fields", tok.Value))
				}
			}
			c.operands.Append(sum)
		default:
			return 0, malformed(i, tok)
		}
	}

	if c.operands.Len() != 1 {
		return 0, errors.BadCType(errors.PhaseSize, "token stream left %d operands", c.operands.Len())
	}
	size, _ := c.operands.Pop()
	return size, nil
}

func malformed(i int, tok Token) error {
	return errors.BadCType(errors.PhaseSize, "malformed token %s at %d", tok, i)
}
