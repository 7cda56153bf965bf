package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAlloc     Phase = "alloc"     // buffer allocation and resizing
	PhaseSeek      Phase = "seek"      // cursor movement and raw reads/writes
	PhasePack      Phase = "pack"      // host value to wire
	PhaseUnpack    Phase = "unpack"    // wire to host value
	PhaseSize      Phase = "size"      // descriptor size evaluation
	PhaseParse     Phase = "parse"     // descriptor text and WIT import
	PhaseHeap      Phase = "heap"      // object heap bookkeeping
	PhaseLifecycle Phase = "lifecycle" // init / deinit / exit
	PhaseGuest     Phase = "guest"     // guest linear memory transfer
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfMemory  Kind = "out_of_memory"
	KindBadSizeArg   Kind = "bad_size_arg"
	KindInvalidHeap  Kind = "invalid_heap"
	KindNullPointer  Kind = "null_pointer"
	KindBadIndex     Kind = "bad_index"
	KindBadCType     Kind = "bad_ctype"
	KindFailedUnpack Kind = "failed_unpack"
	KindOverflow     Kind = "overflow"
	KindUnsupported  Kind = "unsupported"
	KindInvalidState Kind = "invalid_state"
)

// Category is the coarse error class reported by the runtime.
type Category int

const (
	// MemoryError covers allocation failures, bad sizes and missing data.
	MemoryError Category = iota
	// UnsoundError is raised when the runtime encounters an invalid program.
	UnsoundError
	// ABIError is raised when invalid ABI calls are made.
	ABIError
)

func (c Category) String() string {
	switch c {
	case MemoryError:
		return "memory"
	case UnsoundError:
		return "unsound"
	case ABIError:
		return "abi"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Category returns the class the kind belongs to.
func (k Kind) Category() Category {
	switch k {
	case KindFailedUnpack, KindInvalidState:
		return UnsoundError
	case KindBadCType, KindUnsupported:
		return ABIError
	default:
		return MemoryError
	}
}

// Unrecoverable reports whether an error of this kind means runtime
// bookkeeping can no longer be trusted.
func (k Kind) Unrecoverable() bool {
	return k == KindInvalidHeap || k == KindFailedUnpack
}

// Message returns the diagnostic text the runtime prints for the kind.
func (k Kind) Message() string {
	switch k {
	case KindOutOfMemory:
		return "Out of memory!"
	case KindBadSizeArg:
		return "Invalid size argument!"
	case KindInvalidHeap:
		return "Invalid heap!"
	case KindNullPointer:
		return "Null pointer passed as argument!"
	case KindBadIndex:
		return "Invalid index!"
	case KindBadCType:
		return "Invalid ctype descriptor!"
	case KindFailedUnpack:
		return "Failed to unpack object!"
	case KindOverflow:
		return "Size overflow!"
	case KindUnsupported:
		return "Unsupported operation!"
	case KindInvalidState:
		return "Invalid runtime state!"
	default:
		return string(k)
	}
}

// Error is the structured error type used throughout the runtime
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone, so the Err* sentinels match errors from any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Category returns the class of the error's kind.
func (e *Error) Category() Category {
	return e.Kind.Category()
}

// Unrecoverable reports whether the error means bookkeeping is corrupt.
func (e *Error) Unrecoverable() bool {
	return e.Kind.Unrecoverable()
}

// Sentinels for errors.Is matching by kind.
var (
	ErrOutOfMemory  = &Error{Kind: KindOutOfMemory}
	ErrBadSizeArg   = &Error{Kind: KindBadSizeArg}
	ErrInvalidHeap  = &Error{Kind: KindInvalidHeap}
	ErrNullPointer  = &Error{Kind: KindNullPointer}
	ErrBadIndex     = &Error{Kind: KindBadIndex}
	ErrBadCType     = &Error{Kind: KindBadCType}
	ErrFailedUnpack = &Error{Kind: KindFailedUnpack}
	ErrOverflow     = &Error{Kind: KindOverflow}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrInvalidState = &Error{Kind: KindInvalidState}
)

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfMemory creates an allocation failure error
func OutOfMemory(phase Phase, size uint64, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("cannot allocate %d bytes (limit %d)", size, limit),
		Value:  size,
	}
}

// BadSize creates an invalid size argument error
func BadSize(phase Phase, size, available uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadSizeArg,
		Detail: fmt.Sprintf("size %d exceeds available %d", size, available),
		Value:  size,
	}
}

// BadPosition creates an invalid cursor position error
func BadPosition(phase Phase, position, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadSizeArg,
		Detail: fmt.Sprintf("position %d past end %d", position, limit),
		Value:  position,
	}
}

// NullPointer creates a missing data error
func NullPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullPointer,
		Detail: what + " has no data",
	}
}

// BadIndex creates an invalid element range error
func BadIndex(phase Phase, start, end, count uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadIndex,
		Detail: fmt.Sprintf("range [%d, %d) invalid for %d elements", start, end, count),
	}
}

// BadCType creates an invalid descriptor error
func BadCType(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindBadCType).Detail(detail, args...).Build()
}

// FailedUnpack creates an unsound unpack error
func FailedUnpack(cause error, detail string) *Error {
	return &Error{
		Phase:  PhaseUnpack,
		Kind:   KindFailedUnpack,
		Detail: detail,
		Cause:  cause,
	}
}

// Overflow creates a size overflow error
func Overflow(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: detail,
	}
}

// InvalidHeap creates a heap bookkeeping error
func InvalidHeap(detail string, args ...any) *Error {
	return New(PhaseHeap, KindInvalidHeap).Detail(detail, args...).Build()
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidState creates a lifecycle state error
func InvalidState(what string, state fmt.Stringer) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf("%s in state %s", what, state),
		Value:  state,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	if e, ok := AsError(err); ok {
		return e.Kind, true
	}
	return "", false
}

// IsUnrecoverable reports whether any *Error in err's chain is unrecoverable.
func IsUnrecoverable(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Unrecoverable() {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
