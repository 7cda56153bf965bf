package runtime

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/TyedeeGit/dsk/errors"
	"github.com/TyedeeGit/dsk/heap"
)

// osExit is the process exit used when no Config.Exit is set.
var osExit = os.Exit

// State is the lifecycle state of a Runtime.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	// StateDeinitializing is set while the heaps are being torn down. An
	// error raised in this state exits without cleanup.
	StateDeinitializing
	StateExited
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateDeinitializing:
		return "deinitializing"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Config holds runtime options. A nil *Config selects the defaults.
type Config struct {
	// Logger overrides the package logger for this runtime and its heaps.
	Logger *zap.Logger

	// Exit terminates the process. Defaults to os.Exit. Tests replace it
	// to observe the exit code.
	Exit func(code int)

	// MaxAlloc is the largest single object in bytes. 0 means 1 GiB.
	MaxAlloc uint64

	// MaxDescriptorNodes bounds descriptor traversal. 0 means 1<<24.
	MaxDescriptorNodes int
}

// Runtime owns the heaps of one program and its lifecycle. The zero
// Runtime is uninitialized; call Init or use New.
//
// A Runtime is not safe for concurrent use.
type Runtime struct {
	simple   *heap.Heap
	terms    *heap.TermHeap
	log      *zap.Logger
	exit     func(int)
	state    State
	exitCode int
}

// New creates a running runtime with default configuration.
func New() *Runtime {
	return NewWithConfig(nil)
}

// NewWithConfig creates a running runtime.
func NewWithConfig(cfg *Config) *Runtime {
	r := &Runtime{}
	_ = r.Init(cfg)
	return r
}

// Init creates the heaps and enables deinitialization.
func (r *Runtime) Init(cfg *Config) error {
	if r.state != StateUninitialized {
		return errors.InvalidState("init", r.state)
	}
	if cfg == nil {
		cfg = &Config{}
	}

	r.log = cfg.Logger
	if r.log == nil {
		r.log = Logger()
	}
	r.exit = cfg.Exit

	heapCfg := &heap.Config{
		Logger:             r.log,
		MaxAlloc:           cfg.MaxAlloc,
		MaxDescriptorNodes: cfg.MaxDescriptorNodes,
	}
	r.simple = heap.NewWithConfig(heapCfg)
	r.terms = heap.NewTermHeap(heapCfg)
	r.state = StateRunning

	r.log.Debug("runtime initialized")
	return nil
}

func (r *Runtime) State() State { return r.state }

func (r *Runtime) logger() *zap.Logger {
	if r.log == nil {
		return Logger()
	}
	return r.log
}

func (r *Runtime) terminate(code int) {
	r.exitCode = code
	r.state = StateExited
	if r.exit == nil {
		osExit(code)
		return
	}
	r.exit(code)
}

// Simple returns the simple object heap.
func (r *Runtime) Simple() *heap.Heap { return r.simple }

// Terms returns the term heap.
func (r *Runtime) Terms() *heap.TermHeap { return r.terms }

// CanDeinit reports whether Deinit is currently permitted.
func (r *Runtime) CanDeinit() bool {
	return r.state == StateRunning
}

// Deinit frees every live object in both heaps. It may be called once.
func (r *Runtime) Deinit() error {
	if !r.CanDeinit() {
		return errors.InvalidState("deinit", r.state)
	}
	r.state = StateDeinitializing

	simple := r.simple.Teardown()
	terms := r.terms.Teardown()

	r.state = StateExited
	r.log.Debug("runtime deinitialized",
		zap.Int("simple_objects", simple),
		zap.Int("term_objects", terms))
	return nil
}

// Exit deinitializes the runtime when permitted and terminates the
// process with code.
func (r *Runtime) Exit(code int) {
	switch r.state {
	case StateRunning:
		_ = r.Deinit()
	case StateDeinitializing:
		r.logger().Warn("exit requested during deinitialization, skipping cleanup")
	}
	r.terminate(code)
}

// ExitCode is the code passed to the last Exit.
func (r *Runtime) ExitCode() int {
	return r.exitCode
}

// Fatal reports err and terminates the process with code 1. The heaps are
// torn down first unless the error was raised during deinitialization, in
// which case cleanup is unsafe and skipped.
func (r *Runtime) Fatal(err error) {
	fields := []zap.Field{zap.Error(err)}
	msg := "runtime error"
	if e, ok := errors.AsError(err); ok {
		msg = e.Kind.Message()
		fields = append(fields,
			zap.String("phase", string(e.Phase)),
			zap.String("kind", string(e.Kind)),
			zap.Stringer("category", e.Category()))
	}
	r.logger().Error(msg, fields...)

	if r.CanDeinit() {
		r.Exit(1)
		return
	}
	if r.state == StateDeinitializing {
		r.logger().Warn("error occurred while deinitializing the runtime, exiting without cleanup")
	}
	r.terminate(1)
}

// Must reports a non-nil err through Fatal.
func (r *Runtime) Must(err error) {
	if err != nil {
		r.Fatal(err)
	}
}
