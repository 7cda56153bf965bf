package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/TyedeeGit/dsk/abi"
	dskerrors "github.com/TyedeeGit/dsk/errors"
	"github.com/TyedeeGit/dsk/heap"
	"github.com/TyedeeGit/dsk/runtime"
)

func main() {
	var (
		desc        = flag.String("desc", "", "Descriptor in text form, e.g. {i32, [4]n8}")
		witType     = flag.String("wit", "", "WIT type to lower into a descriptor, e.g. tuple<u8, f64>")
		maxNodes    = flag.Int("max-nodes", 0, "Descriptor node limit (0 for default)")
		verbose     = flag.Bool("v", false, "Log heap activity to stderr")
		interactive = flag.Bool("i", false, "Interactive heap inspector")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			defer func() { _ = logger.Sync() }()
			heap.SetLogger(logger)
			runtime.SetLogger(logger)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*maxNodes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *desc == "" && *witType == "" {
		fmt.Fprintln(os.Stderr, "Usage: dsrt -desc '<descriptor>'   (size, canonical form, wire bytes)")
		fmt.Fprintln(os.Stderr, "       dsrt -wit '<wit type>'      (lower a WIT type)")
		fmt.Fprintln(os.Stderr, "       dsrt -i                     (interactive heap inspector)")
		os.Exit(1)
	}

	if err := describe(*desc, *witType, *maxNodes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func describe(desc, witType string, maxNodes int) error {
	opts := []abi.Option{abi.WithMaxNodes(maxNodes)}
	arena := abi.NewArena()

	var (
		root abi.Ref
		err  error
	)
	if witType != "" {
		t, perr := wit.ParseType(strings.TrimSpace(witType))
		if perr != nil {
			return errors.Wrapf(perr, "parse WIT type %q", witType)
		}
		root, err = abi.FromWIT(arena, t, opts...)
		if err != nil {
			return errors.Wrap(err, "lower WIT type")
		}
	} else {
		root, err = abi.Parse(arena, desc)
		if err != nil {
			return errors.Wrap(err, "parse descriptor")
		}
	}

	text, err := abi.Format(arena, root, opts...)
	if err != nil {
		return errors.Wrap(err, "format descriptor")
	}
	size, err := abi.SizeOf(arena, root, opts...)
	if err != nil {
		return errors.Wrap(err, "size descriptor")
	}
	wire, err := encode(arena, root, opts)
	if err != nil {
		return errors.Wrap(err, "pack descriptor")
	}

	fmt.Printf("Descriptor: %s\n", text)
	fmt.Printf("Size:       %d bytes\n", size)
	fmt.Printf("Wire:       %s (%d bytes)\n", hex.EncodeToString(wire), len(wire))
	return nil
}

// encode packs root into a buffer that grows until the descriptor fits.
func encode(a *abi.Arena, root abi.Ref, opts []abi.Option) ([]byte, error) {
	size := uint64(64)
	for {
		s := abi.NewSeeker(abi.MustAllocate(size))
		err := abi.PackDescriptor(s, a, root, opts...)
		if err == nil {
			return s.Bytes()[:s.Position()], nil
		}
		if !isShort(err) || size >= abi.DefaultMaxAlloc {
			return nil, err
		}
		size *= 2
	}
}

func isShort(err error) bool {
	kind, ok := dskerrors.KindOf(err)
	return ok && kind == dskerrors.KindBadSizeArg
}
