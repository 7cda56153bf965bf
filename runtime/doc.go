// Package runtime ties the heaps of one program to a lifecycle.
//
// # Quick Start
//
//	rt := runtime.New()
//	defer rt.Deinit()
//
//	obj, err := rt.Simple().Allocate(heap.Single(4))
//	if err != nil {
//	    rt.Fatal(err)
//	}
//
// # Lifecycle
//
// A Runtime moves through four states:
//
//	Uninitialized -> Running -> Deinitializing -> Exited
//
// Init creates the heaps. Deinit tears them down and may run once. Exit
// deinitializes if permitted and then terminates the process.
//
// # Errors
//
// Operations return errors. Fatal is the opt-in terminal path: it logs the
// error, tears the heaps down if that is still permitted and exits with
// code 1. An error raised while the heaps are being torn down skips cleanup
// and exits immediately. Must sends a non-nil error through Fatal.
package runtime
