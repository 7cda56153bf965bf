// Package errors provides structured error types for the dsk runtime.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Every Kind belongs to one of three runtime Categories: memory,
// unsound or ABI. Kinds that signal corrupted bookkeeping are Unrecoverable;
// callers that cannot continue hand them to runtime.(*Runtime).Fatal.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSeek, errors.KindBadSizeArg).
//		Value(12).
//		Detail("read of %d bytes past end", 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BadSize(errors.PhaseSeek, 12, 8)
//	err := errors.BadIndex(errors.PhasePack, 3, 1, 5)
//
// The Err* sentinels match on kind alone:
//
//	if errors.Is(err, dskerrors.ErrBadSizeArg) { ... }
package errors
