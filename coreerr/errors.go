// Package coreerr holds the sentinel and typed errors shared by the
// terrain core and its sub-packages. It exists as its own leaf package
// so that streaming and heightfield can return the exact same error
// identities the root package exposes without importing the root
// package (which imports them back, forming a cycle).
package coreerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the terrain core's error kinds.
//
// NotFound and FormatMismatch are returned by the offline preprocessor,
// which fails loudly, and are logged-and-continued by runtime paths that
// treat a missing tile as an empty heightfield.
//
// ChunkPoolExhausted and GPU are runtime conditions: the former is
// recoverable (the request is deferred), the latter is not.
var (
	// ErrNotFound is returned when an input heightmap, chunk file, or cache
	// file required by the offline path is missing.
	ErrNotFound = errors.New("cdlod: not found")

	// ErrFormatMismatch is returned when a chunk file or cache metadata file
	// has an unexpected version or layout.
	ErrFormatMismatch = errors.New("cdlod: format mismatch")

	// ErrChunkPoolExhausted names the condition where the chunk pool has
	// no free chunk and no recyclable one. No function in the module
	// returns it: the selector defers the tile's request and tries again
	// on a later frame.
	ErrChunkPoolExhausted = errors.New("cdlod: chunk pool exhausted")

	// ErrGPU wraps an error returned by the consumed GPU interface. It is
	// unrecoverable; callers should propagate it up and terminate the frame
	// loop.
	ErrGPU = errors.New("cdlod: gpu error")

	// ErrNilAdapter is returned when New is called with a nil GPU adapter.
	ErrNilAdapter = errors.New("cdlod: gpu adapter is required")
)

// FormatMismatchError carries the detail of a version mismatch between a
// chunk/cache file on disk and what the reader expects.
type FormatMismatchError struct {
	Path     string
	Expected uint32
	Got      uint32
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("cdlod: %s: expected format version %d, got %d", e.Path, e.Expected, e.Got)
}

func (e *FormatMismatchError) Unwrap() error { return ErrFormatMismatch }

// NotFoundError carries the path of a missing input.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cdlod: %s not found: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return errors.Join(ErrNotFound, e.Err) }
