package cdlod

import (
	"fmt"

	"github.com/gogpu/cdlod/coreerr"
)

// Sentinel and typed errors for the five error kinds of the terrain core
// (§7). These are defined in coreerr and re-exported here as aliases so
// that sub-packages (streaming, heightfield) can return and wrap the same
// error identities without importing this package back.
var (
	// ErrNotFound is returned when an input heightmap, chunk file, or cache
	// file required by the offline path is missing.
	ErrNotFound = coreerr.ErrNotFound

	// ErrFormatMismatch is returned when a chunk file or cache metadata file
	// has an unexpected version or layout.
	ErrFormatMismatch = coreerr.ErrFormatMismatch

	// ErrChunkPoolExhausted names the condition where the chunk pool has
	// no free chunk and no recyclable one. No function in the module
	// returns it: the selector defers the tile's request and tries again
	// on a later frame.
	ErrChunkPoolExhausted = coreerr.ErrChunkPoolExhausted

	// ErrGPU wraps an error returned by the consumed GPU interface. It is
	// unrecoverable; callers should propagate it up and terminate the frame
	// loop.
	ErrGPU = coreerr.ErrGPU

	// ErrNilAdapter is returned when New is called with a nil GPU adapter.
	ErrNilAdapter = coreerr.ErrNilAdapter
)

// FormatMismatchError carries the detail of a version mismatch between a
// chunk/cache file on disk and what the reader expects.
type FormatMismatchError = coreerr.FormatMismatchError

// NotFoundError carries the path of a missing input.
type NotFoundError = coreerr.NotFoundError

// assertLogic panics with a LogicError-style message when cond is false
// (§7 LogicError). No code in the module calls it, and no build tag
// gates it. The upload-without-chunk case is handled by the streaming
// worker, which logs at Debug level and drops the request instead of
// panicking; chunk owner back-references are not checked anywhere.
func assertLogic(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("cdlod: logic error: "+format, args...))
	}
}
