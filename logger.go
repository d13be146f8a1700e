package cdlod

import (
	"log/slog"

	"github.com/gogpu/cdlod/corelog"
)

// SetLogger configures the logger used by the terrain core and its
// sub-packages. By default the module produces no log output. Pass nil to
// restore silent behavior.
//
// Log levels:
//   - [slog.LevelDebug]: the streaming worker's tile uploads, and queued tiles that lost their chunk
//   - [slog.LevelWarn]: missing tile cache payloads (read as empty) and failed payload reads
//
// Nothing in the core logs at [slog.LevelInfo]. gpuadapter logs through
// its own Options.Logger, not through this logger.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	corelog.Set(l)
}

// Logger returns the current logger. Sub-packages (streaming) call
// corelog.Get directly for the same shared logger, since importing
// this package from them would cycle back against this package's own
// imports of them.
func Logger() *slog.Logger {
	return corelog.Get()
}
