package csharp2pwsh

import (
	"github.com/rs/zerolog"

	"csharp2pwsh/internal/obslog"
)

// SetLogger lets a host (typically cmd/csharp2pwsh) install its own
// configured logger, e.g. to raise the level or change the writer. The
// logger is shared with frontend and writer through internal/obslog, so
// -debug also turns on their Debug-level call sites (SPEC_FULL.md,
// AMBIENT STACK), mirroring how pdelewski-goany's cmd/main.go gates its
// DebugLogPrintf calls on a command-line flag.
func SetLogger(l zerolog.Logger) {
	obslog.Set(l)
}

func currentLogger() zerolog.Logger {
	return *obslog.Current()
}
