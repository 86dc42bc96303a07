// Package obslog holds the single zerolog logger shared by csharp2pwsh,
// frontend, and writer. It exists only so those packages can all reach
// the same logger without an import cycle back through the root
// package (SPEC_FULL.md AMBIENT STACK: dialect selection, each
// ir.Unknown produced, and indent-depth return-to-zero all log through
// here at Debug level).
package obslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.Mutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Set installs l as the shared logger, e.g. to raise the level or
// change the writer.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Current returns the logger currently installed.
func Current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return &log
}
