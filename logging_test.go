package csharp2pwsh

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetLoggerInstallsProvidedLogger(t *testing.T) {
	original := currentLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	custom := zerolog.New(&buf).Level(zerolog.DebugLevel)

	SetLogger(custom)
	logger := currentLogger()
	logger.Debug().Msg("probe")
	require.Contains(t, buf.String(), "probe")
}
