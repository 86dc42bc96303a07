package csharp2pwsh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindString(t *testing.T) {
	require.Equal(t, "ParseFailure", ParseFailure.String())
	require.Equal(t, "WriterFault", WriterFault.String())
	require.Equal(t, "Unknown", ErrorKind(99).String())
}

func TestTranspileErrorFormatsWithoutDiagnostic(t *testing.T) {
	err := newWriterFault("no reachable arm")
	require.EqualError(t, err, "WriterFault: no reachable arm")
}

func TestTranspileErrorFormatsWithDiagnostic(t *testing.T) {
	err := newParseFailure("source contains a syntax error", "line 3: unexpected token")
	require.EqualError(t, err, "ParseFailure: source contains a syntax error (line 3: unexpected token)")
}

func TestTranspileErrorKindField(t *testing.T) {
	err := newParseFailure("bad input", "")
	require.Equal(t, ParseFailure, err.Kind)
	require.Empty(t, err.Diagnostic)
}
