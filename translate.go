// Package csharp2pwsh exposes the single entry point that wires the
// front-end and a dialect-selected writer together (spec.md §6.1).
package csharp2pwsh

import (
	"fmt"
	"os"

	"csharp2pwsh/csxtree"
	"csharp2pwsh/frontend"
	"csharp2pwsh/ir"
	"csharp2pwsh/writer"
)

// Dialect selects which writer renders the IR (spec.md §6.2).
type Dialect int

const (
	// DialectFunction renders standalone script functions and C-style
	// control flow (spec.md §4.3).
	DialectFunction Dialect = iota
	// DialectType renders PowerShell 5+ class syntax (spec.md §4.4).
	DialectType
)

func (d Dialect) String() string {
	switch d {
	case DialectFunction:
		return "function"
	case DialectType:
		return "type"
	default:
		return "unknown"
	}
}

// Input is the source to translate and the dialect to render it in.
// Exactly one of Source or Path is expected to be set (spec.md §6: "input
// as either literal source text or a filesystem path"); when both are
// empty, Translate parses an empty source, which renders as an empty
// namespace rather than failing. When Path is set and Source is not,
// Translate reads the file itself.
type Input struct {
	Source  []byte
	Path    string
	Dialect Dialect
}

// Options controls where the rendered text is written (spec.md §6.4).
// OutputPath is optional; when empty, Translate returns the rendered
// text. When set, Translate writes the text to that path and returns an
// empty string instead.
type Options struct {
	OutputPath string
}

// dialectWriter is the shape both FunctionWriter and TypeWriter satisfy:
// a single entry point taking the IR root and returning rendered text.
type dialectWriter interface {
	Write(root ir.Node) (string, error)
}

// Translate parses in.Source (or the file at in.Path) as C#, translates
// it to IR, and renders it through the dialect-selected writer. A
// syntactically broken input yields a *TranspileError with Kind ==
// ParseFailure, and an error reported by the writer yields one with Kind
// == WriterFault. Failures to read in.Path or to write opts.OutputPath
// are returned as wrapped standard errors. Unsupported constructs never
// fail the call; they render in-band as ir.Unknown (spec.md §7).
func Translate(in Input, opts Options) (string, error) {
	logger := currentLogger()

	source := in.Source
	if len(source) == 0 && in.Path != "" {
		data, err := os.ReadFile(in.Path)
		if err != nil {
			logger.Error().Err(err).Str("path", in.Path).Msg("could not read input path")
			return "", fmt.Errorf("csharp2pwsh: reading input: %w", err)
		}
		source = data
	}

	tree, diag, err := csxtree.Parse(source)
	if err != nil {
		logger.Error().Err(err).Msg("csxtree parse failed")
		return "", newParseFailure("front-end could not parse source", err.Error())
	}
	if diag != nil {
		logger.Warn().Str("diagnostic", diag.String()).Msg("parse produced an error node")
		return "", newParseFailure("source contains a syntax error", diag.String())
	}

	root := frontend.Visit(tree)

	logger.Debug().Str("dialect", in.Dialect.String()).Msg("dialect selected")

	var w dialectWriter
	switch in.Dialect {
	case DialectType:
		w = writer.NewTypeWriter()
	default:
		w = writer.NewFunctionWriter()
	}

	text, err := w.Write(root)
	if err != nil {
		return "", newWriterFault(err.Error())
	}

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, []byte(text), 0o644); err != nil {
			return "", fmt.Errorf("csharp2pwsh: writing output: %w", err)
		}
		return "", nil
	}

	return text, nil
}
