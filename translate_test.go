package csharp2pwsh_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"csharp2pwsh"
)

const minimalSource = `
namespace Demo
{
    class Greeter
    {
        void Greet()
        {
        }
    }
}
`

func TestTranslateFunctionDialect(t *testing.T) {
	text, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Source:  []byte(minimalSource),
		Dialect: csharp2pwsh.DialectFunction,
	}, csharp2pwsh.Options{})
	require.NoError(t, err)
	require.Contains(t, text, "function Greet")
}

func TestTranslateTypeDialect(t *testing.T) {
	text, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Source:  []byte(minimalSource),
		Dialect: csharp2pwsh.DialectType,
	}, csharp2pwsh.Options{})
	require.NoError(t, err)
	require.Contains(t, text, "class Greeter")
}

func TestTranslateWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.ps1")

	text, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Source:  []byte(minimalSource),
		Dialect: csharp2pwsh.DialectFunction,
	}, csharp2pwsh.Options{OutputPath: outPath})
	require.NoError(t, err)
	require.Empty(t, text)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(written), "function Greet")
}

func TestTranslateRejectsBrokenSource(t *testing.T) {
	_, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Source:  []byte("namespace Demo { class Broken {"),
		Dialect: csharp2pwsh.DialectFunction,
	}, csharp2pwsh.Options{})
	require.Error(t, err)

	var tErr *csharp2pwsh.TranspileError
	require.ErrorAs(t, err, &tErr)
	require.Equal(t, csharp2pwsh.ParseFailure, tErr.Kind)
}

func TestTranslateReadsFromPath(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in.cs")
	require.NoError(t, os.WriteFile(srcPath, []byte(minimalSource), 0o644))

	text, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Path:    srcPath,
		Dialect: csharp2pwsh.DialectFunction,
	}, csharp2pwsh.Options{})
	require.NoError(t, err)
	require.Contains(t, text, "function Greet")
}

func TestDialectString(t *testing.T) {
	require.Equal(t, "function", csharp2pwsh.DialectFunction.String())
	require.Equal(t, "type", csharp2pwsh.DialectType.String())
}

func TestTranslateStringAndInterpolatedStringLiterals(t *testing.T) {
	const source = `
namespace Demo
{
    class Greeter
    {
        void Greet()
        {
            string greeting = "Greeting";
            string message = $"Hello {greeting}";
        }
    }
}
`
	text, err := csharp2pwsh.Translate(csharp2pwsh.Input{
		Source:  []byte(source),
		Dialect: csharp2pwsh.DialectFunction,
	}, csharp2pwsh.Options{})
	require.NoError(t, err)
	require.Contains(t, text, "$greeting = 'Greeting'")
	require.Contains(t, text, `$message = "Hello {greeting}"`)
	require.NotContains(t, text, `'"Greeting"'`)
	require.NotContains(t, text, `\"`)
}
