// Command csharp2pwsh translates a single C# source file into PowerShell
// text, selecting the rendering dialect via -dialect (spec.md §6.5).
// Its flag surface and colorized success banner are grounded on
// pdelewski-goany/cmd/main.go's own -source/-output/-debug CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"csharp2pwsh"
)

func main() {
	var source string
	var output string
	var dialect string
	var debug bool

	flag.StringVar(&source, "source", "", "Path to a C# source file, or - to read from stdin")
	flag.StringVar(&output, "output", "", "Output file path (prints to stdout when empty)")
	flag.StringVar(&dialect, "dialect", "function", "Rendering dialect: function (default) or type")
	flag.BoolVar(&debug, "debug", false, "Enable debug-level logging")
	flag.Parse()

	if debug {
		csharp2pwsh.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.DebugLevel))
	}

	if source == "" {
		fmt.Println("Please provide a source file with -source")
		os.Exit(1)
	}

	var src []byte
	var err error
	if source == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(source)
	}
	if err != nil {
		fmt.Printf("\033[31m\033[1mError: could not read %s\033[0m: %v\n", source, err)
		os.Exit(1)
	}

	var d csharp2pwsh.Dialect
	switch dialect {
	case "type":
		d = csharp2pwsh.DialectType
	case "function":
		d = csharp2pwsh.DialectFunction
	default:
		fmt.Printf("\033[31m\033[1mError: unknown dialect %q\033[0m (want \"function\" or \"type\")\n", dialect)
		os.Exit(1)
	}

	text, err := csharp2pwsh.Translate(
		csharp2pwsh.Input{Source: src, Dialect: d},
		csharp2pwsh.Options{OutputPath: output},
	)
	if err != nil {
		fmt.Printf("\033[31m\033[1mError: translation failed\033[0m: %v\n", err)
		os.Exit(1)
	}

	if output == "" {
		fmt.Println(text)
		return
	}

	green := "\033[32m"
	bold := "\033[1m"
	reset := "\033[0m"
	fmt.Printf("\n%s%s✓%s Translation successful!\n", bold, green, reset)
	fmt.Printf("%s  Dialect:%s %s\n", green, reset, d)
	fmt.Printf("%s  Written:%s %s\n", green, reset, output)
}
