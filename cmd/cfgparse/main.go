/*
Cfgparse reads a context-free grammar and a block of input strings, then
reports whether the grammar is LL(1), SLR(1), both, or neither, running the
resulting recognizer(s) against each input string.

Usage:

	cfgparse [flags]

The flags are:

	-v, --version
		Give the current version of the toolkit and then exit.

	-t, --tables
		Print the constructed LL(1) and/or SLR(1) parsing tables to stderr
		before reading input strings.

	-a, --allow-ambiguous
		Resolve SLR(1) shift/reduce conflicts in favor of shift instead of
		treating them as fatal construction errors.

	-d, --direct
		Force reading directly from stdin instead of going through GNU
		readline-based routines, even when launched in a tty.

Grammar and input are read from stdin in the line-oriented format described
in the toolkit's documentation: a line holding the number of grammar-rule
lines, that many grammar lines, and then zero or more input strings
terminated by a blank line (or, if the grammar is both LL(1) and SLR(1), a
parser-selection command).
*/
package main

import (
	"fmt"
	"os"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/driver"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/input"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var (
	returnCode int = driver.ExitSuccess

	flagVersion     *bool = pflag.BoolP("version", "v", false, "Gives the version info")
	flagTables      *bool = pflag.BoolP("tables", "t", false, "Print the constructed parsing tables to stderr")
	flagAmbiguous   *bool = pflag.BoolP("allow-ambiguous", "a", false, "Resolve SLR(1) shift/reduce conflicts in favor of shift")
	flagForceDirect *bool = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of using GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	// A non-TTY stdin (piped or redirected input) always gets the direct
	// reader: readline's own editing and history have nothing to attach to
	// and would only get in the way of a script feeding lines straight in.
	useDirect := *flagForceDirect || !isatty.IsTerminal(os.Stdin.Fd())

	var in grammar.LineReader
	if useDirect {
		in = input.NewDirectReader(os.Stdin)
	} else {
		rl, err := input.NewInteractiveReader("")
		if err != nil {
			in = input.NewDirectReader(os.Stdin)
		} else {
			defer rl.Close()
			in = rl
		}
	}

	opts := driver.Options{
		AllowAmbiguous: *flagAmbiguous,
		PrintTables:    *flagTables,
		Tables:         os.Stderr,
	}

	returnCode = driver.Run(in, os.Stdout, os.Stderr, opts)
}
