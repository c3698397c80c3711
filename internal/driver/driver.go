// Package driver wires the grammar, parse, and automaton packages together
// into the behavior described at the interface level: read a grammar, try
// to build an LL(1) parser and an SLR(1) parser, then dispatch to one of
// four cases (both, LL(1)-only, SLR(1)-only, neither), driving input
// strings through whichever recognizer(s) were built. It is a pure
// function of its inputs and outputs — no globals, no package state — so
// it stays testable without a subprocess and the cmd/ shell stays thin.
package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/parse"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
)

// Exit codes. These are the only values Run returns; cmd/cfgparse passes
// them straight to os.Exit.
const (
	ExitSuccess = 0
	ExitMalformedGrammar = 1
	ExitIOFailure = 2
)

// Options configures optional, non-conformance-affecting behavior: table
// dumps and the SLR(1) ambiguous-grammar resolution mode. The zero value
// reproduces exactly the required §6 behavior.
type Options struct {
	// AllowAmbiguous enables the SLR(1) builder's shift-preferring conflict
	// resolution instead of treating every shift/reduce conflict as fatal.
	AllowAmbiguous bool

	// PrintTables, if set, writes the constructed LL(1) and/or SLR(1)
	// tables to Tables before entering the normal output flow.
	PrintTables bool

	// Tables receives table dumps when PrintTables is set. Ignored
	// otherwise; may be nil.
	Tables io.Writer

	// Trace, if non-nil, receives one line per recognized input string,
	// giving the string and the recognizer's verdict; individual stack
	// steps are not reported. Never affects the required output on out.
	Trace func(string)
}

// Run reads a grammar block from in, then dispatches per §4.F, writing all
// conformance-required output to out and fatal error messages to errOut. It
// returns the process exit code Run's caller should use.
func Run(in grammar.LineReader, out, errOut io.Writer, opts Options) int {
	g, err := grammar.ReadBlock(in)
	if err != nil {
		fmt.Fprintf(errOut, "ERROR: %s\n", err.Error())
		return ExitMalformedGrammar
	}

	ll1Table, _, ll1Err := parse.BuildLL1Table(g)
	ll1OK := ll1Err == nil

	slrTable, _, slrErr := parse.BuildSLRTable(g, opts.AllowAmbiguous)
	slrOK := slrErr == nil

	if opts.PrintTables && opts.Tables != nil {
		if ll1OK {
			fmt.Fprintln(opts.Tables, ll1Table.String())
		}
		if slrOK {
			fmt.Fprintln(opts.Tables, slrTable.String())
		}
	}

	d := &dispatcher{
		g:      g,
		in:     in,
		out:    out,
		errOut: errOut,
		trace:  opts.Trace,
	}

	switch {
	case ll1OK && slrOK:
		return d.repl(parse.NewLL1Parser(g, ll1Table), parse.NewSLRParser(g, slrTable))
	case ll1OK:
		fmt.Fprint(out, "Grammar is LL(1).\n")
		return d.runStringBlock(func(syms []symbol.Symbol) (bool, error) {
			return parse.NewLL1Parser(g, ll1Table).Recognize(syms)
		})
	case slrOK:
		fmt.Fprint(out, "Grammar is SLR(1).\n")
		return d.runStringBlock(func(syms []symbol.Symbol) (bool, error) {
			return parse.NewSLRParser(g, slrTable).Recognize(syms)
		})
	default:
		fmt.Fprint(out, "Grammar is neither LL(1) nor SLR(1).\n")
		return ExitSuccess
	}
}

type dispatcher struct {
	g      grammar.Grammar
	in     grammar.LineReader
	out    io.Writer
	errOut io.Writer
	trace  func(string)
}

// runStringBlock reads lines until a blank line or EOF, symbolizing and
// recognizing each with recognize, printing "yes"/"no" per line.
func (d *dispatcher) runStringBlock(recognize func([]symbol.Symbol) (bool, error)) int {
	for {
		line, err := d.in.ReadLine()
		if line == "" {
			if err != nil && err != io.EOF {
				fmt.Fprintf(d.errOut, "ERROR: %s\n", err.Error())
				return ExitIOFailure
			}
			// Blank line or clean EOF both terminate the block.
			return ExitSuccess
		}

		ok, recErr := recognize(toSymbols(line))
		d.notifyTrace("recognize %q -> accepted=%v err=%v", line, ok, recErr)
		if ok {
			fmt.Fprintln(d.out, "yes")
		} else {
			fmt.Fprintln(d.out, "no")
		}

		if err == io.EOF {
			return ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(d.errOut, "ERROR: %s\n", err.Error())
			return ExitIOFailure
		}
	}
}

// repl implements the §6 "both" case: print the selection prompt, read a
// command, and either run a string block with the chosen recognizer or
// re-prompt.
func (d *dispatcher) repl(ll1 parse.LL1Parser, slr parse.SLRParser) int {
	const prompt = "Select a parser (T: for LL(1), B: for SLR(1), Q: quit):\n"

	for {
		fmt.Fprint(d.out, prompt)

		line, err := d.in.ReadLine()
		cmd := strings.TrimSpace(line)

		switch cmd {
		case "T", "t":
			if code, done := d.runBlockInRepl(func(syms []symbol.Symbol) (bool, error) { return ll1.Recognize(syms) }); done {
				return code
			}
		case "B", "b":
			if code, done := d.runBlockInRepl(func(syms []symbol.Symbol) (bool, error) { return slr.Recognize(syms) }); done {
				return code
			}
		case "Q", "q":
			return ExitSuccess
		default:
			// Unrecognized command: re-prompt without consuming strings,
			// unless we've also hit end of input, in which case there is
			// nothing left to prompt for.
			if err == io.EOF {
				return ExitSuccess
			}
			if err != nil {
				fmt.Fprintf(d.errOut, "ERROR: %s\n", err.Error())
				return ExitIOFailure
			}
			continue
		}

		if err == io.EOF {
			return ExitSuccess
		}
	}
}

// runBlockInRepl runs one string block inside the REPL loop. done is true
// when the driver should stop entirely (end of input or I/O failure); otherwise control
// returns to repl to print the prompt again.
func (d *dispatcher) runBlockInRepl(recognize func([]symbol.Symbol) (bool, error)) (code int, done bool) {
	for {
		line, err := d.in.ReadLine()
		if line == "" {
			if err != nil && err != io.EOF {
				fmt.Fprintf(d.errOut, "ERROR: %s\n", err.Error())
				return ExitIOFailure, true
			}
			return ExitSuccess, err == io.EOF
		}

		ok, recErr := recognize(toSymbols(line))
		d.notifyTrace("recognize %q -> accepted=%v err=%v", line, ok, recErr)
		if ok {
			fmt.Fprintln(d.out, "yes")
		} else {
			fmt.Fprintln(d.out, "no")
		}

		if err == io.EOF {
			return ExitSuccess, true
		}
		if err != nil {
			fmt.Fprintf(d.errOut, "ERROR: %s\n", err.Error())
			return ExitIOFailure, true
		}
	}
}

func (d *dispatcher) notifyTrace(format string, args ...interface{}) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

// toSymbols symbolizes one input line character by character, per the §3
// convention; it never appends an end marker itself (the recognizers do).
func toSymbols(line string) []symbol.Symbol {
	out := make([]symbol.Symbol, len(line))
	for i := 0; i < len(line); i++ {
		out[i] = symbol.FromChar(line[i])
	}
	return out
}
