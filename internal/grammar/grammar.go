// Package grammar implements the context-free grammar data model and the
// FIRST/FOLLOW fixed-point engine that the LL(1) and SLR(1) builders in
// package parse both depend on.
package grammar

import (
	"fmt"
	"strings"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/ictioerrors"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/util"
)

// Symbol re-exports symbol.Symbol so callers outside this package rarely
// need to import both; the grammar API is expressed entirely in terms of
// it.
type Symbol = symbol.Symbol

// Production is a rewrite rule LHS -> RHS. An empty right-hand side is
// represented as the length-1 sequence [Epsilon], never as a zero-length
// slice; every algorithm in this module treats that sequence as having
// effective length 0.
type Production struct {
	LHS Symbol
	RHS []Symbol
}

// IsEpsilon reports whether p's right-hand side is the ε-production.
func (p Production) IsEpsilon() bool {
	return len(p.RHS) == 1 && p.RHS[0].IsEpsilon()
}

// Equal reports whether two productions have identical LHS and RHS.
func (p Production) Equal(o Production) bool {
	if p.LHS != o.LHS || len(p.RHS) != len(o.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != o.RHS[i] {
			return false
		}
	}
	return true
}

// String renders a production as "A -> X Y Z".
func (p Production) String() string {
	parts := make([]string, len(p.RHS))
	for i, s := range p.RHS {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s -> %s", p.LHS, strings.Join(parts, " "))
}

// StartSymbol is the grammar's fixed start nonterminal, S.
var StartSymbol = symbol.NonTerm('S')

// Grammar is an immutable value: once built by New or Parse, its production
// list, symbol inventories, and FIRST/FOLLOW sets never change. This makes
// it safe to share a single Grammar across the LL(1) builder, the SLR(1)
// builder, and any number of concurrent recognitions (§5).
type Grammar struct {
	productions  []Production
	nonTerminals []Symbol
	terminals    []Symbol
	index        map[Symbol][]Production
	first        map[Symbol]util.KeySet[Symbol]
	follow       map[Symbol]util.KeySet[Symbol]
	augmented    bool
}

// New builds a Grammar directly from an already-parsed production list. The
// start symbol is always symbol S; FIRST and FOLLOW are computed
// immediately so every Grammar value returned from this package is fully
// analyzed and read-only from then on.
func New(productions []Production) Grammar {
	g := Grammar{
		productions: productions,
		index:       map[Symbol][]Production{},
	}

	ntSeen := util.NewKeySet[Symbol]()
	tSeen := util.NewKeySet[Symbol]()

	for _, p := range productions {
		if !ntSeen.Has(p.LHS) {
			ntSeen.Add(p.LHS)
			g.nonTerminals = append(g.nonTerminals, p.LHS)
		}
		g.index[p.LHS] = append(g.index[p.LHS], p)

		for _, s := range p.RHS {
			switch {
			case s.IsNonTerminal() && !ntSeen.Has(s):
				ntSeen.Add(s)
				g.nonTerminals = append(g.nonTerminals, s)
			case s.IsTerminal() && !tSeen.Has(s):
				tSeen.Add(s)
				g.terminals = append(g.terminals, s)
			}
		}
	}

	sortSymbols(g.nonTerminals)
	sortSymbols(g.terminals)

	g.computeFirst()
	g.computeFollow()

	return g
}

func sortSymbols(syms []Symbol) {
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && syms[j].Less(syms[j-1]); j-- {
			syms[j], syms[j-1] = syms[j-1], syms[j]
		}
	}
}

// StartSymbol returns the grammar's start symbol, S.
func (g Grammar) StartSymbol() Symbol { return StartSymbol }

// Productions returns every production in source order.
func (g Grammar) Productions() []Production { return g.productions }

// NonTerminals returns every nonterminal of the grammar (every LHS, plus
// any nonterminal appearing on some RHS), in the §3 total order.
func (g Grammar) NonTerminals() []Symbol { return g.nonTerminals }

// Terminals returns every terminal appearing on some RHS, in the §3 total
// order.
func (g Grammar) Terminals() []Symbol { return g.terminals }

// Rule returns the productions whose left-hand side is nt, in source order.
func (g Grammar) Rule(nt Symbol) []Production { return g.index[nt] }

// IsAugmented reports whether g is the result of calling Augmented.
func (g Grammar) IsAugmented() bool { return g.augmented }

// Augmented returns a new grammar with a synthetic production S' -> S
// added, where S' (symbol.AugmentedStart) cannot collide with any
// user-defined nonterminal. The augmented production set exists only for
// the SLR(1) automaton; FIRST and FOLLOW are carried over unchanged from g
// rather than recomputed, since §4.E specifies they are computed on the
// original grammar.
func (g Grammar) Augmented() Grammar {
	augStart := symbol.AugmentedStart()
	augProd := Production{LHS: augStart, RHS: []Symbol{g.StartSymbol()}}

	productions := make([]Production, 0, len(g.productions)+1)
	productions = append(productions, augProd)
	productions = append(productions, g.productions...)

	aug := Grammar{
		productions:  productions,
		nonTerminals: append([]Symbol{augStart}, g.nonTerminals...),
		terminals:    g.terminals,
		index:        map[Symbol][]Production{augStart: {augProd}},
		first:        g.first,
		follow:       g.follow,
		augmented:    true,
	}
	for nt, prods := range g.index {
		aug.index[nt] = prods
	}
	return aug
}

// Copy returns a value copy of g. Because Grammar's slices and maps are
// never mutated after New/Augmented builds them, a shallow copy is a true
// copy for every purpose this module needs.
func (g Grammar) Copy() Grammar { return g }

// Parse builds a Grammar from the exact production-line format of §4.A: one
// line per production group, shaped "X -> α₁ α₂ … αₖ" where X is a single
// uppercase letter, the separator is the literal three-character sequence
// " -> ", and alternatives are separated by runs of spaces. lineOffset is
// added to each 1-based line index for error messages, letting callers that
// stripped a leading count line report accurate positions.
func Parse(lines []string, lineOffset int) (Grammar, error) {
	if len(lines) == 0 {
		return Grammar{}, ictioerrors.NewConstructionError(ictioerrors.KindEmptyInput, "grammar has no production lines")
	}

	var productions []Production
	for i, line := range lines {
		lineNo := lineOffset + i + 1
		prods, err := parseProductionLine(line, lineNo)
		if err != nil {
			return Grammar{}, err
		}
		productions = append(productions, prods...)
	}

	return New(productions), nil
}

// MustParse is like Parse but panics on error; it exists for tests and
// other call sites that construct grammars from literal source they already
// know to be well-formed.
func MustParse(lines ...string) Grammar {
	g, err := Parse(lines, 0)
	if err != nil {
		panic(err.Error())
	}
	return g
}

func parseProductionLine(line string, lineNo int) ([]Production, error) {
	const arrow = " -> "

	idx := strings.Index(line, arrow)
	if idx < 0 {
		return nil, ictioerrors.NewLineError(ictioerrors.KindMissingArrow, lineNo, "missing \" -> \" in production line %q", line)
	}

	lhsPart := line[:idx]
	rhsPart := line[idx+len(arrow):]

	if len(lhsPart) != 1 || lhsPart[0] < 'A' || lhsPart[0] > 'Z' {
		return nil, ictioerrors.NewLineError(ictioerrors.KindBadNonTerminal, lineNo, "left-hand side %q is not a single uppercase letter", lhsPart)
	}
	lhs := symbol.NonTerm(lhsPart[0])

	alts := strings.Fields(rhsPart)
	if len(alts) == 0 {
		return nil, ictioerrors.NewLineError(ictioerrors.KindEmptyAlternative, lineNo, "production line for %q has no alternatives", lhsPart)
	}

	prods := make([]Production, 0, len(alts))
	for _, alt := range alts {
		rhs := make([]Symbol, 0, len(alt))
		for i := 0; i < len(alt); i++ {
			rhs = append(rhs, symbol.FromChar(alt[i]))
		}
		prods = append(prods, Production{LHS: lhs, RHS: rhs})
	}
	return prods, nil
}

// LineReader is the minimal line-source interface the driver's input
// abstractions (direct and readline-backed) both satisfy, so ReadBlock
// does not care whether its lines came from a pipe or a terminal.
type LineReader interface {
	ReadLine() (string, error)
}

// ReadBlock reads the §6 grammar block (a count line n followed by n
// production lines) from lr and parses it into a Grammar. A count line that
// is empty when lr reports an error (io.EOF included), a count that is not a
// positive integer, or an empty read with an error (io.EOF included) before
// n production lines have been read, is a fatal construction error.
func ReadBlock(lr LineReader) (Grammar, error) {
	countLine, err := lr.ReadLine()
	countLine = strings.TrimSpace(countLine)
	if countLine == "" && err != nil {
		return Grammar{}, ictioerrors.NewConstructionError(ictioerrors.KindEmptyInput, "empty input: expected a production count")
	}

	var n int
	if _, scanErr := fmt.Sscanf(countLine, "%d", &n); scanErr != nil || n <= 0 {
		return Grammar{}, ictioerrors.NewLineError(ictioerrors.KindEmptyInput, 1, "expected a positive production count, got %q", countLine)
	}

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, readErr := lr.ReadLine()
		if line == "" && readErr != nil {
			return Grammar{}, ictioerrors.WrapConstructionError(ictioerrors.KindTooFewProductions, readErr, "expected %d production lines, got %d before end of input", n, i)
		}
		lines = append(lines, line)
	}

	return Parse(lines, 1)
}
