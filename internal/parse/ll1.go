package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/ictioerrors"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/util"
)

type ll1Key struct {
	NT   symbol.Symbol
	Term symbol.Symbol
}

// LL1Table is the predictive parsing table M[A, a] built by BuildLL1Table:
// for each nonterminal A and terminal (or end-marker) a, the single
// production to apply when A is on top of the stack and a is the next
// input symbol.
type LL1Table struct {
	cells map[ll1Key]grammar.Production
	g     grammar.Grammar
}

// Get returns the production recorded for (nt, lookahead), and whether one
// exists.
func (t LL1Table) Get(nt, lookahead symbol.Symbol) (grammar.Production, bool) {
	p, ok := t.cells[ll1Key{NT: nt, Term: lookahead}]
	return p, ok
}

// BuildLL1Table constructs the LL(1) predictive parsing table for g. It
// implements the standard table-construction rule: for each production
// A -> β, add A -> β to M[A, a] for every a in FIRST(β), and, if ε is in
// FIRST(β), to M[A, b] for every b in FOLLOW(A) (using the grammar's
// end-marker in place of "$").
//
// Every colliding cell is recorded as a Conflict and does not abort
// construction; callers that need a hard LL(1)/not-LL(1) verdict check
// whether the returned conflict slice is empty.
func BuildLL1Table(g grammar.Grammar) (LL1Table, []Conflict, error) {
	table := LL1Table{cells: map[ll1Key]grammar.Production{}, g: g}
	var conflicts []Conflict

	set := func(nt, lookahead symbol.Symbol, prod grammar.Production) {
		key := ll1Key{NT: nt, Term: lookahead}
		if existing, ok := table.cells[key]; ok {
			if !existing.Equal(prod) {
				conflicts = append(conflicts, newLL1Conflict(nt, lookahead, existing, prod))
			}
			return
		}
		table.cells[key] = prod
	}

	for _, prod := range g.Productions() {
		firstBeta, derivesEpsilon := g.FirstOfSequence(prod.RHS)
		for _, a := range firstBeta.Elements() {
			if a.IsEpsilon() {
				continue
			}
			set(prod.LHS, a, prod)
		}
		if derivesEpsilon {
			for _, b := range g.FOLLOW(prod.LHS).Elements() {
				set(prod.LHS, b, prod)
			}
		}
	}

	if len(conflicts) > 0 {
		return table, conflicts, ictioerrors.NewConstructionError(ictioerrors.KindLL1Conflict, "grammar is not LL(1): %d table conflict(s)", len(conflicts))
	}
	return table, nil, nil
}

// String renders the table as a nonterminal-by-terminal grid, one row per
// nonterminal, one column per terminal plus the end marker.
func (t LL1Table) String() string {
	terms := append([]symbol.Symbol{}, t.g.Terminals()...)
	terms = append(terms, symbol.EndMarker)

	headers := []string{"M"}
	for _, term := range terms {
		headers = append(headers, term.String())
	}
	data := [][]string{headers}

	nts := append([]symbol.Symbol{}, t.g.NonTerminals()...)
	sort.Slice(nts, func(i, j int) bool { return nts[i].Less(nts[j]) })

	for _, nt := range nts {
		row := []string{nt.String()}
		for _, term := range terms {
			cell := ""
			if prod, ok := t.Get(nt, term); ok {
				cell = prod.String()
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// LL1Parser recognizes strings of terminals against a grammar's LL(1)
// table using the classic stack-based predictive parsing algorithm.
type LL1Parser struct {
	table LL1Table
	g     grammar.Grammar
}

// NewLL1Parser builds a recognizer for g, which must already be LL(1); call
// BuildLL1Table first and check for conflicts.
func NewLL1Parser(g grammar.Grammar, table LL1Table) LL1Parser {
	return LL1Parser{table: table, g: g.Copy()}
}

// Recognize reports whether input (a sequence of terminal symbols, with no
// end marker) is accepted by the grammar. On rejection, the returned error
// describes the symbol and stack position at which recognition failed.
func (p LL1Parser) Recognize(input []symbol.Symbol) (bool, error) {
	stack := util.Stack[symbol.Symbol]{Of: []symbol.Symbol{symbol.EndMarker, p.g.StartSymbol()}}
	pos := 0

	peek := func() symbol.Symbol {
		if pos < len(input) {
			return input[pos]
		}
		return symbol.EndMarker
	}

	for {
		top := stack.Peek()
		a := peek()

		switch {
		case top.IsEndMarker():
			if a.IsEndMarker() {
				return true, nil
			}
			return false, fmt.Errorf("unexpected symbol %q after end of input was expected", a)

		case top.IsTerminal():
			if top == a {
				stack.Pop()
				pos++
				continue
			}
			return false, fmt.Errorf("expected %q, found %q", top, a)

		default: // nonterminal
			prod, ok := p.table.Get(top, a)
			if !ok {
				return false, fmt.Errorf("no rule for %q on lookahead %q", top, a)
			}
			stack.Pop()
			if !prod.IsEpsilon() {
				for i := len(prod.RHS) - 1; i >= 0; i-- {
					stack.Push(prod.RHS[i])
				}
			}
		}
	}
}
