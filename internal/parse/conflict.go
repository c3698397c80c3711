// Package parse builds LL(1) and SLR(1) parse tables from a grammar.Grammar
// and runs the corresponding stack-based recognizers against an input
// string. BuildLL1Table and BuildSLRTable collect every table conflict they
// find rather than stopping at the first, reporting them as Conflict
// values so a caller can tell a grammar is "neither" from specifically why.
package parse

import (
	"fmt"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
)

// ConflictKind classifies why a grammar failed to produce a deterministic
// table entry.
type ConflictKind int

const (
	// ConflictLL1 is two distinct productions both claiming the same
	// (nonterminal, lookahead) table cell.
	ConflictLL1 ConflictKind = iota
	// ConflictShiftReduce is a state with both a shift and a reduce action
	// defined for the same lookahead terminal.
	ConflictShiftReduce
	// ConflictReduceReduce is a state with two different reduce actions
	// defined for the same lookahead terminal.
	ConflictReduceReduce
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictLL1:
		return "LL(1) conflict"
	case ConflictShiftReduce:
		return "shift/reduce conflict"
	case ConflictReduceReduce:
		return "reduce/reduce conflict"
	default:
		return "conflict"
	}
}

// Conflict records one cell of a parse table that could not be assigned a
// single deterministic action. A grammar with any Conflict is not LL(1) (for
// ConflictLL1) or not SLR(1) (for the other two kinds).
type Conflict struct {
	Kind    ConflictKind
	State   string
	OnInput symbol.Symbol
	Detail  string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s in state %s on input %q: %s", c.Kind, c.State, c.OnInput, c.Detail)
}

func (c Conflict) Error() string { return c.String() }

func newLL1Conflict(nt symbol.Symbol, onInput symbol.Symbol, existing, candidate grammar.Production) Conflict {
	return Conflict{
		Kind:    ConflictLL1,
		State:   nt.String(),
		OnInput: onInput,
		Detail:  fmt.Sprintf("table cell already holds %q, cannot also hold %q", existing.String(), candidate.String()),
	}
}

func newShiftReduceConflict(state string, onInput symbol.Symbol, reduceProd grammar.Production) Conflict {
	return Conflict{
		Kind:    ConflictShiftReduce,
		State:   state,
		OnInput: onInput,
		Detail:  fmt.Sprintf("shift or reduce by %q", reduceProd.String()),
	}
}

func newReduceReduceConflict(state string, onInput symbol.Symbol, p1, p2 grammar.Production) Conflict {
	return Conflict{
		Kind:    ConflictReduceReduce,
		State:   state,
		OnInput: onInput,
		Detail:  fmt.Sprintf("reduce by %q or reduce by %q", p1.String(), p2.String()),
	}
}
