package parse

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/automaton"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/ictioerrors"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
)

// SLRTable is the ACTION/GOTO table of an SLR(1) parser: a canonical
// collection of LR(0) item sets (see package automaton) plus, per state and
// terminal, the single action recorded by BuildSLRTable.
type SLRTable struct {
	aug        grammar.Grammar
	coll       *automaton.Collection
	gStart     symbol.Symbol
	gTerms     []symbol.Symbol
	gNonTerms  []symbol.Symbol
	action     map[actionKey]LRAction
	allowAmbig bool
}

type actionKey struct {
	State int
	Term  symbol.Symbol
}

// BuildSLRTable constructs the SLR(1) ACTION/GOTO table for g following
// Algorithm 4.46 ("Constructing an SLR-parsing table") applied over g's
// canonical collection of LR(0) item sets: for item [A -> α.aβ] with a a
// terminal and GOTO(Ii, a) = Ij, ACTION[i, a] is shift j; for a complete
// item [A -> α.] with A != S', ACTION[i, a] is reduce A -> α for every a in
// FOLLOW(A); and ACTION[i, $] is accept when [S' -> S.] is in Ii.
//
// When allowAmbiguous is true, shift/reduce conflicts are resolved in favor
// of shift and recorded as Conflicts rather than aborting construction;
// reduce/reduce conflicts are never tolerated. When allowAmbiguous is
// false, any conflict at all is fatal.
func BuildSLRTable(g grammar.Grammar, allowAmbiguous bool) (*SLRTable, []Conflict, error) {
	aug := g.Augmented()
	coll := automaton.BuildCollection(aug)

	table := &SLRTable{
		aug:        aug,
		coll:       coll,
		gStart:     g.StartSymbol(),
		gTerms:     g.Terminals(),
		gNonTerms:  g.NonTerminals(),
		action:     map[actionKey]LRAction{},
		allowAmbig: allowAmbiguous,
	}

	allTerms := append([]symbol.Symbol{}, g.Terminals()...)
	allTerms = append(allTerms, symbol.EndMarker)

	var conflicts []Conflict
	augStart := symbol.AugmentedStart()

	for state := range coll.States {
		for _, a := range allTerms {
			act, stateConflicts := table.computeAction(state, a, augStart)
			conflicts = append(conflicts, stateConflicts...)
			if act.Type != LRError {
				table.action[actionKey{State: state, Term: a}] = act
			}
		}
	}

	fatal := false
	kind := ictioerrors.KindShiftReduceConflict
	for _, c := range conflicts {
		if c.Kind == ConflictReduceReduce {
			kind = ictioerrors.KindReduceReduceConflict
		}
		if c.Kind == ConflictReduceReduce || !allowAmbiguous {
			fatal = true
		}
	}
	if fatal {
		return table, conflicts, ictioerrors.NewConstructionError(kind, "grammar is not SLR(1): %d conflict(s)", len(conflicts))
	}
	return table, conflicts, nil
}

func (t *SLRTable) computeAction(state int, a symbol.Symbol, augStart symbol.Symbol) (LRAction, []Conflict) {
	var act LRAction
	var set bool
	var conflicts []Conflict
	stateName := fmt.Sprintf("%d", state)

	items := t.coll.StateOf(state)
	for _, it := range items {
		next, hasNext := it.NextSymbol()

		if hasNext && next == a && a.IsTerminal() {
			if j, ok := t.coll.Next(state, a); ok {
				shiftAct := LRAction{Type: LRShift, State: j}
				act, conflicts = t.merge(act, set, shiftAct, stateName, a, conflicts)
				set = true
			}
		}

		if it.IsReduce() && it.Prod.LHS != augStart {
			if t.aug.FOLLOW(it.Prod.LHS).Has(a) {
				reduceAct := LRAction{Type: LRReduce, Production: it.Prod}
				act, conflicts = t.merge(act, set, reduceAct, stateName, a, conflicts)
				set = true
			}
		}

		if a.IsEndMarker() && it.Prod.LHS == augStart && it.IsReduce() {
			acceptAct := LRAction{Type: LRAccept}
			act, conflicts = t.merge(act, set, acceptAct, stateName, a, conflicts)
			set = true
		}
	}

	if !set {
		act.Type = LRError
	}
	return act, conflicts
}

// merge folds candidate into the action already computed for this cell,
// recording a Conflict (and, if allowAmbig is set, resolving in favor of
// shift) whenever the two disagree.
func (t *SLRTable) merge(current LRAction, alreadySet bool, candidate LRAction, state string, onInput symbol.Symbol, conflicts []Conflict) (LRAction, []Conflict) {
	if !alreadySet {
		return candidate, conflicts
	}
	if current.Equal(candidate) {
		return current, conflicts
	}

	if reduceAct, ok := isShiftReduce(current, candidate); ok {
		conflicts = append(conflicts, newShiftReduceConflict(state, onInput, reduceAct.Production))
		if t.allowAmbig {
			shiftAct := current
			if current.Type == LRReduce {
				shiftAct = candidate
			}
			return shiftAct, conflicts
		}
		return current, conflicts
	}

	if current.Type == LRReduce && candidate.Type == LRReduce {
		conflicts = append(conflicts, newReduceReduceConflict(state, onInput, current.Production, candidate.Production))
		return current, conflicts
	}

	conflicts = append(conflicts, Conflict{
		Kind:    ConflictShiftReduce,
		State:   state,
		OnInput: onInput,
		Detail:  fmt.Sprintf("%s vs %s", current.String(), candidate.String()),
	})
	return current, conflicts
}

// Action returns ACTION[state, a].
func (t *SLRTable) Action(state int, a symbol.Symbol) LRAction {
	if act, ok := t.action[actionKey{State: state, Term: a}]; ok {
		return act
	}
	return LRAction{Type: LRError}
}

// Goto returns GOTO[state, x] for a nonterminal x, and whether it is
// defined.
func (t *SLRTable) Goto(state int, x symbol.Symbol) (int, bool) {
	return t.coll.Next(state, x)
}

// Initial returns the canonical collection's starting state, always 0.
func (t *SLRTable) Initial() int { return 0 }

// String renders the ACTION/GOTO table as one row per state, with columns
// for each terminal (plus end marker) and each nonterminal.
func (t *SLRTable) String() string {
	allTerms := append([]symbol.Symbol{}, t.gTerms...)
	allTerms = append(allTerms, symbol.EndMarker)

	headers := []string{"state"}
	for _, term := range allTerms {
		headers = append(headers, "A:"+term.String())
	}
	for _, nt := range t.gNonTerms {
		headers = append(headers, "G:"+nt.String())
	}
	data := [][]string{headers}

	for i := range t.coll.States {
		row := []string{fmt.Sprintf("%d", i)}
		for _, term := range allTerms {
			cell := ""
			switch act := t.Action(i, term); act.Type {
			case LRAccept:
				cell = "acc"
			case LRReduce:
				cell = "r:" + act.Production.String()
			case LRShift:
				cell = fmt.Sprintf("s%d", act.State)
			}
			row = append(row, cell)
		}
		for _, nt := range t.gNonTerms {
			cell := ""
			if j, ok := t.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", j)
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

// SLRParser recognizes strings of terminals against an SLR(1) table using
// the classic shift-reduce stack automaton.
type SLRParser struct {
	table *SLRTable
	g     grammar.Grammar
}

// NewSLRParser builds a recognizer for g using an already-constructed
// table; call BuildSLRTable first and check for fatal conflicts.
func NewSLRParser(g grammar.Grammar, table *SLRTable) SLRParser {
	return SLRParser{table: table, g: g.Copy()}
}

// Recognize reports whether input is accepted. On rejection, the error
// names the state and offending symbol.
func (p SLRParser) Recognize(input []symbol.Symbol) (bool, error) {
	var states []int
	states = append(states, p.table.Initial())
	pos := 0

	peek := func() symbol.Symbol {
		if pos < len(input) {
			return input[pos]
		}
		return symbol.EndMarker
	}

	for {
		state := states[len(states)-1]
		a := peek()
		act := p.table.Action(state, a)

		switch act.Type {
		case LRShift:
			states = append(states, act.State)
			pos++
		case LRReduce:
			n := len(act.Production.RHS)
			if act.Production.IsEpsilon() {
				n = 0
			}
			states = states[:len(states)-n]
			top := states[len(states)-1]
			j, ok := p.table.Goto(top, act.Production.LHS)
			if !ok {
				return false, fmt.Errorf("no GOTO entry from state %d on %q", top, act.Production.LHS)
			}
			states = append(states, j)
		case LRAccept:
			return true, nil
		default:
			return false, fmt.Errorf("no action defined in state %d on input %q", state, a)
		}
	}
}
