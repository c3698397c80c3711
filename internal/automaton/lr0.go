// Package automaton builds the canonical collection of LR(0) item sets
// (§4.E) that the SLR(1) builder in package parse turns into ACTION/GOTO
// tables. Closure and Goto are implemented directly from their definitions
// in §4.E rather than via NFA-subset-construction, since the grammars this
// module targets are small enough that the direct worklist algorithm the
// spec describes is both simpler and exactly what it asks for.
package automaton

import (
	"fmt"
	"strings"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/util"
)

// Item is an LR(0) item: a production paired with a dot position. An item
// whose production has RHS [Epsilon] is treated as having effective length
// 0, so its only item is Dot 0, and that item is immediately a reduce item.
type Item struct {
	Prod grammar.Production
	Dot  int
}

// effectiveLen returns the RHS length used for dot-advancement and
// stack-pop counting: 0 for an ε-production, len(RHS) otherwise.
func effectiveLen(p grammar.Production) int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.RHS)
}

// IsReduce reports whether the dot has reached the end of (the effective
// length of) the item's production.
func (it Item) IsReduce() bool {
	return it.Dot >= effectiveLen(it.Prod)
}

// NextSymbol returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the item is a reduce item.
func (it Item) NextSymbol() (symbol.Symbol, bool) {
	if it.IsReduce() {
		return symbol.Symbol{}, false
	}
	return it.Prod.RHS[it.Dot], true
}

// Advance returns the item with the dot moved one position past the
// current next symbol. It panics if called on a reduce item; callers must
// check NextSymbol first.
func (it Item) Advance() Item {
	if it.IsReduce() {
		panic(fmt.Sprintf("cannot advance reduce item %s", it))
	}
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

// String renders an item as "A -> α . β", matching the dotted-production
// notation used throughout the dragon-book style literature this
// implementation follows.
func (it Item) String() string {
	rhs := it.Prod.RHS
	n := effectiveLen(it.Prod)

	var left, right []string
	for i := 0; i < n; i++ {
		s := rhs[i].String()
		if i < it.Dot {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	leftStr := strings.Join(left, " ")
	rightStr := strings.Join(right, " ")
	if leftStr != "" {
		leftStr += " "
	}
	if rightStr != "" {
		rightStr = " " + rightStr
	}
	return fmt.Sprintf("%s -> %s.%s", it.Prod.LHS, leftStr, rightStr)
}

// ItemSet is a set of Items identified by their String() form, which is
// exactly the "sorted canonical form used as a map key" strategy §9
// endorses for item-set identity.
type ItemSet = util.SVSet[Item]

func newItemSet() ItemSet { return util.NewSVSet[Item]() }

func addItem(set ItemSet, it Item) bool {
	key := it.String()
	if set.Has(key) {
		return false
	}
	set.Set(key, it)
	return true
}

// Closure computes Closure(I) against grammar g: starting from I, repeatedly
// add, for every item (A -> α . B β) with B a nonterminal, every item
// (B -> . γ) for every production B -> γ, until a fixed point.
func Closure(g grammar.Grammar, items ItemSet) ItemSet {
	result := items.Copy()

	for {
		changed := false
		for _, it := range result {
			next, ok := it.NextSymbol()
			if !ok || !next.IsNonTerminal() {
				continue
			}
			for _, prod := range g.Rule(next) {
				if addItem(result, Item{Prod: prod, Dot: 0}) {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return result
}

// Goto computes Goto(I, X) against grammar g: the items of I advanced past
// X, closed. Returns an empty ItemSet if no item in I has X immediately
// after its dot.
func Goto(g grammar.Grammar, items ItemSet, x symbol.Symbol) ItemSet {
	moved := newItemSet()
	for _, it := range items {
		next, ok := it.NextSymbol()
		if ok && next == x {
			addItem(moved, it.Advance())
		}
	}
	if moved.Len() == 0 {
		return moved
	}
	return Closure(g, moved)
}

// Collection is the canonical collection of LR(0) item sets for an
// augmented grammar: an array of states indexed by state ID (state 0 is
// always the initial state), plus the transition function (state, symbol)
// -> state recorded by BuildCollection.
type Collection struct {
	States      []ItemSet
	Transitions map[transKey]int
}

type transKey struct {
	State  int
	Symbol symbol.Symbol
}

// StateOf returns the item set for state id.
func (c *Collection) StateOf(id int) ItemSet { return c.States[id] }

// Next returns the state reached from state id on symbol x, and whether
// such a transition exists.
func (c *Collection) Next(id int, x symbol.Symbol) (int, bool) {
	j, ok := c.Transitions[transKey{State: id, Symbol: x}]
	return j, ok
}

// BuildCollection constructs the canonical collection of LR(0) item sets
// for aug, which must already be an augmented grammar (see
// grammar.Grammar.Augmented). State 0 is the closure of the item
// {(S' -> . S, 0)}; the worklist terminates because there are finitely many
// distinct item sets over a finite grammar.
func BuildCollection(aug grammar.Grammar) *Collection {
	augStart := symbol.AugmentedStart()
	startProd := aug.Rule(augStart)[0]
	start := Closure(aug, itemSetOf(Item{Prod: startProd, Dot: 0}))

	coll := &Collection{Transitions: map[transKey]int{}}
	lookup := map[string]int{}

	addState := func(items ItemSet) int {
		id := len(coll.States)
		coll.States = append(coll.States, items)
		lookup[items.CanonicalKey()] = id
		return id
	}

	addState(start)
	worklist := []int{0}

	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]
		state := coll.States[i]

		for _, x := range symbolsAfterDot(state) {
			j := Goto(aug, state, x)
			if j.Len() == 0 {
				continue
			}
			key := j.CanonicalKey()
			id, exists := lookup[key]
			if !exists {
				id = addState(j)
				worklist = append(worklist, id)
			}
			coll.Transitions[transKey{State: i, Symbol: x}] = id
		}
	}

	return coll
}

func itemSetOf(items ...Item) ItemSet {
	s := newItemSet()
	for _, it := range items {
		addItem(s, it)
	}
	return s
}

// symbolsAfterDot returns, in the §3 total order, every distinct symbol
// that appears immediately after the dot in some item of state.
func symbolsAfterDot(state ItemSet) []symbol.Symbol {
	seen := util.NewKeySet[symbol.Symbol]()
	for _, it := range state {
		if next, ok := it.NextSymbol(); ok {
			seen.Add(next)
		}
	}
	return seen.Sorted(func(a, b symbol.Symbol) bool { return a.Less(b) })
}
