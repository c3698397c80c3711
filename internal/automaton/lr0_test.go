package automaton

import (
	"testing"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/symbol"
	"github.com/stretchr/testify/assert"
)

// dragonBookExpr is the classic E -> E + T | T ; T -> T * F | F ; F -> ( E ) | id
// grammar, spelled with this project's one-char-per-symbol convention and
// with the start symbol renamed to S (this module fixes the start symbol to
// S): S -> SpT T ; T -> TmF F ; F -> bSc i
func dragonBookExpr() grammar.Grammar {
	return grammar.MustParse(
		"S -> SpT T",
		"T -> TmF F",
		"F -> bSc i",
	)
}

func Test_Closure_StartState(t *testing.T) {
	g := dragonBookExpr().Augmented()
	coll := BuildCollection(g)

	start := coll.StateOf(0)
	assert.True(t, start.Len() > 1, "closure of the initial item should pull in the S, T, F items with the dot at the start")

	augStart := symbol.AugmentedStart()
	kernel := Item{Prod: g.Rule(augStart)[0], Dot: 0}
	assert.True(t, start.Has(kernel.String()))
}

func Test_Goto_AdvancesDot(t *testing.T) {
	g := dragonBookExpr().Augmented()
	coll := BuildCollection(g)

	start := coll.StateOf(0)
	next := Goto(g, start, symbol.NonTerm('S'))
	assert.True(t, next.Len() > 0)
}

func Test_BuildCollection_Deterministic(t *testing.T) {
	g := dragonBookExpr().Augmented()

	a := BuildCollection(g)
	b := BuildCollection(g)

	assert.Equal(t, len(a.States), len(b.States))
	for i := range a.States {
		assert.Equal(t, a.States[i].CanonicalKey(), b.States[i].CanonicalKey())
	}
}

func Test_BuildCollection_HasReduceStates(t *testing.T) {
	g := dragonBookExpr().Augmented()
	coll := BuildCollection(g)

	var sawReduce bool
	for _, state := range coll.States {
		for _, it := range state {
			if it.IsReduce() {
				sawReduce = true
			}
		}
	}
	assert.True(t, sawReduce, "a grammar with no epsilon productions must still reach reduce items")
}

func Test_Item_String(t *testing.T) {
	g := grammar.MustParse("S -> aSb e")
	prod := g.Rule(symbol.NonTerm('S'))[0]

	it := Item{Prod: prod, Dot: 1}
	assert.Equal(t, "S -> a . S b", it.String())
}

func Test_Item_EpsilonProduction_IsImmediatelyReduce(t *testing.T) {
	g := grammar.MustParse("S -> aSb e")
	var epsProd grammar.Production
	for _, p := range g.Rule(symbol.NonTerm('S')) {
		if p.IsEpsilon() {
			epsProd = p
		}
	}

	it := Item{Prod: epsProd, Dot: 0}
	assert.True(t, it.IsReduce())
}
