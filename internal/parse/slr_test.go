package parse

import (
	"testing"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_BuildSLRTable_LeftRecursiveExprGrammarIsConflictFree(t *testing.T) {
	// S -> S p T | T ; T -> T m F | F ; F -> b S c | i : the classic
	// expression grammar (here with + and * renamed p and m, parens renamed
	// b/c, and "id" renamed i), left-recursive and therefore not LL(1) but
	// a textbook SLR(1) grammar.
	g := grammar.MustParse(
		"S -> SpT T",
		"T -> TmF F",
		"F -> bSc i",
	)

	table, conflicts, err := BuildSLRTable(g, false)
	assert.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.NotNil(t, table)
}

func Test_SLRParser_AcceptsAndRejects(t *testing.T) {
	g := grammar.MustParse(
		"S -> SpT T",
		"T -> TmF F",
		"F -> bSc i",
	)

	table, conflicts, err := BuildSLRTable(g, false)
	assert.NoError(t, err)
	assert.Empty(t, conflicts)

	parser := NewSLRParser(g, table)

	ok, err := parser.Recognize(syms("i"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = parser.Recognize(syms("ipimi"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = parser.Recognize(syms("bicpi"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = parser.Recognize(syms("ip"))
	assert.Error(t, err)
	assert.False(t, ok)

	ok, err = parser.Recognize(syms("bi"))
	assert.Error(t, err)
	assert.False(t, ok)
}

func Test_BuildSLRTable_AmbiguousGrammarConflictsWithoutFlag(t *testing.T) {
	// The dangling-else-shaped ambiguous grammar S -> iS | iSxS | a (x stands
	// for "else", since 'e' is reserved for ε) has a genuine shift/reduce
	// conflict that only allowAmbiguous resolves.
	g := grammar.MustParse("S -> iS iSxS a")

	_, conflicts, err := BuildSLRTable(g, false)
	assert.Error(t, err)
	assert.NotEmpty(t, conflicts)
}

func Test_BuildSLRTable_AmbiguousGrammarResolvedWithFlag(t *testing.T) {
	g := grammar.MustParse("S -> iS iSxS a")

	table, conflicts, err := BuildSLRTable(g, true)
	assert.NoError(t, err)
	assert.NotEmpty(t, conflicts)
	assert.Equal(t, ConflictShiftReduce, conflicts[0].Kind)
	assert.NotNil(t, table)
}

func Test_BuildLL1Table_LeftRecursiveExprGrammarIsNotLL1(t *testing.T) {
	g := grammar.MustParse(
		"S -> SpT T",
		"T -> TmF F",
		"F -> bSc i",
	)

	_, conflicts, err := BuildLL1Table(g)
	assert.Error(t, err)
	assert.NotEmpty(t, conflicts)
}

func Test_SLRTable_String_IsNonEmpty(t *testing.T) {
	g := grammar.MustParse(
		"S -> SpT T",
		"T -> TmF F",
		"F -> bSc i",
	)
	table, _, err := BuildSLRTable(g, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, table.String())
}
