package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FromChar_Convention(t *testing.T) {
	testCases := []struct {
		name   string
		input  byte
		expect Symbol
	}{
		{"uppercase letter is nonterminal", 'S', NonTerm('S')},
		{"uppercase letter Z is nonterminal", 'Z', NonTerm('Z')},
		{"lowercase e is epsilon", 'e', Epsilon},
		{"dollar is end marker", '$', EndMarker},
		{"lowercase letter is terminal", 'a', Term('a')},
		{"digit is terminal", '1', Term('1')},
		{"plus is terminal", '+', Term('+')},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FromChar(tc.input))
		})
	}
}

func Test_Symbol_Classification(t *testing.T) {
	assert.True(t, Term('a').IsTerminal())
	assert.False(t, Term('a').IsNonTerminal())

	assert.True(t, NonTerm('A').IsNonTerminal())
	assert.False(t, NonTerm('A').IsTerminal())

	assert.True(t, Epsilon.IsEpsilon())
	assert.True(t, EndMarker.IsEndMarker())
}

func Test_Symbol_Less_TotalOrder(t *testing.T) {
	// Epsilon < Terminal(.) < Nonterminal(.) < EndMarker
	assert.True(t, Epsilon.Less(Term('a')))
	assert.True(t, Term('z').Less(NonTerm('A')))
	assert.True(t, NonTerm('Z').Less(EndMarker))
	assert.False(t, EndMarker.Less(Epsilon))

	// same kind ordered by character
	assert.True(t, Term('a').Less(Term('b')))
	assert.False(t, Term('b').Less(Term('a')))
	assert.True(t, NonTerm('A').Less(NonTerm('B')))
}

func Test_AugmentedStart_DistinctFromUserNonterminals(t *testing.T) {
	aug := AugmentedStart()
	assert.True(t, aug.IsNonTerminal())
	assert.True(t, aug.IsAugmentedStart())

	for c := byte('A'); c <= 'Z'; c++ {
		assert.NotEqual(t, aug, NonTerm(c))
	}
	assert.Equal(t, "S'", aug.String())
}

func Test_Symbol_String(t *testing.T) {
	assert.Equal(t, "a", Term('a').String())
	assert.Equal(t, "S", NonTerm('S').String())
	assert.Equal(t, "ε", Epsilon.String())
	assert.Equal(t, "$", EndMarker.String())
}
