package driver

import (
	"bytes"
	"testing"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/input"
	"github.com/stretchr/testify/assert"
)

const replPrompt = "Select a parser (T: for LL(1), B: for SLR(1), Q: quit):\n"

func runDriver(in string, opts Options) string {
	var out, errOut bytes.Buffer
	Run(input.NewDirectReader(bytes.NewBufferString(in)), &out, &errOut, opts)
	return out.String()
}

// Test_Scenario_SLR1Only mirrors the "SLR(1) only" concrete scenario: the
// classic left-recursive expression grammar over +, *, parens and id.
func Test_Scenario_SLR1Only(t *testing.T) {
	in := "3\n" +
		"S -> S+T T\n" +
		"T -> T*F F\n" +
		"F -> (S) i\n" +
		"i+i\n" +
		"(i)\n" +
		"(i+i)*i)\n" +
		"\n"

	out := runDriver(in, Options{})
	assert.Equal(t, "Grammar is SLR(1).\nyes\nyes\nno\n", out)
}

// Test_Scenario_Both mirrors the "both" concrete scenario: a right-recursive
// grammar for which both LL(1) and SLR(1) tables build, so the driver enters
// the selection REPL instead of printing a direct announcement.
func Test_Scenario_Both(t *testing.T) {
	in := "3\n" +
		"S -> AB\n" +
		"A -> aA d\n" +
		"B -> bBc e\n" +
		"T\n" +
		"d\n" +
		"adbc\n" +
		"a\n" +
		"\n" +
		"Q\n"

	out := runDriver(in, Options{})
	expect := replPrompt + "yes\nyes\nno\n" + replPrompt
	assert.Equal(t, expect, out)
}

// Test_Scenario_Neither mirrors the "neither" concrete scenario: S -> A,
// A -> A | b (two alternatives, "A" and "b") produces a reduce/reduce
// conflict in the SLR(1) builder and an LL(1) FIRST/FIRST conflict, so
// neither table can be built.
func Test_Scenario_Neither(t *testing.T) {
	in := "2\n" +
		"S -> A\n" +
		"A -> A b\n" +
		"\n"

	out := runDriver(in, Options{})
	assert.Equal(t, "Grammar is neither LL(1) nor SLR(1).\n", out)
}

// Test_Scenario_ClassicLLAmbiguity mirrors the "classic LL-ambiguity"
// scenario: S -> aSb | e, where both builders succeed.
func Test_Scenario_ClassicLLAmbiguity(t *testing.T) {
	in := "1\n" +
		"S -> aSb e\n" +
		"T\n" +
		"aabb\n" +
		"ab\n" +
		"aab\n" +
		"\n" +
		"Q\n"

	out := runDriver(in, Options{})
	expect := replPrompt + "yes\nyes\nno\n" + replPrompt
	assert.Equal(t, expect, out)
}

// Test_Scenario_LeftRecursion mirrors the "left recursion" scenario:
// S -> Sa | a, where the LL(1) builder fails (FIRST/FIRST conflict on the
// left-recursive alternative) but the SLR(1) builder succeeds. The empty
// string is represented as the lone end-marker character, per the boundary
// rule that a literal blank line would instead terminate the block.
func Test_Scenario_LeftRecursion(t *testing.T) {
	in := "1\n" +
		"S -> Sa a\n" +
		"a\n" +
		"aa\n" +
		"$\n" +
		"\n"

	out := runDriver(in, Options{})
	assert.Equal(t, "Grammar is SLR(1).\nyes\nyes\nno\n", out)
}

func Test_MalformedGrammar_ExitsWithErrorAndCode1(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(input.NewDirectReader(bytes.NewBufferString("not a number\n")), &out, &errOut, Options{})
	assert.Equal(t, ExitMalformedGrammar, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "ERROR")
}

func Test_UnrecognizedReplCommand_RePrompts(t *testing.T) {
	in := "1\n" +
		"S -> aSb e\n" +
		"Z\n" +
		"Q\n"

	out := runDriver(in, Options{})
	expect := replPrompt + replPrompt
	assert.Equal(t, expect, out)
}

func Test_UnexpectedEOFDuringReplStringBlock_ExitsCleanly(t *testing.T) {
	in := "1\n" +
		"S -> aSb e\n" +
		"T\n" +
		"aabb\n"

	var out, errOut bytes.Buffer
	code := Run(input.NewDirectReader(bytes.NewBufferString(in)), &out, &errOut, Options{})
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, replPrompt+"yes\n", out.String())
}
