package pda

import (
	"strings"
	"testing"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_NewRecognizer_validatesGrammar(t *testing.T) {
	assert := assert.New(t)

	bad := grammar.Grammar{}
	bad.AddRule("S", grammar.MustParseProduction("aQ"))

	_, err := NewRecognizer(bad)
	assert.ErrorIs(err, grammar.ErrUndefinedNonTerminal)

	_, err = NewRecognizer(grammar.Canonical())
	assert.NoError(err)
}

func Test_Recognizer_Accepts_canonical(t *testing.T) {
	testCases := []struct {
		name   string
		word   string
		expect bool
	}{
		{"minimal accepted word", "abc", true},
		{"more a's", "aabc", true},
		{"balanced b's and c's", "abbcc", true},
		{"both counts up", "aaabbbccc", true},
		{"empty word", "", false},
		{"a alone", "a", false},
		{"missing a", "bc", false},
		{"unbalanced c's", "abcc", false},
		{"unbalanced b's", "abbc", false},
		{"trailing garbage", "abcx", false},
		{"wrong order", "acb", false},
	}

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, rec.Accepts(tc.word))
		})
	}
}

func Test_Recognizer_Accepts_epsilonProduction(t *testing.T) {
	// S -> aSb | ε decides {a^n b^n : n >= 0}
	g := grammar.Grammar{}
	g.AddRule("S", grammar.MustParseProduction("aSb"))
	g.AddRule("S", grammar.MustParseProduction(""))

	rec, err := NewRecognizer(g)
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	testCases := []struct {
		name   string
		word   string
		expect bool
	}{
		{"empty word", "", true},
		{"one pair", "ab", true},
		{"three pairs", "aaabbb", true},
		{"unbalanced", "aab", false},
		{"reversed", "ba", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, rec.Accepts(tc.word))
		})
	}
}

func Test_Recognizer_Accepts_isRepeatable(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	// a rejected word must not poison later decisions
	assert.False(rec.Accepts("abcc"))
	assert.True(rec.Accepts("abc"))
	assert.True(rec.Accepts("abc"))
	assert.False(rec.Accepts(""))
	assert.True(rec.Accepts("aabbcc"))
}

func Test_Recognizer_AcceptsFrom_doesNotModifyCallerStack(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	stack := util.Stack[string]{Of: []string{"B"}}

	assert.True(rec.AcceptsFrom(stack, "bbcc"))
	assert.Equal([]string{"B"}, stack.Of)

	// and the same stack is still usable for another word
	assert.False(rec.AcceptsFrom(stack, "bbc"))
	assert.Equal([]string{"B"}, stack.Of)
}

func Test_Recognizer_SetMaxStackDepth(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	// S -> AB already needs 2 symbols on the stack, so depth 1 cannot accept
	// anything
	rec.SetMaxStackDepth(1)
	assert.False(rec.Accepts("abc"))

	// restoring a workable depth recovers acceptance
	rec.SetMaxStackDepth(DefaultMaxStackDepth)
	assert.True(rec.Accepts("abc"))

	assert.Panics(func() {
		rec.SetMaxStackDepth(0)
	})
}

func Test_Recognizer_overflowFailsBranchOnly(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	// depth 3 allows at most one nested B -> bBc expansion, so abbcc still
	// fits but abbbccc does not
	rec.SetMaxStackDepth(3)
	assert.True(rec.Accepts("abc"))
	assert.True(rec.Accepts("abbcc"))
	assert.False(rec.Accepts("abbbccc"))
}

func Test_Recognizer_tracesExpansionsInDeclarationOrder(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	var expansions []string
	rec.RegisterTraceListener(func(line string) {
		if strings.HasPrefix(line, "expand ") {
			expansions = append(expansions, line)
		}
	})

	assert.True(rec.Accepts("abc"))

	// the very first expansion is always the start rule, and A's alternatives
	// are tried in the order they were declared: aA before a
	if !assert.NotEmpty(expansions) {
		return
	}
	assert.Equal("expand S -> AB", expansions[0])
	assert.Equal("expand A -> aA", expansions[1])

	firstA := -1
	firstAA := -1
	for i, line := range expansions {
		if line == "expand A -> a" && firstA == -1 {
			firstA = i
		}
		if line == "expand A -> aA" && firstAA == -1 {
			firstAA = i
		}
	}
	assert.True(firstAA < firstA, "A -> aA should be tried before A -> a")
}

func Test_Recognizer_traceIncludesWordAndStack(t *testing.T) {
	assert := assert.New(t)

	rec, err := NewRecognizer(grammar.Canonical())
	if err != nil {
		t.Fatalf("could not create recognizer: %v", err)
	}

	var steps []string
	rec.RegisterTraceListener(func(line string) {
		if strings.HasPrefix(line, "Word: ") {
			steps = append(steps, line)
		}
	})

	assert.True(rec.Accepts("abc"))

	if !assert.NotEmpty(steps) {
		return
	}
	assert.Equal("Word: \"abc\"\tStack: S", steps[0])
	assert.Equal("Word: \"\"\tStack: (empty)", steps[len(steps)-1])
}
