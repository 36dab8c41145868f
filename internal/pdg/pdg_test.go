package pdg

import (
	"testing"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/stretchr/testify/assert"
)

const validGrammarFile = `
format = "pushdown"
type = "GRAMMAR"

[grammar]
start = "S"

[[rule]]
symbol = "S"
productions = ["AB"]

[[rule]]
symbol = "A"
productions = ["aA", "a"]

[[rule]]
symbol = "B"
productions = ["bBc", "bc"]
`

func Test_ParseGrammarData(t *testing.T) {
	assert := assert.New(t)

	g, err := ParseGrammarData([]byte(validGrammarFile))
	if !assert.NoError(err) {
		return
	}

	assert.Equal("S", g.StartSymbol())
	assert.Equal([]string{"A", "B", "S"}, g.NonTerminals())

	// production order must survive the round trip through TOML
	aRule := g.Rule("A")
	expectAlts := []grammar.Production{{"a", "A"}, {"a"}}
	assert.Equal(expectAlts, aRule.Productions)
}

func Test_ParseGrammarData_defaultStart(t *testing.T) {
	assert := assert.New(t)

	const data = `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = ["a"]
`

	g, err := ParseGrammarData([]byte(data))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("S", g.StartSymbol())
}

func Test_ParseGrammarData_epsilonProduction(t *testing.T) {
	assert := assert.New(t)

	const data = `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = ["aSb", ""]
`

	g, err := ParseGrammarData([]byte(data))
	if !assert.NoError(err) {
		return
	}

	sRule := g.Rule("S")
	if !assert.Len(sRule.Productions, 2) {
		return
	}
	assert.True(sRule.Productions[1].Equal(grammar.Epsilon))
}

func Test_ParseGrammarData_errors(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		expectErr error
	}{
		{
			name: "wrong format",
			data: `
format = "pushup"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = ["a"]
`,
			expectErr: ErrBadFormat,
		},
		{
			name: "wrong type",
			data: `
format = "pushdown"
type = "WORLD"

[[rule]]
symbol = "S"
productions = ["a"]
`,
			expectErr: ErrBadType,
		},
		{
			name: "no rules",
			data: `
format = "pushdown"
type = "GRAMMAR"
`,
			expectErr: ErrNoRules,
		},
		{
			name: "undefined nonterminal",
			data: `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = ["aQ"]
`,
			expectErr: grammar.ErrUndefinedNonTerminal,
		},
		{
			name: "no rule for start symbol",
			data: `
format = "pushdown"
type = "GRAMMAR"

[grammar]
start = "T"

[[rule]]
symbol = "S"
productions = ["a"]
`,
			expectErr: grammar.ErrNoStartRule,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseGrammarData([]byte(tc.data))
			assert.ErrorIs(err, tc.expectErr)
		})
	}
}

func Test_ParseGrammarData_badSymbols(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{
			name: "lowercase rule symbol",
			data: `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "s"
productions = ["a"]
`,
		},
		{
			name: "rule with no productions",
			data: `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = []
`,
		},
		{
			name: "bad char in production",
			data: `
format = "pushdown"
type = "GRAMMAR"

[[rule]]
symbol = "S"
productions = ["a2"]
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseGrammarData([]byte(tc.data))
			assert.Error(err)
		})
	}
}
