package pushdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_Recognize(t *testing.T) {
	assert := assert.New(t)

	g := grammar.Canonical()

	accepted, err := Recognize(g, "aabbcc")
	if !assert.NoError(err) {
		return
	}
	assert.True(accepted)

	accepted, err = Recognize(g, "aabbc")
	if !assert.NoError(err) {
		return
	}
	assert.False(accepted)

	// a broken grammar is an error, not a rejection
	bad := grammar.Grammar{}
	bad.AddRule("S", grammar.MustParseProduction("aQ"))
	_, err = Recognize(bad, "a")
	assert.ErrorIs(err, grammar.ErrUndefinedNonTerminal)
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("abc\nabcc\nQUIT\n")
	out := &bytes.Buffer{}

	eng, err := New(in, out, grammar.Canonical(), true)
	if !assert.NoError(err) {
		return
	}
	defer eng.Close()

	err = eng.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	output := out.String()

	// one answer per word, in order, then the farewell
	yepIdx := strings.Index(output, AcceptedMessage)
	nayIdx := strings.Index(output, RejectedMessage)
	byeIdx := strings.Index(output, "Goodbye")

	assert.True(yepIdx >= 0, "missing accepted answer")
	assert.True(nayIdx > yepIdx, "missing or misplaced rejected answer")
	assert.True(byeIdx > nayIdx, "missing or misplaced farewell")

	// the rules are shown before any words are read
	assert.Contains(output, "NONTERMINAL")
	assert.Contains(output, "aA | a")
}

func Test_Engine_RunUntilQuit_stopsAtEOF(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("abc\n")
	out := &bytes.Buffer{}

	eng, err := New(in, out, grammar.Canonical(), true)
	if !assert.NoError(err) {
		return
	}
	defer eng.Close()

	err = eng.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	assert.Contains(out.String(), AcceptedMessage)
	assert.Contains(out.String(), "Goodbye")
}

func Test_Engine_EnableTracing(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("abc\nQUIT\n")
	out := &bytes.Buffer{}

	eng, err := New(in, out, grammar.Canonical(), true)
	if !assert.NoError(err) {
		return
	}
	defer eng.Close()

	eng.EnableTracing()

	err = eng.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	assert.Contains(out.String(), "expand S -> AB")
}
