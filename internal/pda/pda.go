// Package pda implements a nondeterministic pushdown automaton that decides
// whether a word is in the language of a context-free grammar. The automaton
// is simulated by exhaustive depth-first backtracking over all leftmost
// derivations: the derivation stack holds the sentential form still to be
// matched, nonterminals on top of the stack are expanded by trying each of
// their productions in declaration order, and terminals are matched against
// the input word one symbol at a time.
//
// Every branch of the search owns an independent copy of the derivation
// stack, so a failed branch can never affect its siblings or the caller.
package pda

import (
	"fmt"
	"strings"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/internal/util"
)

// DefaultMaxStackDepth is the maximum number of symbols a derivation stack may
// hold unless changed with SetMaxStackDepth. An expansion that would push the
// stack past the limit fails that branch of the search instead of being
// attempted.
const DefaultMaxStackDepth = 1024

// Recognizer decides acceptance of words against a single context-free
// grammar. The zero value is not usable; call NewRecognizer to get one. A
// Recognizer never mutates its grammar once constructed, and Accepts is a pure
// function of the grammar and word, so a Recognizer may be reused for any
// number of decisions.
type Recognizer struct {
	g        grammar.Grammar
	maxDepth int
	trace    func(s string)
}

// NewRecognizer creates a Recognizer for the given grammar. The grammar is
// validated first; configuration problems such as an undefined nonterminal are
// returned here, before any search can begin, and are never reported as a
// word rejection.
func NewRecognizer(g grammar.Grammar) (*Recognizer, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validating grammar: %w", err)
	}

	return &Recognizer{
		g:        g.Copy(),
		maxDepth: DefaultMaxStackDepth,
	}, nil
}

// Grammar returns a copy of the grammar the Recognizer decides against.
func (r *Recognizer) Grammar() grammar.Grammar {
	return r.g.Copy()
}

// SetMaxStackDepth changes the maximum derivation stack depth from
// DefaultMaxStackDepth. It panics if depth is less than 1.
func (r *Recognizer) SetMaxStackDepth(depth int) {
	if depth < 1 {
		panic("max stack depth must be at least 1")
	}
	r.maxDepth = depth
}

// RegisterTraceListener sets a function to call with progress updates as the
// search proceeds. Tracing is a side channel only; it has no effect on the
// accept/reject result.
func (r *Recognizer) RegisterTraceListener(listener func(s string)) {
	r.trace = listener
}

// Accepts returns whether the word is in the language of the grammar. The
// search starts from a derivation stack holding only the start symbol.
func (r *Recognizer) Accepts(word string) bool {
	stack := util.Stack[string]{Of: []string{r.g.StartSymbol()}}
	return r.AcceptsFrom(stack, word)
}

// AcceptsFrom returns whether the remaining word can be derived from the given
// derivation stack. The caller's stack is never modified; every branch of the
// search gets its own copy.
func (r *Recognizer) AcceptsFrom(stack util.Stack[string], word string) bool {
	return r.run(stack.Copy(), word)
}

func (r *Recognizer) run(stack util.Stack[string], word string) bool {
	r.notifyStep(word, stack)

	// the sole acceptance criterion: everything derived, everything consumed
	if stack.Empty() {
		return len(word) == 0
	}

	top := stack.Pop()

	if grammar.IsNonTerminal(top) {
		// try every production of the nonterminal in declaration order. An
		// undefined nonterminal has zero productions, so the loop trivially
		// finds no candidates and the branch fails.
		rule := r.g.Rule(top)
		for _, prod := range rule.Productions {
			pushLen := len(prod)
			if prod.Equal(grammar.Epsilon) {
				pushLen = 0
			}
			if stack.Len()+pushLen > r.maxDepth {
				r.notifyOverflow(top, prod)
				continue
			}

			branch := stack.Copy()
			// push the production so its leftmost symbol ends up on top,
			// preserving leftmost-derivation order
			for i := len(prod) - 1; i >= 0; i-- {
				if prod[i] != grammar.Epsilon[0] {
					branch.Push(prod[i])
				}
			}

			r.notifyExpand(top, prod)

			// expansion consumes no input
			if r.run(branch, word) {
				return true
			}
		}
		return false
	}

	// terminal on top, so there must be input left to match it against
	if len(word) == 0 {
		return false
	}

	if string(word[0]) != top {
		// dead branch; terminal matching has no alternatives to explore
		return false
	}

	return r.run(stack, word[1:])
}

func (r *Recognizer) notifyTraceFn(fn func() string) {
	if r.trace != nil {
		r.trace(fn())
	}
}

func (r *Recognizer) notifyTrace(fmtStr string, args ...interface{}) {
	r.notifyTraceFn(func() string { return fmt.Sprintf(fmtStr, args...) })
}

func (r *Recognizer) notifyStep(word string, stack util.Stack[string]) {
	r.notifyTraceFn(func() string {
		var sb strings.Builder
		for i := range stack.Of {
			sb.WriteString(stack.Of[i])
		}

		stackStr := sb.String()
		if stackStr == "" {
			stackStr = "(empty)"
		}

		return fmt.Sprintf("Word: %q\tStack: %s", word, stackStr)
	})
}

func (r *Recognizer) notifyExpand(nonTerm string, prod grammar.Production) {
	r.notifyTrace("expand %s -> %s", nonTerm, prod.String())
}

func (r *Recognizer) notifyOverflow(nonTerm string, prod grammar.Production) {
	r.notifyTrace("expand %s -> %s would exceed max stack depth %d; branch abandoned", nonTerm, prod.String(), r.maxDepth)
}
