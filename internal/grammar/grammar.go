// Package grammar provides the context-free grammar model that the pushdown
// recognizer decides words against. A grammar is an ordered collection of
// rules, each of which maps a single nonterminal symbol to one or more
// productions. The order that productions are declared in is preserved; it is
// the order in which the recognizer tries alternatives during its search.
//
// Symbols are single characters. Nonterminal symbols are the uppercase letters
// A-Z and terminal symbols are the lowercase letters a-z; construction rejects
// anything else, so the case convention is never ambiguous.
package grammar

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/pushdown/internal/util"
)

var (
	// ErrNoRules is the error returned when validating a grammar that has no
	// rules defined at all.
	ErrNoRules = errors.New("grammar has no rules defined")

	// ErrNoStartRule is the error returned when validating a grammar whose
	// start symbol has no rule defined for it.
	ErrNoStartRule = errors.New("start symbol has no rule defined")

	// ErrUndefinedNonTerminal is the error returned when validating a grammar
	// in which some production refers to a nonterminal that no rule defines.
	ErrUndefinedNonTerminal = errors.New("production refers to undefined nonterminal")
)

// IsNonTerminal returns whether the given symbol is a nonterminal symbol; that
// is, a single uppercase letter A-Z.
func IsNonTerminal(sym string) bool {
	return len(sym) == 1 && 'A' <= sym[0] && sym[0] <= 'Z'
}

// IsTerminal returns whether the given symbol is a terminal symbol; that is,
// a single lowercase letter a-z.
func IsTerminal(sym string) bool {
	return len(sym) == 1 && 'a' <= sym[0] && sym[0] <= 'z'
}

// Production is a sequence of symbols that a nonterminal may be rewritten to.
type Production []string

var (
	// Epsilon is the production that rewrites a nonterminal to nothing.
	Epsilon = Production{""}
)

// Copy returns a deep-copied duplicate of this production.
func (p Production) Copy() Production {
	p2 := make(Production, len(p))
	copy(p2, p)

	return p2
}

// Equal returns whether Production is equal to another value. It will not be
// equal if the other value cannot be cast to Production or *Production.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Production)
		if !ok {
			// also okay if it's a string slice
			otherSlice, ok := o.([]string)
			if !ok {
				return false
			}
			other = Production(otherSlice)
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// String returns the symbols of the production concatenated together, or "ε"
// for the epsilon production. Symbols are single characters so no separator is
// needed between them.
func (p Production) String() string {
	if p.Equal(Epsilon) {
		return "ε"
	}

	var sb strings.Builder
	for i := range p {
		sb.WriteString(p[i])
	}

	return sb.String()
}

// HasSymbol returns whether the production has the given symbol in it.
func (p Production) HasSymbol(sym string) bool {
	return util.InSlice(sym, p)
}

// ParseProduction parses a production from its string representation. The
// symbols may be written contiguously ("aA") or separated by spaces ("a A");
// either way each symbol must be a single terminal or nonterminal letter. The
// empty string and "ε" both give the epsilon production.
func ParseProduction(s string) (Production, error) {
	s = strings.TrimSpace(s)

	if s == "" || s == "ε" {
		return Epsilon.Copy(), nil
	}

	var symbols []string
	if strings.ContainsRune(s, ' ') {
		symbols = strings.Fields(s)
	} else {
		for _, ch := range s {
			symbols = append(symbols, string(ch))
		}
	}

	p := make(Production, 0, len(symbols))
	for _, sym := range symbols {
		if !IsTerminal(sym) && !IsNonTerminal(sym) {
			return nil, fmt.Errorf("not a terminal or nonterminal symbol: %q", sym)
		}
		p = append(p, sym)
	}

	return p, nil
}

// MustParseProduction is like ParseProduction but panics if the string cannot
// be parsed.
func MustParseProduction(s string) Production {
	p, err := ParseProduction(s)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Rule is a single nonterminal symbol together with all of its productions, in
// the order they were declared.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// Copy returns a deep-copy duplicate of the given Rule.
func (r Rule) Copy() Rule {
	r2 := Rule{
		NonTerminal: r.NonTerminal,
		Productions: make([]Production, len(r.Productions)),
	}

	for i := range r.Productions {
		r2.Productions[i] = r.Productions[i].Copy()
	}

	return r2
}

// Equal returns whether Rule is equal to another value. It will not be equal
// if the other value cannot be casted to a Rule or *Rule.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*Rule)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.NonTerminal != other.NonTerminal {
		return false
	}

	return util.EqualSlices(r.Productions, other.Productions)
}

func (r Rule) String() string {
	var sb strings.Builder

	sb.WriteString(r.NonTerminal)
	sb.WriteString(" -> ")

	for i := range r.Productions {
		sb.WriteString(r.Productions[i].String())
		if i+1 < len(r.Productions) {
			sb.WriteString(" | ")
		}
	}

	return sb.String()
}

// CanProduceSymbol returns whether any alternative in productions produces the
// given term/non-terminal.
func (r Rule) CanProduceSymbol(termOrNonTerm string) bool {
	for _, alt := range r.Productions {
		for _, sym := range alt {
			if sym == termOrNonTerm {
				return true
			}
		}
	}
	return false
}

// Grammar is a context-free grammar for the recognizer to decide words
// against. Once constructed and validated it is never mutated; use Copy if a
// modifiable duplicate is needed.
type Grammar struct {
	rulesByName map[string]int

	// main rules store, not just doing a simple map bc
	// rules may have order that matters
	rules []Rule

	// name of the start symbol. If not set, assumed to be S.
	Start string
}

// StartSymbol returns the start symbol of the grammar. If one has not been
// explicitly set, it is "S".
func (g Grammar) StartSymbol() string {
	if g.Start == "" {
		return "S"
	}
	return g.Start
}

// AddRule adds the given production for a nonterminal. If the nonterminal has
// already been given, the production is added as an alternative for that
// nonterminal with lower priority than all others already added.
//
// All rules require at least one symbol in the production. For epsilon
// production, give only the empty string.
func (g *Grammar) AddRule(nonterminal string, production []string) {
	if nonterminal == "" {
		panic("empty nonterminal name not allowed for production rule")
	}

	if !IsNonTerminal(nonterminal) {
		panic(fmt.Sprintf("invalid nonterminal name %q; must be a single char A-Z", nonterminal))
	}

	if len(production) < 1 {
		panic("for epsilon production give empty string; all rules must have productions")
	}

	for _, sym := range production {
		if sym == "" {
			// check that epsilon, if given, is by itself
			if len(production) != 1 {
				panic("epsilon production only allowed as sole production of an alternative")
			}
		} else if !IsTerminal(sym) && !IsNonTerminal(sym) {
			panic(fmt.Sprintf("invalid symbol %q in production; must be a single char a-z or A-Z", sym))
		}
	}

	if g.rulesByName == nil {
		g.rulesByName = map[string]int{}
	}

	curIdx, ok := g.rulesByName[nonterminal]
	if !ok {
		g.rules = append(g.rules, Rule{NonTerminal: nonterminal})
		curIdx = len(g.rules) - 1
		g.rulesByName[nonterminal] = curIdx
	}

	curRule := g.rules[curIdx]
	curRule.Productions = append(curRule.Productions, production)
	g.rules[curIdx] = curRule
}

// Rule returns the grammar rule for the given nonterminal symbol.
// If there is no rule defined for that nonterminal, a Rule with an empty
// NonTerminal field is returned; else it will be the same string as the one
// passed in to the function. The zero-productions case is how the recognizer
// learns that a nonterminal has no alternatives to try; it is not an error
// here.
func (g Grammar) Rule(nonterminal string) Rule {
	if g.rulesByName == nil {
		return Rule{}
	}

	if curIdx, ok := g.rulesByName[nonterminal]; !ok {
		return Rule{}
	} else {
		return g.rules[curIdx]
	}
}

// Rules returns all rules of the grammar in the order they were declared.
func (g Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	for i := range g.rules {
		rules[i] = g.rules[i].Copy()
	}
	return rules
}

// NonTerminals returns list of all the non-terminal symbols. All will be upper
// case.
func (g Grammar) NonTerminals() []string {
	return util.OrderedKeys(g.rulesByName)
}

// Terminals returns a list of all terminal symbols that appear in some
// production of the grammar, in sorted order.
func (g Grammar) Terminals() []string {
	seen := map[string]bool{}

	for _, r := range g.rules {
		for _, alt := range r.Productions {
			for _, sym := range alt {
				if IsTerminal(sym) {
					seen[sym] = true
				}
			}
		}
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	return terms
}

// Copy makes a duplicate deep copy of the grammar.
func (g Grammar) Copy() Grammar {
	g2 := Grammar{
		rulesByName: make(map[string]int, len(g.rulesByName)),
		rules:       make([]Rule, len(g.rules)),
		Start:       g.Start,
	}

	for k := range g.rulesByName {
		g2.rulesByName[k] = g.rulesByName[k]
	}

	for i := range g.rules {
		g2.rules[i] = g.rules[i].Copy()
	}

	return g2
}

func (g Grammar) String() string {
	var sb strings.Builder

	sb.WriteRune('(')
	for i := range g.rules {
		sb.WriteString(g.rules[i].String())
		if i+1 < len(g.rules) {
			sb.WriteString("; ")
		}
	}
	sb.WriteRune(')')

	return sb.String()
}

// Validate checks the grammar for configuration errors so they are caught
// before any search begins. It returns a non-nil error if the grammar has no
// rules at all, if the start symbol has no rule defined for it, or if any
// production refers to a nonterminal that no rule defines.
func (g Grammar) Validate() error {
	if len(g.rules) < 1 {
		return ErrNoRules
	}

	if _, ok := g.rulesByName[g.StartSymbol()]; !ok {
		return fmt.Errorf("%w: %q", ErrNoStartRule, g.StartSymbol())
	}

	for _, r := range g.rules {
		for _, alt := range r.Productions {
			for _, sym := range alt {
				if IsNonTerminal(sym) {
					if _, ok := g.rulesByName[sym]; !ok {
						return fmt.Errorf("%w: %q in rule %q", ErrUndefinedNonTerminal, sym, r.String())
					}
				}
			}
		}
	}

	return nil
}

// Canonical returns the example grammar that pushdown ships with, deciding the
// language {a^n b^m c^m : n ≥ 1, m ≥ 1}:
//
//	S -> AB
//	A -> aA | a
//	B -> bBc | bc
func Canonical() Grammar {
	g := Grammar{}

	g.AddRule("S", MustParseProduction("AB"))
	g.AddRule("A", MustParseProduction("aA"))
	g.AddRule("A", MustParseProduction("a"))
	g.AddRule("B", MustParseProduction("bBc"))
	g.AddRule("B", MustParseProduction("bc"))

	return g
}
