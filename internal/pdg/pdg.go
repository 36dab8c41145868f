// Package pdg has functions for loading grammars using the PDG (Pushdown
// Grammar) file format, a TOML-based format that is used to define the
// context-free grammars the recognizer decides words against.
//
// A PDG file looks like this:
//
//	format = "pushdown"
//	type = "GRAMMAR"
//
//	[grammar]
//	start = "S"
//
//	[[rule]]
//	symbol = "S"
//	productions = ["AB"]
//
//	[[rule]]
//	symbol = "A"
//	productions = ["aA", "a"]
//
//	[[rule]]
//	symbol = "B"
//	productions = ["bBc", "bc"]
//
// Rules and their productions are kept in file order; that order is the order
// in which the recognizer tries alternatives.
package pdg

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/pushdown/internal/grammar"
)

const (
	// CurrentFormat is the value the format key of a PDG file must have.
	CurrentFormat = "pushdown"

	// TypeGrammar is the value the type key of a PDG grammar file must have.
	TypeGrammar = "GRAMMAR"
)

var (
	// ErrBadFormat is the error returned when a file does not declare the
	// pushdown format in its header.
	ErrBadFormat = errors.New("file does not declare format = \"pushdown\"")

	// ErrBadType is the error returned when a file declares a type other than
	// GRAMMAR.
	ErrBadType = errors.New("file is not a GRAMMAR type file")

	// ErrNoRules is the error returned when a grammar file parses cleanly but
	// defines no rules at all.
	ErrNoRules = errors.New("file does not define any rules")
)

// LoadGrammarFile loads a grammar from the PDG file at the given path. The
// returned grammar is fully constructed and validated and ready to hand to the
// recognizer.
func LoadGrammarFile(path string) (grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, err
	}

	g, err := ParseGrammarData(data)
	if err != nil {
		return g, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ParseGrammarData parses the bytes of a PDG grammar file into a grammar.
func ParseGrammarData(data []byte) (grammar.Grammar, error) {
	var tl topLevelGrammar

	if err := toml.Unmarshal(data, &tl); err != nil {
		return grammar.Grammar{}, err
	}

	return parseGrammar(tl)
}

func parseGrammar(tl topLevelGrammar) (grammar.Grammar, error) {
	if tl.Format != CurrentFormat {
		return grammar.Grammar{}, ErrBadFormat
	}
	if tl.Type != TypeGrammar {
		return grammar.Grammar{}, fmt.Errorf("%w: type is %q", ErrBadType, tl.Type)
	}
	if len(tl.Rules) < 1 {
		return grammar.Grammar{}, ErrNoRules
	}

	g := grammar.Grammar{
		Start: tl.Grammar.Start,
	}

	for _, r := range tl.Rules {
		if !grammar.IsNonTerminal(r.Symbol) {
			return g, fmt.Errorf("rule[%q]: symbol is not a single nonterminal char A-Z", r.Symbol)
		}
		if len(r.Productions) < 1 {
			return g, fmt.Errorf("rule[%q]: must give at least one production", r.Symbol)
		}

		for _, prodStr := range r.Productions {
			prod, err := grammar.ParseProduction(prodStr)
			if err != nil {
				return g, fmt.Errorf("rule[%q]: production %q: %w", r.Symbol, prodStr, err)
			}
			g.AddRule(r.Symbol, prod)
		}
	}

	if err := g.Validate(); err != nil {
		return g, err
	}

	return g, nil
}
