/*
Pdi decides whether words are in the language of a context-free grammar.

It reads in a grammar (either the built-in example grammar or one from a PDG
grammar file), prints the production rules, and then runs a backtracking
pushdown automaton on the word given as the sole argument. "Yep" is printed if
the word is in the language of the grammar and "Nay" is printed if it is not.

Usage:

	pdi [flags] WORD
	pdi [flags] -i

The flags are:

	-v, --version
		Give the current version of Pushdown and then exit.

	-g, --grammar [FILE]
		Use the grammar defined in the provided PDG file instead of the
		built-in grammar for a^n b^m c^m.

	-t, --trace
		Print the word and stack contents at each step of the search.

	-T, --table
		Print the grammar rules as a bordered table instead of one production
		per line.

	-i, --interactive
		Start an interactive session instead of deciding a single word. Words
		are read one per line and answered with Yep or Nay until QUIT is
		input.

	-d, --direct
		With -i, force reading directly from stdin instead of going through
		GNU readline even if launched in a tty.

Exit status is 0 if the word was accepted, 1 if it was rejected, and 2 if
there was a problem with the invocation or the grammar.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/pushdown"
	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/internal/pda"
	"github.com/dekarrin/pushdown/internal/pdg"
	"github.com/dekarrin/pushdown/internal/version"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates that the word was accepted.
	ExitSuccess = iota

	// ExitRejected indicates that the word was rejected. Rejection is a
	// normal decision result, but it is distinguished from acceptance in the
	// exit status so callers can branch on the answer.
	ExitRejected

	// ExitUsageError indicates an unsuccessful program execution due to a
	// problem with the arguments or with loading the grammar.
	ExitUsageError
)

var (
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of Pushdown and then exit.")
	flagGrammar     = pflag.StringP("grammar", "g", "", "Use the grammar in the given PDG file.")
	flagTrace       = pflag.BoolP("trace", "t", false, "Print the stack contents as the search proceeds.")
	flagTable       = pflag.BoolP("table", "T", false, "Print the grammar rules as a table.")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Run an interactive session.")
	flagDirect      = pflag.BoolP("direct", "d", false, "With -i, read directly from stdin instead of using readline.")
)

var returnCode int = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	g := grammar.Canonical()
	if *flagGrammar != "" {
		var err error
		g, err = pdg.LoadGrammarFile(*flagGrammar)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
	}

	if *flagInteractive {
		returnCode = runInteractive(g)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] WORD\nDo -h for help.\n", os.Args[0])
		returnCode = ExitUsageError
		return
	}
	word := args[0]

	dumpRules(g)

	rec, err := pda.NewRecognizer(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	if *flagTrace {
		rec.RegisterTraceListener(func(s string) {
			fmt.Println(s)
		})
	}

	if rec.Accepts(word) {
		fmt.Println(pushdown.AcceptedMessage)
	} else {
		fmt.Println(pushdown.RejectedMessage)
		returnCode = ExitRejected
	}
}

// dumpRules prints every production of the grammar, one per line, in the form
// "S -> AB". With --table the rules are rendered as a bordered table instead.
func dumpRules(g grammar.Grammar) {
	if *flagTable {
		fmt.Print(pushdown.RulesTableString(g))
		return
	}

	for _, r := range g.Rules() {
		for _, prod := range r.Productions {
			fmt.Printf("%s -> %s\n", r.NonTerminal, prod.String())
		}
	}
}

func runInteractive(g grammar.Grammar) int {
	eng, err := pushdown.New(os.Stdin, os.Stdout, g, *flagDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitUsageError
	}
	defer eng.Close()

	if *flagTrace {
		eng.EnableTracing()
	}

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitUsageError
	}

	return ExitSuccess
}
