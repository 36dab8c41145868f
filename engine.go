// Package pushdown contains a CLI-driven engine for reading candidate words
// and deciding them against a context-free grammar continuously until the
// user quits. The decision itself is done by a nondeterministic pushdown
// automaton simulated with backtracking; see the internal pda package.
package pushdown

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/pushdown/internal/grammar"
	"github.com/dekarrin/pushdown/internal/input"
	"github.com/dekarrin/pushdown/internal/pda"
	"github.com/dekarrin/rosed"
)

const consoleOutputWidth = 80

// AcceptedMessage and RejectedMessage are the answers printed for each word
// tested in a session.
const (
	AcceptedMessage = "Yep"
	RejectedMessage = "Nay"
)

// Recognize is a convenience function that decides a single word against the
// given grammar. It returns a non-nil error only for configuration problems
// with the grammar; a rejected word is the normal (false, nil) result.
func Recognize(g grammar.Grammar, word string) (bool, error) {
	r, err := pda.NewRecognizer(g)
	if err != nil {
		return false, err
	}

	return r.Accepts(word), nil
}

// Engine contains the things needed to run a recognition session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	rec         *pda.Recognizer
	in          input.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and
// a buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, g grammar.Grammar, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	rec, err := pda.NewRecognizer(g)
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		rec:         rec,
		out:         bufio.NewWriter(outputStream),
		running:     false,
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// EnableTracing makes the engine print each step of the derivation search to
// its output stream as words are decided.
func (eng *Engine) EnableTracing() {
	eng.rec.RegisterTraceListener(func(s string) {
		eng.out.WriteString(s + "\n")
		eng.out.Flush()
	})
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close word reader: %w", err)
	}

	return nil
}

// RulesString returns the rules of the engine's grammar rendered as a bordered
// table, one nonterminal per row.
func (eng *Engine) RulesString() string {
	return RulesTableString(eng.rec.Grammar())
}

// RulesTableString renders the rules of the given grammar as a bordered table,
// one nonterminal per row with its alternatives separated by pipes.
func RulesTableString(g grammar.Grammar) string {
	data := [][]string{
		{"NONTERMINAL", "PRODUCTIONS"},
	}

	for _, r := range g.Rules() {
		prods := make([]string, len(r.Productions))
		for i := range r.Productions {
			prods[i] = r.Productions[i].String()
		}
		data = append(data, []string{r.NonTerminal, strings.Join(prods, " | ")})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, consoleOutputWidth, rosed.Options{
			TableBorders: true,
		}).
		String()
}

// RunUntilQuit begins reading words from the streams and deciding them against
// the grammar until the QUIT command is received or input hits EOF. The rules
// of the grammar are printed before the first word is read.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Pushdown Recognizer\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===================\n"
	introMsg += "\n"
	introMsg += eng.RulesString()
	introMsg += "\nEnter words to test, or QUIT to exit.\n"

	if _, err := eng.out.WriteString(introMsg); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		word, err := eng.in.ReadWord()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("get word: %w", err)
		}

		if word == "QUIT" {
			eng.running = false
			break
		}

		answer := RejectedMessage
		if eng.rec.Accepts(word) {
			answer = AcceptedMessage
		}

		if _, err := eng.out.WriteString(answer + "\n"); err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
		if err := eng.out.Flush(); err != nil {
			return fmt.Errorf("could not flush output: %w", err)
		}
	}

	if _, err := eng.out.WriteString("Goodbye\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}

	return nil
}
