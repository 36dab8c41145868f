// Package input contains readers used for getting candidate words from CLI or
// other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads words to be tested, one per line, from some source of input.
type Reader interface {
	// ReadWord reads the next word. The returned string will only be empty if
	// there is an error reading input; at end of input the error is io.EOF.
	ReadWord() (string, error)

	// Close cleans up any resources associated with the Reader.
	Close() error
}

// DirectWordReader implements Reader and reads words from any generic input
// stream directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectWordReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectWordReader struct {
	r *bufio.Reader
}

// InteractiveWordReader implements Reader and reads words from stdin using a
// go implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of input history.
// This should in general probably only be used when directly connecting to a
// TTY for input.
//
// InteractiveWordReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveWordReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a new DirectWordReader and initializes a buffered
// reader on the provided reader. The returned Reader must have Close() called
// on it before disposal.
func NewDirectReader(r io.Reader) *DirectWordReader {
	return &DirectWordReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveWordReader and initializes
// readline. The returned Reader must have Close() called on it before disposal
// to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveWordReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveWordReader{
		rl:     rl,
		prompt: "> ",
	}, nil
}

// Close cleans up resources associated with the DirectWordReader.
func (dwr *DirectWordReader) Close() error {
	// this function is here so DirectWordReader implements Reader. For now it
	// doesn't really do anything as the DirectWordReader does not create
	// resources but it may in the future and callers should treat it as though
	// it must have Close called on it.

	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveWordReader.
func (iwr *InteractiveWordReader) Close() error {
	return iwr.rl.Close()
}

// ReadWord reads the next line from the stream. This function blocks until a
// line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dwr *DirectWordReader) ReadWord() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dwr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// ReadWord reads the next word from stdin. This function blocks until a line
// consisting of more than empty or whitespace-only input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (iwr *InteractiveWordReader) ReadWord() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = iwr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
	}

	return line, nil
}

// SetPrompt updates the prompt to the given text.
func (iwr *InteractiveWordReader) SetPrompt(p string) {
	iwr.rl.SetPrompt(p)
	iwr.prompt = p
}

// GetPrompt gets the current prompt.
func (iwr *InteractiveWordReader) GetPrompt() string {
	return iwr.prompt
}
