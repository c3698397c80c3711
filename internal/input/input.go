// Package input supplies the two line-reading strategies the CLI chooses
// between: a plain buffered reader for piped or non-TTY input, and a
// GNU-readline-backed reader for interactive terminal sessions. Both
// implement grammar.LineReader, so the driver never needs to know which one
// it was handed.
package input

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectReader reads lines from any io.Reader with no line editing or
// history. It is the right choice for piped input and for test harnesses
// that feed the driver from a string or file.
type DirectReader struct {
	r *bufio.Reader
}

// NewDirectReader wraps r in a buffered line reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line with its trailing newline removed. A line
// read just before end of input is still returned along with io.EOF; once
// truly exhausted, ReadLine returns ("", io.EOF).
func (d *DirectReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	return line, err
}

// Close is a no-op; DirectReader owns no resources beyond its buffer.
func (d *DirectReader) Close() error { return nil }

// InteractiveReader reads lines from stdin through a readline.Instance,
// giving a human typing at a TTY history and in-line editing. It should not
// be used against a non-TTY stdin.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader configures and opens a readline session with prompt
// as its displayed prompt. The returned reader must have Close called on it
// when the caller is done.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return &InteractiveReader{rl: rl}, nil
}

// SetPrompt updates the displayed prompt. The driver does not call it; the
// REPL selection prompt is written to the driver's output stream instead.
func (i *InteractiveReader) SetPrompt(prompt string) {
	i.rl.SetPrompt(prompt)
}

// ReadLine blocks until the user submits a line. On Ctrl-D, it returns
// ("", io.EOF); readline itself reports that as io.EOF already.
func (i *InteractiveReader) ReadLine() (string, error) {
	line, err := i.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

// Close tears down the underlying readline session.
func (i *InteractiveReader) Close() error { return i.rl.Close() }
