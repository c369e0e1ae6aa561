package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"sidmatch/internal/completion"
)

// plainReader reads newline-terminated answers from any stream. Completion
// is not available.
type plainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader returns a LineReader over r that writes prompts to w.
func NewPlainReader(r io.Reader, w io.Writer) LineReader {
	return &plainReader{in: bufio.NewReader(r), out: w}
}

func (r *plainReader) ReadLine(prompt string, _ bool) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// terminalReader edits lines in raw mode so Tab can complete paths. Raw
// mode is only held while a line is being read.
type terminalReader struct {
	fd       int
	terminal *term.Terminal
}

// newTerminalReader binds a line editor to in/out.
func newTerminalReader(in *os.File, out io.Writer) *terminalReader {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &terminalReader{fd: int(in.Fd()), terminal: term.NewTerminal(rw, "")}
}

func (r *terminalReader) ReadLine(prompt string, complete bool) (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(r.fd, state) //nolint:errcheck

	r.terminal.SetPrompt(prompt)
	if complete {
		r.terminal.AutoCompleteCallback = autoComplete
	} else {
		r.terminal.AutoCompleteCallback = nil
	}
	return r.terminal.ReadLine()
}

// autoComplete handles Tab by completing the path at the end of the line.
func autoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' || pos != len(line) {
		return "", 0, false
	}
	next, ok := completion.Complete(line)
	if !ok {
		return "", 0, false
	}
	return next, len(next), true
}

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewReader picks a line editor with completion when in and out are both
// terminals, and a plain reader otherwise.
func NewReader(in *os.File, out *os.File) LineReader {
	if IsTerminal(in) && IsTerminal(out) {
		return newTerminalReader(in, out)
	}
	return NewPlainReader(in, out)
}
