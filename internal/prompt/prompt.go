package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sidmatch/internal/completion"
)

var (
	// ErrCanceled is returned when the user ends input or types the cancel word.
	ErrCanceled = errors.New("prompt canceled")
	// ErrAttemptsExhausted is returned after too many invalid answers.
	ErrAttemptsExhausted = errors.New("too many invalid answers")
)

// CancelWord aborts any prompt when entered on its own.
const CancelWord = "q"

// LineReader reads one line of input after showing prompt. When complete is
// true the reader may offer filename completion.
type LineReader interface {
	ReadLine(prompt string, complete bool) (string, error)
}

// Options configure a Prompter.
type Options struct {
	// MaxAttempts bounds invalid answers per question. Zero means unlimited.
	MaxAttempts int
}

// Prompter asks questions and re-asks until the answer is valid.
type Prompter struct {
	in          LineReader
	out         io.Writer
	maxAttempts int
}

// New wraps reader with the retry policy in opts. Re-prompt messages go to out.
func New(reader LineReader, out io.Writer, opts Options) *Prompter {
	if out == nil {
		out = io.Discard
	}
	return &Prompter{in: reader, out: out, maxAttempts: opts.MaxAttempts}
}

// ask shows question until accept returns nil. A non-nil error from accept
// is printed and counts as one failed attempt, except cancellation and
// exhaustion of a nested question, which end the prompt.
func (p *Prompter) ask(question string, complete bool, accept func(answer string) error) error {
	for attempt := 1; ; attempt++ {
		line, err := p.in.ReadLine(question, complete)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrCanceled
			}
			return fmt.Errorf("read answer: %w", err)
		}
		answer := strings.TrimSpace(line)
		if answer == CancelWord {
			return ErrCanceled
		}
		err = accept(answer)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrCanceled) || errors.Is(err, ErrAttemptsExhausted) {
			return err
		}
		fmt.Fprintln(p.out, err.Error())
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return fmt.Errorf("%w (%d attempts)", ErrAttemptsExhausted, attempt)
		}
	}
}

// YesNo asks question and accepts only "y" or "n".
func (p *Prompter) YesNo(question string) (bool, error) {
	var result bool
	err := p.ask(question+" [y/n]: ", false, func(answer string) error {
		switch strings.ToLower(answer) {
		case "y":
			result = true
			return nil
		case "n":
			result = false
			return nil
		default:
			return errors.New("Please enter 'y' or 'n'.")
		}
	})
	return result, err
}

// Column asks for a 1-based column number. Zero is accepted and means none
// or all, depending on the caller. max, when positive, caps the answer.
func (p *Prompter) Column(question string, max int) (int, error) {
	var result int
	err := p.ask(question, false, func(answer string) error {
		n, err := strconv.Atoi(answer)
		if err != nil || n < 0 {
			return errors.New("Please enter a whole number: 1 for first column, 2 for second, etc., or 0 for none.")
		}
		if max > 0 && n > max {
			return fmt.Errorf("Column %d is out of range; the file shows %d columns.", n, max)
		}
		result = n
		return nil
	})
	return result, err
}

// Path asks for a filesystem path with completion. The answer is expanded
// ("~", $VARS) and passed to validate; its error is shown and the question
// repeated.
func (p *Prompter) Path(question string, validate func(path string) error) (string, error) {
	var result string
	err := p.ask(question, true, func(answer string) error {
		if answer == "" {
			return errors.New("Please enter a file path.")
		}
		path := completion.Expand(answer)
		if validate != nil {
			if err := validate(path); err != nil {
				return fmt.Errorf("%v. Please try again.", err)
			}
		}
		result = path
		return nil
	})
	return result, err
}

// OutputPath asks where to write a file. An empty answer selects
// defaultName. Existing files need explicit confirmation before they are
// returned; declining asks for another name.
func (p *Prompter) OutputPath(defaultName string) (string, error) {
	question := fmt.Sprintf("Enter output filename (default: %s): ", defaultName)
	var result string
	err := p.ask(question, true, func(answer string) error {
		if answer == "" {
			answer = defaultName
		}
		path := completion.Expand(answer)
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return fmt.Errorf("%s is a directory.", path)
		case err == nil:
			overwrite, err := p.YesNo(fmt.Sprintf("File '%s' exists. Overwrite?", path))
			if err != nil {
				return err
			}
			if !overwrite {
				return errors.New("Choose another filename.")
			}
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("Cannot use %s: %v", path, err)
		}
		result = path
		return nil
	})
	return result, err
}
