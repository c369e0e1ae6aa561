package sid

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
)

const (
	// Width is the canonical identifier length.
	Width = 9
	// ShortWidth is the accepted unpadded identifier length.
	ShortWidth = 7
	// Prefix is the zero padding applied to short identifiers.
	Prefix = "00"
)

var (
	// ErrLength reports a digit run that is neither 7 nor 9 characters long.
	ErrLength = errors.New("sid: digit run must be 7 or 9 digits")
	// ErrNotDigits reports input containing anything other than ASCII digits.
	ErrNotDigits = errors.New("sid: value must contain only ASCII digits")
	// ErrPrefix reports a 9-digit run without the "00" prefix in strict mode.
	ErrPrefix = errors.New("sid: 9-digit value must start with 00")
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ID is a normalized 9-digit identifier.
type ID string

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Candidate is one identifier-shaped match inside a cell.
type Candidate struct {
	// Raw is the matched digit run before normalization.
	Raw string
	// Offset is the byte offset of Raw within the cell text.
	Offset int
	// ID is the normalized identifier.
	ID ID
}

// Options tune extraction.
type Options struct {
	// RequireZeroPrefix rejects 9-digit runs that do not start with "00".
	RequireZeroPrefix bool
}

// Normalize canonicalizes a bare digit run. Seven digits gain the "00"
// prefix, nine digits pass through unchanged.
func Normalize(digits string) (ID, error) {
	return normalize(digits, Options{})
}

// Parse validates a value that is expected to be a single identifier,
// trimming surrounding whitespace first.
func Parse(value string, opts Options) (ID, error) {
	return normalize(strings.TrimSpace(value), opts)
}

func normalize(digits string, opts Options) (ID, error) {
	if digits == "" || !isDigits(digits) {
		return "", ErrNotDigits
	}
	switch len(digits) {
	case ShortWidth:
		return ID(Prefix + digits), nil
	case Width:
		if opts.RequireZeroPrefix && !strings.HasPrefix(digits, Prefix) {
			return "", fmt.Errorf("%w: %q", ErrPrefix, digits)
		}
		return ID(digits), nil
	default:
		return "", fmt.Errorf("%w: got %d", ErrLength, len(digits))
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Candidates yields every accepted identifier in text, left to right.
// Digit runs of other lengths, and prefix failures in strict mode, are
// skipped silently.
func Candidates(text string, opts Options) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, loc := range digitRun.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			id, err := normalize(raw, opts)
			if err != nil {
				continue
			}
			if !yield(Candidate{Raw: raw, Offset: loc[0], ID: id}) {
				return
			}
		}
	}
}

// Extract returns the normalized identifiers found in text, in order.
// The result is nil when nothing matches.
func Extract(text string, opts Options) []ID {
	var out []ID
	for c := range Candidates(text, opts) {
		out = append(out, c.ID)
	}
	return out
}

// Contains reports whether text holds at least one identifier.
func Contains(text string, opts Options) bool {
	for range Candidates(text, opts) {
		return true
	}
	return false
}

// Valid reports whether id satisfies the canonical 9-digit invariant.
func (id ID) Valid() bool {
	return len(id) == Width && isDigits(string(id))
}
