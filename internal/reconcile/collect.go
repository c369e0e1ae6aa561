package reconcile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sidmatch/internal/sid"
	"sidmatch/internal/table"
)

// Reasons recorded for rows that contribute no identifier.
var (
	ErrRowTooShort      = errors.New("row too short")
	ErrNoSID            = errors.New("no SID found")
	ErrExtensionBlocked = errors.New("file extension not allowed")
)

// Selector decides which cells of a row are searched.
type Selector struct {
	// Column is the 1-based column to search. Zero searches every column.
	Column int
	// Extensions, when non-empty, restricts matching to cells whose value
	// ends in one of these suffixes (case-insensitive, leading dot optional).
	Extensions []string
	// SID configures identifier recognition.
	SID sid.Options
}

// Reject describes a data row that produced no identifier.
type Reject struct {
	Table  string
	Line   int
	Reason error
}

func (r Reject) String() string {
	return fmt.Sprintf("%s line %d: %v", r.Table, r.Line, r.Reason)
}

// RejectFunc receives every skipped row.
type RejectFunc func(Reject)

// Stats summarizes one extraction pass.
type Stats struct {
	// Rows counts data rows read, malformed ones included.
	Rows int
	// Matched counts rows that produced at least one identifier.
	Matched int
	// Malformed counts rows the reader could not parse.
	Malformed int
	// Rejected counts parsed rows that produced no identifier.
	Rejected int
	// Candidates counts identifiers seen before de-duplication.
	Candidates int
}

// Skipped returns rows that contributed nothing.
func (s Stats) Skipped() int { return s.Malformed + s.Rejected }

// Collect runs one extraction pass over t and returns the identifier set.
// The error is non-nil only when the file could not be read at all or ctx
// is done.
func Collect(ctx context.Context, t *table.Table, sel Selector, onReject RejectFunc) (*Set, Stats, error) {
	set := &Set{}
	var stats Stats
	exts := normalizeExtensions(sel.Extensions)

	reject := func(line int, reason error) {
		if onReject != nil {
			onReject(Reject{Table: t.Label(), Line: line, Reason: reason})
		}
	}

	for row, err := range t.Rows() {
		if err != nil {
			return set, stats, err
		}
		if err := ctx.Err(); err != nil {
			return set, stats, err
		}
		stats.Rows++
		if row.Err != nil {
			stats.Malformed++
			reject(row.Line, fmt.Errorf("malformed row: %w", row.Err))
			continue
		}

		ids, reason := rowIdentifiers(t, row, sel, exts)
		if len(ids) == 0 {
			stats.Rejected++
			reject(row.Line, reason)
			continue
		}
		stats.Matched++
		for _, e := range ids {
			stats.Candidates++
			set.Add(e.ID, e.Origin)
		}
	}
	return set, stats, nil
}

// Probe reports whether any data row of t yields an identifier under sel.
func Probe(t *table.Table, sel Selector) (bool, error) {
	exts := normalizeExtensions(sel.Extensions)
	for row, err := range t.Rows() {
		if err != nil {
			return false, err
		}
		if row.Err != nil {
			continue
		}
		if ids, _ := rowIdentifiers(t, row, sel, exts); len(ids) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func rowIdentifiers(t *table.Table, row table.Row, sel Selector, exts []string) ([]Entry, error) {
	cells, ok := t.Cells(row, sel.Column)
	if !ok {
		return nil, ErrRowTooShort
	}
	reason := ErrNoSID
	var out []Entry
	for _, cell := range cells {
		if cell.Text == "" {
			continue
		}
		blocked := len(exts) > 0 && !hasExtension(cell.Text, exts)
		origin := Origin{Table: cell.Table, Line: cell.Line, Column: cell.Column}
		for c := range sid.Candidates(cell.Text, sel.SID) {
			if blocked {
				reason = fmt.Errorf("%w: %q", ErrExtensionBlocked, filepath.Ext(cell.Text))
				break
			}
			out = append(out, Entry{ID: c.ID, Origin: origin})
		}
	}
	if len(out) == 0 {
		return nil, reason
	}
	return out, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func hasExtension(value string, exts []string) bool {
	lower := strings.ToLower(value)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
