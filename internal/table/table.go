package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 marks a row whose fields are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Options control how a file is parsed.
type Options struct {
	// Label names the table in messages and origins, e.g. "FILE1".
	Label string
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Comment, if non-zero, marks lines to ignore.
	Comment rune
	// LazyQuotes relaxes quote handling the same way encoding/csv does.
	LazyQuotes bool
	// HasHeader drops record 0 before any row is yielded.
	HasHeader bool
}

// Table is a delimited file on disk.
type Table struct {
	path string
	opts Options
}

// Row is one record of a table.
type Row struct {
	// Index is the 0-based record ordinal within the file, header included.
	Index int
	// Line is the 1-based line where the record starts.
	Line int
	// Fields holds the parsed values. Nil when Err is set.
	Fields []string
	// Err is set for malformed records that were skipped.
	Err error
}

// Cell is a single value at a row/column position.
type Cell struct {
	Table  string
	Line   int
	Column int
	Text   string
}

// Open validates that path names a readable regular file and returns a
// Table for it.
func Open(path string, opts Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("inspect %s: is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	_ = f.Close()
	if strings.TrimSpace(opts.Label) == "" {
		opts.Label = filepath.Base(path)
	}
	return &Table{path: path, opts: opts}, nil
}

// Path returns the file path.
func (t *Table) Path() string { return t.path }

// Label returns the display label.
func (t *Table) Label() string { return t.opts.Label }

// HasHeader reports whether record 0 is skipped.
func (t *Table) HasHeader() bool { return t.opts.HasHeader }

// WithHeader returns a copy of t with header skipping set as given.
func (t *Table) WithHeader(hasHeader bool) *Table {
	clone := *t
	clone.opts.HasHeader = hasHeader
	return &clone
}

// Rows yields the data records of the table. Malformed records arrive with
// Row.Err set and iteration continues. A non-nil error ends the sequence and
// means the file itself could not be read.
func (t *Table) Rows() iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		f, err := os.Open(t.path)
		if err != nil {
			yield(Row{}, fmt.Errorf("open %s: %w", t.path, err))
			return
		}
		defer f.Close()

		r := t.newReader(f)
		for index := 0; ; index++ {
			record, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			row := Row{Index: index}
			var parseErr *csv.ParseError
			switch {
			case errors.As(err, &parseErr):
				row.Line = parseErr.StartLine
				row.Err = parseErr.Err
			case err != nil:
				yield(Row{}, fmt.Errorf("read %s: %w", t.path, err))
				return
			default:
				row.Line, _ = r.FieldPos(0)
				row.Fields = record
				if !validUTF8(record) {
					row.Fields = nil
					row.Err = ErrInvalidUTF8
				}
			}
			if index == 0 && t.opts.HasHeader {
				continue
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Preview returns up to n records from the top of the file, header included
// and malformed records omitted.
func (t *Table) Preview(n int) ([][]string, error) {
	if n <= 0 {
		return nil, nil
	}
	raw := t.WithHeader(false)
	var out [][]string
	for row, err := range raw.Rows() {
		if err != nil {
			return out, err
		}
		if row.Err != nil {
			continue
		}
		out = append(out, row.Fields)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

// Cells returns the cells of row at the 1-based column, or every cell when
// column is 0. The bool is false when the row is too short for column.
func (t *Table) Cells(row Row, column int) ([]Cell, bool) {
	if column > 0 {
		if column > len(row.Fields) {
			return nil, false
		}
		return []Cell{{Table: t.opts.Label, Line: row.Line, Column: column, Text: strings.TrimSpace(row.Fields[column-1])}}, true
	}
	cells := make([]Cell, 0, len(row.Fields))
	for i, field := range row.Fields {
		cells = append(cells, Cell{Table: t.opts.Label, Line: row.Line, Column: i + 1, Text: strings.TrimSpace(field)})
	}
	return cells, true
}

func (t *Table) newReader(f io.Reader) *csv.Reader {
	decoded := transform.NewReader(f, unicode.BOMOverride(transform.Nop))
	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1
	r.ReuseRecord = false
	r.LazyQuotes = t.opts.LazyQuotes
	if t.opts.Delimiter != 0 {
		r.Comma = t.opts.Delimiter
	}
	if t.opts.Comment != 0 {
		r.Comment = t.opts.Comment
	}
	return r
}

func validUTF8(fields []string) bool {
	for _, field := range fields {
		if !utf8.ValidString(field) {
			return false
		}
	}
	return true
}
