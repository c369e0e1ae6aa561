package table_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"sidmatch/internal/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func collect(t *testing.T, tbl *table.Table) []table.Row {
	t.Helper()
	var rows []table.Row
	for row, err := range tbl.Rows() {
		if err != nil {
			t.Fatalf("Rows returned error: %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestOpenRejectsMissingAndDirectories(t *testing.T) {
	dir := t.TempDir()
	if _, err := table.Open(filepath.Join(dir, "nope.csv"), table.Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := table.Open(dir, table.Options{}); err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestRowsSkipsHeaderRecord(t *testing.T) {
	path := writeFile(t, "ids.csv", "StudentID\n0009999999\n1234567\n")
	tbl, err := table.Open(path, table.Options{Label: "FILE1", HasHeader: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows := collect(t, tbl)
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if rows[0].Index != 1 || rows[0].Line != 2 || rows[0].Fields[0] != "0009999999" {
		t.Fatalf("unexpected first data row: %+v", rows[0])
	}

	all := collect(t, tbl.WithHeader(false))
	if len(all) != 3 || all[0].Fields[0] != "StudentID" {
		t.Fatalf("expected header row when header disabled, got %+v", all)
	}
	if !tbl.HasHeader() || tbl.WithHeader(false).HasHeader() {
		t.Fatal("WithHeader must not mutate the receiver")
	}
}

func TestRowsAreRestartable(t *testing.T) {
	path := writeFile(t, "ids.csv", "a,b\nc,d\n")
	tbl, err := table.Open(path, table.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first := collect(t, tbl)
	second := collect(t, tbl)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected two passes of 2 rows, got %d and %d", len(first), len(second))
	}
	if tbl.Label() != "ids.csv" {
		t.Fatalf("expected default label from file name, got %q", tbl.Label())
	}
}

func TestRowsFlagMalformedAndContinue(t *testing.T) {
	path := writeFile(t, "bad.csv", "001234567\nx\"y,z\n\xffbad\n007654321\n")
	tbl, err := table.Open(path, table.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows := collect(t, tbl)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %+v", len(rows), rows)
	}
	if rows[1].Err == nil || rows[1].Line != 2 {
		t.Fatalf("expected parse error on line 2, got %+v", rows[1])
	}
	if !errors.Is(rows[2].Err, table.ErrInvalidUTF8) || rows[2].Fields != nil {
		t.Fatalf("expected invalid UTF-8 on row 3, got %+v", rows[2])
	}
	if rows[3].Err != nil || rows[3].Fields[0] != "007654321" || rows[3].Line != 4 {
		t.Fatalf("expected clean final row, got %+v", rows[3])
	}
}

func TestRowsHonourDelimiterAndBOM(t *testing.T) {
	path := writeFile(t, "semi.csv", "\xef\xbb\xbfname;id\nann;1234567\n")
	tbl, err := table.Open(path, table.Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows := collect(t, tbl)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !slices.Equal(rows[0].Fields, []string{"name", "id"}) {
		t.Fatalf("expected BOM stripped header, got %q", rows[0].Fields)
	}
}

func TestRowsDecodeUTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	content, err := enc.String("id\n001234567.pdf\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeFile(t, "wide.csv", content)
	tbl, err := table.Open(path, table.Options{HasHeader: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows := collect(t, tbl)
	if len(rows) != 1 || rows[0].Fields[0] != "001234567.pdf" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestPreviewIncludesHeader(t *testing.T) {
	path := writeFile(t, "p.csv", strings.Repeat("h1,h2\n", 1)+"a,b\nc,d\ne,f\ng,h\n")
	tbl, err := table.Open(path, table.Options{HasHeader: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows, err := tbl.Preview(4)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if len(rows) != 4 || rows[0][0] != "h1" || rows[3][0] != "e" {
		t.Fatalf("unexpected preview: %v", rows)
	}
	if rows, _ := tbl.Preview(0); rows != nil {
		t.Fatalf("expected nil preview for n=0, got %v", rows)
	}
}

func TestCells(t *testing.T) {
	path := writeFile(t, "c.csv", "x\n")
	tbl, err := table.Open(path, table.Options{Label: "FILE2"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	row := table.Row{Line: 7, Fields: []string{" a ", "b"}}

	cells, ok := tbl.Cells(row, 2)
	if !ok || len(cells) != 1 || cells[0].Text != "b" || cells[0].Column != 2 || cells[0].Table != "FILE2" || cells[0].Line != 7 {
		t.Fatalf("unexpected column cells: %+v ok=%v", cells, ok)
	}
	if _, ok := tbl.Cells(row, 3); ok {
		t.Fatal("expected short row to report false")
	}
	cells, ok = tbl.Cells(row, 0)
	if !ok || len(cells) != 2 || cells[0].Text != "a" {
		t.Fatalf("unexpected all-column cells: %+v", cells)
	}
}
