// Package report writes reconciliation results as delimited files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sidmatch/internal/reconcile"
)

// Options control the output layout.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Trace appends the file label and line each identifier was first seen on.
	Trace bool
	// Header writes a column header row first.
	Header bool
}

// Encode writes res to w, one identifier per row in ascending order.
func Encode(w io.Writer, res reconcile.Result, opts Options) error {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	if opts.Header {
		header := []string{"sid"}
		if opts.Trace {
			header = append(header, "file", "line")
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, entry := range res.Entries {
		record := []string{entry.ID.String()}
		if opts.Trace {
			line := ""
			if entry.Origin.Line > 0 {
				line = strconv.Itoa(entry.Origin.Line)
			}
			record = append(record, entry.Origin.Table, line)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes res to path through a temporary file in the same
// directory, so a failed write never leaves a truncated report behind.
func WriteFile(path string, res reconcile.Result, opts Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // removed by rename on success

	if err := Encode(tmp, res, opts); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// DefaultName proposes an output filename for op based on the two input
// paths, e.g. "fall_spring_common.csv" or "fall_unique.csv".
func DefaultName(op reconcile.Op, first, second string) string {
	a, b := baseName(first), baseName(second)
	switch op {
	case reconcile.OnlyFirst:
		return a + "_unique.csv"
	case reconcile.OnlySecond:
		return b + "_unique.csv"
	case reconcile.Union:
		return a + "_" + b + "_union.csv"
	default:
		return a + "_" + b + "_common.csv"
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = sanitizeFileName(base)
	if base == "" || base == "." {
		return "sids"
	}
	return base
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	" ", "_",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

func sanitizeFileName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(name)))
}
