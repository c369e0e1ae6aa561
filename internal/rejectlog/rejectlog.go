// Package rejectlog appends skipped-row records to a shared text log.
//
// Entries are buffered for the life of a run and flushed in one append under
// an exclusive file lock, so two runs pointed at the same error.log never
// interleave their lines.
package rejectlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"sidmatch/internal/reconcile"
)

// Log collects rejects for one run.
type Log struct {
	path    string
	runID   string
	now     func() time.Time
	entries []entry
}

type entry struct {
	at     time.Time
	reject reconcile.Reject
}

// New returns a Log that will append to path. An empty path disables
// writing; rejects are still counted.
func New(path, runID string) *Log {
	return &Log{path: path, runID: runID, now: time.Now}
}

// Path returns the destination file, or "" when disabled.
func (l *Log) Path() string { return l.path }

// Record buffers r. Its signature matches reconcile.RejectFunc.
func (l *Log) Record(r reconcile.Reject) {
	l.entries = append(l.entries, entry{at: l.now(), reject: r})
}

// Len returns the number of buffered rejects.
func (l *Log) Len() int { return len(l.entries) }

// Flush appends buffered entries to the log file and clears the buffer.
func (l *Log) Flush() error {
	if l.path == "" || len(l.entries) == 0 {
		l.entries = nil
		return nil
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create reject log directory %q: %w", dir, err)
		}
	}

	lock := flock.New(l.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock reject log: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open reject log %s: %w", l.path, err)
	}
	w := bufio.NewWriter(f)
	for _, e := range l.entries {
		fmt.Fprintf(w, "%s run=%s %s\n", e.at.UTC().Format(time.RFC3339), l.runID, e.reject)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write reject log %s: %w", l.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close reject log %s: %w", l.path, err)
	}
	l.entries = nil
	return nil
}
