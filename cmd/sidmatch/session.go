package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sidmatch/internal/config"
	"sidmatch/internal/logging"
	"sidmatch/internal/prompt"
	"sidmatch/internal/reconcile"
	"sidmatch/internal/rejectlog"
	"sidmatch/internal/report"
	"sidmatch/internal/sid"
	"sidmatch/internal/table"
)

var errNoDataRows = errors.New("no data rows")

const (
	firstLabel  = "FILE1"
	secondLabel = "FILE2"
)

type session struct {
	cfg      *config.Config
	ask      *prompt.Prompter
	out      io.Writer
	logger   *slog.Logger
	rejects  *rejectlog.Log
	colorize bool
}

// source is one input file after extraction.
type source struct {
	table *table.Table
	set   *reconcile.Set
	stats reconcile.Stats
}

func runSession(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "session").With(slog.String(logging.FieldRunID, runID))

	rejectPath := ""
	if cfg.RejectLog.Enabled {
		rejectPath = cfg.RejectLog.Path
	}

	out := cmd.OutOrStdout()
	s := &session{
		cfg:      cfg,
		ask:      prompt.New(newLineReader(cmd), out, prompt.Options{MaxAttempts: cfg.Prompt.MaxAttempts}),
		out:      out,
		logger:   logger,
		rejects:  rejectlog.New(rejectPath, runID),
		colorize: shouldColorize(out),
	}
	return s.run(cmd.Context())
}

// newLineReader uses the terminal line editor only when both ends of the
// command are real files.
func newLineReader(cmd *cobra.Command) prompt.LineReader {
	in, inFile := cmd.InOrStdin().(*os.File)
	out, outFile := cmd.OutOrStdout().(*os.File)
	if inFile && outFile {
		return prompt.NewReader(in, out)
	}
	return prompt.NewPlainReader(cmd.InOrStdin(), cmd.OutOrStdout())
}

func (s *session) run(ctx context.Context) error {
	s.logger.Debug("session started")

	first, err := s.loadSource(ctx, firstLabel, "Enter path to first CSV file: ")
	if err != nil {
		return err
	}
	if first.stats.Rows == 0 {
		return fmt.Errorf("%s %s: %w", firstLabel, first.table.Path(), errNoDataRows)
	}

	second, err := s.loadSource(ctx, secondLabel, "Enter path to second CSV file: ")
	if err != nil {
		return err
	}

	ops, err := s.reportOps()
	if err != nil {
		return err
	}
	results := make([]reconcile.Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, reconcile.Compare(op, first.set, second.set))
	}

	s.printSummary(first, second, results)

	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.offerReport(res, first, second); err != nil {
			return err
		}
	}

	s.logger.Info("session complete",
		slog.Int("first_sids", first.set.Len()),
		slog.Int("second_sids", second.set.Len()),
	)
	return nil
}

func (s *session) loadSource(ctx context.Context, label, question string) (source, error) {
	opts := table.Options{
		Label:      label,
		Delimiter:  s.cfg.InputDelimiter(),
		Comment:    s.cfg.CommentRune(),
		LazyQuotes: s.cfg.Input.LazyQuotes,
	}

	var t *table.Table
	_, err := s.ask.Path(question, func(path string) error {
		opened, err := table.Open(path, opts)
		if errors.Is(err, fs.ErrNotExist) {
			return errors.New("File not found")
		}
		if err != nil {
			return err
		}
		t = opened
		return nil
	})
	if err != nil {
		return source{}, fmt.Errorf("%s path: %w", label, err)
	}

	logger := s.logger.With(slog.String(logging.FieldTable, label), slog.String(logging.FieldPath, t.Path()))

	// At least one record is read so an empty file is detected even when
	// the preview is turned off.
	rows := s.cfg.Preview.Rows
	preview, err := t.Preview(max(rows, 1))
	if err != nil {
		return source{}, fmt.Errorf("preview %s: %w", t.Path(), err)
	}
	if rows > 0 {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, renderSectionHeader(fmt.Sprintf("Previewing first %d rows of %s", rows, label), s.colorize))
	}
	if len(preview) == 0 {
		fmt.Fprintln(s.out, label+": (file is empty)")
		logger.Warn("input file has no rows")
		return source{table: t, set: &reconcile.Set{}}, nil
	}
	if rows > 0 {
		fmt.Fprintln(s.out, renderPreview(preview))
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, renderSectionHeader("Extracting SIDs from "+label, s.colorize))
	hasHeader, err := s.ask.YesNo("Does the file have a header row?")
	if err != nil {
		return source{}, err
	}
	t = t.WithHeader(hasHeader)

	sel, err := s.chooseColumn(t)
	if err != nil {
		return source{}, err
	}

	set, stats, err := reconcile.Collect(ctx, t, sel, s.rejects.Record)
	if err != nil {
		return source{}, fmt.Errorf("extract %s: %w", t.Path(), err)
	}

	fmt.Fprintf(s.out, "Total lines processed from %s: %d\n", label, stats.Rows)
	fmt.Fprintf(s.out, "Unique valid SIDs extracted: %d\n", set.Len())
	if skipped := stats.Skipped(); skipped > 0 {
		msg := fmt.Sprintf("Skipped %d rows.", skipped)
		if s.rejects.Path() != "" {
			msg = fmt.Sprintf("Skipped %d rows; details in %s.", skipped, s.rejects.Path())
		}
		fmt.Fprintln(s.out, renderNotice(msg, ansiYellow, s.colorize))
	}

	logger.Info("extraction complete",
		slog.Int("rows", stats.Rows),
		slog.Int("matched", stats.Matched),
		slog.Int("malformed", stats.Malformed),
		slog.Int("rejected", stats.Rejected),
		slog.Int("unique", set.Len()),
	)

	if err := s.rejects.Flush(); err != nil {
		logger.Warn("reject log write failed", logging.Error(err))
	}

	return source{table: t, set: set, stats: stats}, nil
}

// chooseColumn asks for the identifier column until one yields at least one
// identifier or the user accepts an empty one. Any column number is
// accepted; rows too short for it are rejected during extraction.
func (s *session) chooseColumn(t *table.Table) (reconcile.Selector, error) {
	for {
		column, err := s.ask.Column("Enter column number with SIDs (enter 0 to search every column): ", 0)
		if err != nil {
			return reconcile.Selector{}, err
		}
		sel := reconcile.Selector{
			Column:     column,
			Extensions: s.cfg.Extract.Extensions,
			SID:        sid.Options{RequireZeroPrefix: s.cfg.Extract.RequireZeroPrefix},
		}
		found, err := reconcile.Probe(t, sel)
		if err != nil {
			return reconcile.Selector{}, fmt.Errorf("read %s: %w", t.Path(), err)
		}
		if found {
			return sel, nil
		}
		fmt.Fprintln(s.out, renderNotice("That column doesn't appear to contain valid SIDs.", ansiYellow, s.colorize))
		useAnyway, err := s.ask.YesNo("Use it anyway?")
		if err != nil {
			return reconcile.Selector{}, err
		}
		if useAnyway {
			return sel, nil
		}
	}
}

func (s *session) reportOps() ([]reconcile.Op, error) {
	ops := make([]reconcile.Op, 0, len(s.cfg.Output.Reports))
	for _, name := range s.cfg.Output.Reports {
		op, err := reconcile.ParseOp(name)
		if err != nil {
			return nil, fmt.Errorf("output.reports: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (s *session) printSummary(first, second source, results []reconcile.Result) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, renderSectionHeader("SID Comparison Summary", s.colorize))

	rows := make([][]string, 0, 2)
	for _, src := range []source{first, second} {
		rows = append(rows, []string{
			src.table.Label(),
			src.table.Path(),
			humanize.Comma(int64(src.stats.Rows)),
			humanize.Comma(int64(src.set.Len())),
			humanize.Comma(int64(src.stats.Skipped())),
		})
	}
	fmt.Fprintln(s.out, renderTable(
		[]string{"File", "Path", "Lines", "Unique SIDs", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))

	if len(results) == 0 {
		return
	}
	reportRows := make([][]string, 0, len(results))
	for _, res := range results {
		reportRows = append(reportRows, []string{reportTitle(res.Op, first, second), humanize.Comma(int64(res.Len()))})
	}
	fmt.Fprintln(s.out, renderTable([]string{"Result", "SIDs"}, reportRows, []columnAlignment{alignLeft, alignRight}))
}

func (s *session) offerReport(res reconcile.Result, first, second source) error {
	if s.cfg.Output.Print {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, renderSectionHeader(fmt.Sprintf("%s (%d)", reportTitle(res.Op, first, second), res.Len()), s.colorize))
		for _, id := range res.IDs() {
			fmt.Fprintln(s.out, id)
		}
	}

	write, err := s.ask.YesNo(reportQuestion(res.Op, first, second))
	if err != nil {
		return err
	}
	if !write {
		return nil
	}

	path, err := s.ask.OutputPath(report.DefaultName(res.Op, first.table.Path(), second.table.Path()))
	if err != nil {
		return err
	}
	opts := report.Options{
		Delimiter: s.cfg.OutputDelimiter(),
		Trace:     s.cfg.Output.Trace,
		Header:    s.cfg.Output.Header,
	}
	if err := report.WriteFile(path, res, opts); err != nil {
		return fmt.Errorf("write %s report: %w", res.Op, err)
	}
	fmt.Fprintln(s.out, renderNotice(fmt.Sprintf("Wrote %d SIDs to %s", res.Len(), path), ansiGreen, s.colorize))
	s.logger.Info("report written", slog.String("op", string(res.Op)), slog.String(logging.FieldPath, path), slog.Int("count", res.Len()))
	return nil
}

func reportTitle(op reconcile.Op, first, second source) string {
	switch op {
	case reconcile.Common:
		return "SIDs found in both files"
	case reconcile.OnlyFirst:
		return "SIDs only in " + first.table.Path()
	case reconcile.OnlySecond:
		return "SIDs only in " + second.table.Path()
	case reconcile.Union:
		return "SIDs in either file"
	default:
		return string(op)
	}
}

func reportQuestion(op reconcile.Op, first, second source) string {
	switch op {
	case reconcile.Common:
		return "Do you want to write the shared SIDs to a CSV file?"
	case reconcile.OnlyFirst:
		return fmt.Sprintf("Do you want to write SIDs unique to %s?", first.table.Path())
	case reconcile.OnlySecond:
		return fmt.Sprintf("Do you want to write SIDs unique to %s?", second.table.Path())
	case reconcile.Union:
		return "Do you want to write every SID from both files?"
	default:
		return fmt.Sprintf("Do you want to write the %s SIDs?", op)
	}
}
