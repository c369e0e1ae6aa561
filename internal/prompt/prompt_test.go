package prompt_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sidmatch/internal/prompt"
)

func newPrompter(input string, attempts int) (*prompt.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	reader := prompt.NewPlainReader(strings.NewReader(input), &out)
	return prompt.New(reader, &out, prompt.Options{MaxAttempts: attempts}), &out
}

func TestYesNoRepromptsUntilValid(t *testing.T) {
	p, out := newPrompter("maybe\nYES\nY\n", 0)
	got, err := p.YesNo("Does the file have a header row?")
	if err != nil {
		t.Fatalf("YesNo returned error: %v", err)
	}
	if !got {
		t.Fatal("expected yes")
	}
	if n := strings.Count(out.String(), "Please enter 'y' or 'n'."); n != 2 {
		t.Fatalf("expected 2 hints, got %d in %q", n, out.String())
	}
	if !strings.Contains(out.String(), "Does the file have a header row? [y/n]: ") {
		t.Fatalf("expected question in output, got %q", out.String())
	}
}

func TestYesNoNo(t *testing.T) {
	p, _ := newPrompter("n\n", 0)
	got, err := p.YesNo("Continue?")
	if err != nil || got {
		t.Fatalf("expected no, got %v %v", got, err)
	}
}

func TestAttemptsExhausted(t *testing.T) {
	p, _ := newPrompter("a\nb\nc\ny\n", 3)
	if _, err := p.YesNo("Continue?"); !errors.Is(err, prompt.ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
}

func TestCancelAndEOF(t *testing.T) {
	p, _ := newPrompter("q\n", 0)
	if _, err := p.Column("Column: ", 0); !errors.Is(err, prompt.ErrCanceled) {
		t.Fatalf("expected ErrCanceled for cancel word, got %v", err)
	}
	p, _ = newPrompter("", 0)
	if _, err := p.YesNo("Continue?"); !errors.Is(err, prompt.ErrCanceled) {
		t.Fatalf("expected ErrCanceled at EOF, got %v", err)
	}
}

func TestFinalLineWithoutNewline(t *testing.T) {
	p, _ := newPrompter("y", 0)
	got, err := p.YesNo("Continue?")
	if err != nil || !got {
		t.Fatalf("expected yes from unterminated line, got %v %v", got, err)
	}
}

func TestColumn(t *testing.T) {
	p, out := newPrompter("-1\nx\n9\n2\n", 0)
	got, err := p.Column("Enter column number: ", 3)
	if err != nil {
		t.Fatalf("Column returned error: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if !strings.Contains(out.String(), "out of range") {
		t.Fatalf("expected range hint, got %q", out.String())
	}
	p, _ = newPrompter("0\r\n", 0)
	if got, err := p.Column("Enter column number: ", 0); err != nil || got != 0 {
		t.Fatalf("expected 0, got %d %v", got, err)
	}
}

func TestPathValidatesAndExpands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	target := filepath.Join(dir, "ids.csv")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, out := newPrompter("\nmissing.csv\n~/ids.csv\n", 0)
	got, err := p.Path("Enter path to first CSV file: ", func(path string) error {
		if _, err := os.Stat(path); err != nil {
			return errors.New("File not found")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if got != target {
		t.Fatalf("expected %q, got %q", target, got)
	}
	if !strings.Contains(out.String(), "File not found. Please try again.") {
		t.Fatalf("expected retry hint, got %q", out.String())
	}
}

func TestOutputPathDefaultAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("taken.csv", []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, _ := newPrompter("\n", 0)
	got, err := p.OutputPath("fresh.csv")
	if err != nil || got != "fresh.csv" {
		t.Fatalf("expected default name, got %q %v", got, err)
	}

	p, out := newPrompter("taken.csv\nn\nother.csv\n", 0)
	got, err = p.OutputPath("a.csv")
	if err != nil || got != "other.csv" {
		t.Fatalf("expected other.csv after declining overwrite, got %q %v", got, err)
	}
	if !strings.Contains(out.String(), "File 'taken.csv' exists. Overwrite? [y/n]: ") {
		t.Fatalf("expected overwrite question, got %q", out.String())
	}

	p, _ = newPrompter("taken.csv\ny\n", 0)
	got, err = p.OutputPath("a.csv")
	if err != nil || got != "taken.csv" {
		t.Fatalf("expected taken.csv after confirming, got %q %v", got, err)
	}
}

func TestOutputPathStopsWhenOverwriteAnswersRunOut(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile("taken.csv", []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, out := newPrompter("taken.csv\nmaybe\nperhaps\nother.csv\n", 2)
	got, err := p.OutputPath("a.csv")
	if !errors.Is(err, prompt.ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %q %v", got, err)
	}
	if n := strings.Count(out.String(), "Enter output filename"); n != 1 {
		t.Fatalf("expected the filename question once, got %d in %q", n, out.String())
	}
	if strings.Contains(out.String(), "too many invalid answers") {
		t.Fatalf("expected exhaustion to be returned, not printed: %q", out.String())
	}
}
