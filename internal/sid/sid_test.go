package sid_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"sidmatch/internal/sid"
)

func TestNormalizePadsSevenDigits(t *testing.T) {
	for _, d := range []string{"0000000", "1234567", "9999999", "0100000"} {
		got, err := sid.Normalize(d)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", d, err)
		}
		if want := sid.ID("00" + d); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", d, got, want)
		}
		if len(got) != sid.Width {
			t.Fatalf("Normalize(%q) length = %d, want %d", d, len(got), sid.Width)
		}
	}
}

func TestNormalizeKeepsNineDigits(t *testing.T) {
	for i := 0; i < 1000; i += 37 {
		d := fmt.Sprintf("%09d", i*1234567%1000000000)
		got, err := sid.Normalize(d)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", d, err)
		}
		if string(got) != d {
			t.Fatalf("Normalize(%q) = %q, want identity", d, got)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", sid.ErrNotDigits},
		{"12345a7", sid.ErrNotDigits},
		{"12345678", sid.ErrLength},
		{"0009999999", sid.ErrLength},
		{"123456", sid.ErrLength},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := sid.Normalize(tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("Normalize(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParseStrictPrefix(t *testing.T) {
	if _, err := sid.Parse(" 123456789 ", sid.Options{}); err != nil {
		t.Fatalf("lenient Parse returned error: %v", err)
	}
	if _, err := sid.Parse("123456789", sid.Options{RequireZeroPrefix: true}); !errors.Is(err, sid.ErrPrefix) {
		t.Fatalf("strict Parse error = %v, want ErrPrefix", err)
	}
	got, err := sid.Parse("001234567", sid.Options{RequireZeroPrefix: true})
	if err != nil || got != "001234567" {
		t.Fatalf("strict Parse = %q, %v", got, err)
	}
	// Short runs are padded, so they always satisfy the prefix rule.
	if got, err := sid.Parse("7654321", sid.Options{RequireZeroPrefix: true}); err != nil || got != "007654321" {
		t.Fatalf("strict Parse short = %q, %v", got, err)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts sid.Options
		want []sid.ID
	}{
		{name: "filename", text: "001234567.pdf", want: []sid.ID{"001234567"}},
		{name: "bare short", text: "1234567", want: []sid.ID{"001234567"}},
		{name: "ten digits", text: "0009999999"},
		{name: "eight digits", text: "12345678"},
		{name: "empty", text: ""},
		{name: "letters", text: "StudentID"},
		{name: "embedded", text: "scan_1234567_final.tif", want: []sid.ID{"001234567"}},
		{name: "multiple in order", text: "987654321-1234567 and 001111111", want: []sid.ID{"987654321", "001234567", "001111111"}},
		{name: "strict drops unprefixed", text: "987654321 001111111", opts: sid.Options{RequireZeroPrefix: true}, want: []sid.ID{"001111111"}},
		{name: "long run not split", text: "12345671234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sid.Extract(tt.text, tt.opts)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCandidatesReportOffsets(t *testing.T) {
	var got []sid.Candidate
	for c := range sid.Candidates("a1234567b001234567", sid.Options{}) {
		got = append(got, c)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Raw != "1234567" || got[0].Offset != 1 || got[0].ID != "001234567" {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].Raw != "001234567" || got[1].Offset != 9 {
		t.Fatalf("unexpected second candidate: %+v", got[1])
	}
}

func TestCandidatesStopsEarly(t *testing.T) {
	n := 0
	for range sid.Candidates("1111111 2222222 3333333", sid.Options{}) {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("expected iteration to stop after 1, got %d", n)
	}
	if !sid.Contains("x 2222222", sid.Options{}) {
		t.Fatal("expected Contains to find identifier")
	}
}

func TestExtractIdempotentOnNormalizedOutput(t *testing.T) {
	first := sid.Extract("1234567 987654321 x7654321y", sid.Options{})
	for _, id := range first {
		again := sid.Extract(string(id), sid.Options{})
		if len(again) != 1 || again[0] != id {
			t.Fatalf("re-extracting %q gave %v", id, again)
		}
		if !id.Valid() {
			t.Fatalf("expected %q to be valid", id)
		}
	}
}
