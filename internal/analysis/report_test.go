package analysis

import (
	"strings"
	"testing"
	"time"

	"sermonlens/internal/corpus"
)

func testResult() *Result {
	return &Result{
		Corpus:      "downtown_church",
		GeneratedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Stats: &corpus.Stats{
			SermonCount: 1234,
			TotalChars:  5000000,
			TotalWords:  1000000,
			DateRange:   "2020-01-01 to 2024-12-31",
		},
		Phrases: []PhraseCount{
			{Phrase: "grace of god", Count: 45},
			{Phrase: "seed faith", Count: 22},
		},
		Keywords: []PhraseCount{
			{Phrase: "grace", Count: 900},
		},
		Series: []SeriesGroup{
			{Name: "Romans", Count: 12},
		},
		Samples: []corpus.Record{
			{Title: "On Grace", Text: "sample text"},
		},
		Evaluation: "Broadly orthodox with prosperity-leaning phrases.",
	}
}

func TestFormatReport(t *testing.T) {
	report := FormatReport(testResult())

	wantFragments := []string{
		"# COMPREHENSIVE THEOLOGICAL ANALYSIS",
		"Database: downtown_church",
		"Generated: 2025-03-14 09:30:00",
		"- Total Sermons: 1,234",
		"- Total Words: 1,000,000",
		"- Date Range: 2020-01-01 to 2024-12-31",
		"- grace of god: 45 times",
		"- grace: 900 times",
		"- Romans: 12 sermons",
		"## THEOLOGICAL EVALUATION",
		"Broadly orthodox with prosperity-leaning phrases.",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(report, fragment) {
			t.Errorf("FormatReport() missing %q", fragment)
		}
	}
}

func TestFormatReport_Deterministic(t *testing.T) {
	r := testResult()
	if FormatReport(r) != FormatReport(r) {
		t.Error("FormatReport() is not deterministic for the same input")
	}
}

func TestFormatReport_NoSeries(t *testing.T) {
	r := testResult()
	r.Series = nil

	report := FormatReport(r)
	if strings.Contains(report, "MAJOR SERMON SERIES") {
		t.Error("FormatReport() includes series section for empty series list")
	}
}

func TestPromptSummary(t *testing.T) {
	summary := PromptSummary(testResult())

	wantFragments := []string{
		"# COMPREHENSIVE CORPUS ANALYSIS",
		"- Total Sermons: 1,234",
		"- grace of god: 45",
		"### 1. On Grace",
		"sample text...",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(summary, fragment) {
			t.Errorf("PromptSummary() missing %q", fragment)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		if got := groupDigits(tt.n); got != tt.want {
			t.Errorf("groupDigits(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
