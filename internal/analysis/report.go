package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sermonlens/internal/corpus"
)

// Result is one complete deep analysis of a corpus. It is what the export
// writers serialize and what the application keeps as its last analysis.
type Result struct {
	Corpus      string        `json:"corpus"`
	GeneratedAt time.Time     `json:"generated_at"`
	Stats       *corpus.Stats `json:"stats"`
	Phrases     []PhraseCount `json:"phrases"`
	Keywords    []PhraseCount `json:"keywords"`
	Series      []SeriesGroup `json:"series"`
	// Contamination lists titles that look like non-sermon content.
	Contamination []string        `json:"contamination,omitempty"`
	Samples       []corpus.Record `json:"-"`
	Evaluation    string          `json:"evaluation"`
}

// FormatReport renders a Result as a self-contained Markdown report: corpus
// statistics, the top 20 phrases and keywords, the top 10 series, and the
// generated evaluation.
func FormatReport(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# COMPREHENSIVE THEOLOGICAL ANALYSIS\n")
	fmt.Fprintf(&b, "Database: %s\n", r.Corpus)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	if r.Stats != nil {
		b.WriteString("## CORPUS STATISTICS\n")
		fmt.Fprintf(&b, "- Total Sermons: %s\n", groupDigits(r.Stats.SermonCount))
		fmt.Fprintf(&b, "- Total Words: %s\n", groupDigits(r.Stats.TotalWords))
		fmt.Fprintf(&b, "- Average Sermon: %s words\n", groupDigits(r.Stats.AvgCharsPerDoc/5))
		fmt.Fprintf(&b, "- Date Range: %s\n", r.Stats.DateRange)
	}

	b.WriteString("\n## TOP PHRASE FREQUENCIES\n")
	for _, p := range top(r.Phrases, 20) {
		fmt.Fprintf(&b, "- %s: %s times\n", p.Phrase, groupDigits(p.Count))
	}

	b.WriteString("\n## THEOLOGICAL KEYWORDS\n")
	for _, k := range top(r.Keywords, 20) {
		fmt.Fprintf(&b, "- %s: %s times\n", k.Phrase, groupDigits(k.Count))
	}

	if len(r.Series) > 0 {
		b.WriteString("\n## MAJOR SERMON SERIES\n")
		limit := len(r.Series)
		if limit > 10 {
			limit = 10
		}
		for _, s := range r.Series[:limit] {
			fmt.Fprintf(&b, "- %s: %d sermons\n", s.Name, s.Count)
		}
	}

	if len(r.Contamination) > 0 {
		b.WriteString("\n## POSSIBLE NON-SERMON CONTENT\n")
		for _, title := range r.Contamination {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}

	fmt.Fprintf(&b, "\n## THEOLOGICAL EVALUATION\n\n%s\n", r.Evaluation)

	return b.String()
}

// PromptSummary renders a compact version of the analysis used as input for
// the generated evaluation: statistics, top candidates, and the first 1500
// characters of up to three sample sermons.
func PromptSummary(r *Result) string {
	var b strings.Builder

	b.WriteString("# COMPREHENSIVE CORPUS ANALYSIS\n\n")
	if r.Stats != nil {
		b.WriteString("## Statistics\n")
		fmt.Fprintf(&b, "- Total Sermons: %s\n", groupDigits(r.Stats.SermonCount))
		fmt.Fprintf(&b, "- Total Words: %s\n", groupDigits(r.Stats.TotalWords))
	}

	b.WriteString("\n## Top Phrases\n")
	for _, p := range top(r.Phrases, 20) {
		fmt.Fprintf(&b, "- %s: %s\n", p.Phrase, groupDigits(p.Count))
	}

	b.WriteString("\n## Keywords\n")
	for _, k := range top(r.Keywords, 20) {
		fmt.Fprintf(&b, "- %s: %s\n", k.Phrase, groupDigits(k.Count))
	}

	b.WriteString("\n## Samples\n")
	limit := len(r.Samples)
	if limit > 3 {
		limit = 3
	}
	for i, sample := range r.Samples[:limit] {
		text := sample.Text
		if len(text) > 1500 {
			text = text[:1500]
		}
		fmt.Fprintf(&b, "\n### %d. %s\n%s...\n", i+1, sample.Title, text)
	}

	return b.String()
}

func top(counts []PhraseCount, n int) []PhraseCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
