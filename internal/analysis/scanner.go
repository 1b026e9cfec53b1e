// Package analysis implements the corpus analysis core: full-text context
// scanning, phrase and keyword frequency counting, series detection, and
// two-corpus topic comparison. Every operation reads the entire corpus on
// each call; there is no index, no sampling, and no caching, so results are
// deterministic for a fixed corpus snapshot.
package analysis

import (
	"context"
	"strings"

	"sermonlens/internal/corpus"
)

// Occurrence is a single hit of a search term inside one sermon, with the
// surrounding text window.
type Occurrence struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
	Context  string `json:"context"`
}

// FindAllContexts returns every occurrence of term across the corpus with
// contextChars characters of surrounding text on each side. Matching is a
// case-insensitive substring scan; the window is trimmed to record bounds and
// wrapped in ellipses.
func FindAllContexts(ctx context.Context, store *corpus.Store, term string, contextChars int) ([]Occurrence, error) {
	records, err := store.RecordsMatching(ctx, term, 0)
	if err != nil {
		return nil, err
	}

	termLower := strings.ToLower(term)
	var results []Occurrence
	for _, rec := range records {
		textLower := strings.ToLower(rec.Text)

		pos := 0
		for {
			idx := strings.Index(textLower[pos:], termLower)
			if idx == -1 {
				break
			}
			pos += idx

			// Positions are byte offsets into the lowered text. Lowering can
			// grow some runes (U+0130 becomes two runes), so the window is
			// clamped against the original text before slicing it.
			start := pos - contextChars
			if start < 0 {
				start = 0
			}
			end := pos + len(termLower) + contextChars
			if end > len(rec.Text) {
				end = len(rec.Text)
			}
			if start > end {
				start = end
			}

			results = append(results, Occurrence{
				Title:    rec.Title,
				Position: pos,
				Context:  "..." + strings.TrimSpace(rec.Text[start:end]) + "...",
			})

			pos += len(termLower)
		}
	}

	return results, nil
}
