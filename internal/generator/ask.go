package generator

import (
	"context"
	"fmt"
	"strings"

	"sermonlens/internal/corpus"
	"sermonlens/internal/llm"
)

// importantWords is the fixed vocabulary used to pull search terms out of a
// question before falling back to its longest words.
var importantWords = []string{
	"god", "holy spirit", "scripture", "salvation", "spiritual warfare",
	"prosperity", "healing", "end times", "gifts", "prayer", "sin", "holiness",
	"suffering", "prophets", "prophecy", "deliverance", "demons", "church",
	"grace", "works", "faith", "miracles", "cross", "atonement", "curse",
}

// AskResult is the generated answer plus the transcript titles it drew from.
type AskResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Ask answers a question about a corpus with quoted evidence. Relevant
// transcripts are found by keyword search; the first 3000 characters of up
// to five of them become the generation context.
func (s *Service) Ask(ctx context.Context, store *corpus.Store, question string) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &ValidationError{Field: "question", Message: "must not be empty"}
	}

	terms := extractSearchTerms(question)
	logger := s.logger
	logger.InfoContext(ctx, "question search started", "question", question, "terms", terms)

	records, err := store.RecordsMatchingAny(ctx, terms, 10)
	if err != nil {
		return nil, WrapError(err, "failed to search corpus")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no relevant content for question", ErrNotFound)
	}

	if len(records) > 5 {
		records = records[:5]
	}

	var contextBuilder strings.Builder
	sources := make([]string, 0, len(records))
	for _, rec := range records {
		excerpt := rec.Text
		if len(excerpt) > 3000 {
			excerpt = excerpt[:3000]
		}
		fmt.Fprintf(&contextBuilder, "\n\n### %s\n%s\n", rec.Title, excerpt)
		sources = append(sources, rec.Title)
	}

	answer, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: askPrompt(question, contextBuilder.String())}},
		llm.ChatParams{MaxTokens: 2000},
	)
	if err != nil {
		logger.ErrorContext(ctx, "question answering failed", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
	}

	return &AskResult{Answer: answer, Sources: sources}, nil
}

// extractSearchTerms picks known theological vocabulary out of the question;
// when none matches it falls back to the question's first three words longer
// than three characters. At most five terms are returned.
func extractSearchTerms(question string) []string {
	questionLower := strings.ToLower(question)

	var terms []string
	for _, word := range importantWords {
		if strings.Contains(questionLower, word) {
			terms = append(terms, word)
		}
	}

	if len(terms) == 0 {
		for _, word := range strings.Fields(questionLower) {
			if len(word) > 3 {
				terms = append(terms, word)
			}
			if len(terms) == 3 {
				break
			}
		}
	}

	if len(terms) > 5 {
		terms = terms[:5]
	}
	return terms
}
