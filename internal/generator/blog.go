package generator

import (
	"context"
	"fmt"
	"strings"

	"sermonlens/internal/corpus"
	"sermonlens/internal/llm"
)

// BlogRequest describes one blog post to generate.
type BlogRequest struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience"`
	Length   string `json:"length"` // short, medium, long
}

// BlogResult is a generated blog post in both representations.
type BlogResult struct {
	Topic     string   `json:"topic"`
	Markdown  string   `json:"markdown"`
	HTML      string   `json:"html"`
	WordCount int      `json:"word_count"`
	Sources   []string `json:"sources"`
}

// Blog generates a single blog post grounded on excerpts pulled from the
// corpus for the topic's words.
func (s *Service) Blog(ctx context.Context, store *corpus.Store, req BlogRequest) (*BlogResult, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, &ValidationError{Field: "topic", Message: "must not be empty"}
	}
	wordTarget, ok := blogWordTargets[req.Length]
	if !ok {
		return nil, &ValidationError{Field: "length", Message: "must be short, medium, or long"}
	}
	if req.Audience == "" {
		req.Audience = "General Christian"
	}

	terms := strings.Fields(strings.ToLower(req.Topic))
	records, err := store.RecordsMatchingAny(ctx, terms, 10)
	if err != nil {
		return nil, WrapError(err, "failed to search corpus")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no content for topic %q", ErrNotFound, req.Topic)
	}

	// Excerpt around the first term hit in each of up to five records:
	// 300 chars before for lead-in, 700 after for the development.
	var excerpts []string
	var sources []string
	limit := len(records)
	if limit > 5 {
		limit = 5
	}
	for _, rec := range records[:limit] {
		textLower := strings.ToLower(rec.Text)
		for _, term := range terms {
			pos := strings.Index(textLower, term)
			if pos < 0 {
				continue
			}
			start := pos - 300
			if start < 0 {
				start = 0
			}
			end := pos + 700
			if end > len(rec.Text) {
				end = len(rec.Text)
			}
			excerpt := strings.Join(strings.Fields(rec.Text[start:end]), " ")
			excerpts = append(excerpts, excerpt)
			sources = append(sources, rec.Title)
			break
		}
	}
	if len(excerpts) > 3 {
		excerpts = excerpts[:3]
	}
	combined := strings.Join(excerpts, "\n\n---\n\n")

	s.logger.InfoContext(ctx, "generating blog post",
		"topic", req.Topic,
		"audience", req.Audience,
		"excerpts", len(excerpts),
	)

	markdown, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: blogPrompt(req.Topic, req.Audience, wordTarget, combined)}},
		llm.ChatParams{MaxTokens: 4000},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
	}

	html, err := RenderHTML(markdown)
	if err != nil {
		return nil, WrapError(err, "failed to render blog post")
	}

	return &BlogResult{
		Topic:     req.Topic,
		Markdown:  markdown,
		HTML:      html,
		WordCount: countWords(markdown),
		Sources:   sources,
	}, nil
}
