package generator

import (
	"context"
	"fmt"
	"strings"

	"sermonlens/internal/corpus"
	"sermonlens/internal/llm"
)

// devotionalSampleWords caps how many words of sampled transcript feed the
// devotional prompt.
const devotionalSampleWords = 50000

// Devotionals generates a 10-day devotional set from randomly sampled
// transcripts. Malformed units in the response are dropped, so fewer than
// ten devotionals may come back.
func (s *Service) Devotionals(ctx context.Context, store *corpus.Store, topic, sourceName string) ([]Devotional, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &ValidationError{Field: "topic", Message: "must not be empty"}
	}

	samples, err := store.RandomRecords(ctx, 5)
	if err != nil {
		return nil, WrapError(err, "failed to sample corpus")
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: corpus has no transcripts", ErrNotFound)
	}

	texts := make([]string, 0, len(samples))
	for _, sample := range samples {
		texts = append(texts, sample.Text)
	}
	combined := strings.Join(texts, "\n\n")
	if words := strings.Fields(combined); len(words) > devotionalSampleWords {
		combined = strings.Join(words[:devotionalSampleWords], " ")
	}

	s.logger.InfoContext(ctx, "generating devotionals",
		"topic", topic,
		"source", sourceName,
		"sample_chars", len(combined),
	)

	response, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: devotionalsPrompt(combined, topic, sourceName)}},
		llm.ChatParams{MaxTokens: 16000},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
	}

	devotionals := ParseDevotionals(response)
	s.logger.InfoContext(ctx, "devotionals parsed", "count", len(devotionals))
	return devotionals, nil
}
