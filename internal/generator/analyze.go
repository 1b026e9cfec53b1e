package generator

import (
	"context"
	"fmt"
	"time"

	"sermonlens/internal/analysis"
	"sermonlens/internal/corpus"
	"sermonlens/internal/llm"
)

// Analyze runs the full deep analysis of a corpus: statistics, phrase and
// keyword frequencies over the complete text, series detection, and a
// generated theological evaluation. Everything except the evaluation is
// recomputed deterministically from the corpus.
func (s *Service) Analyze(ctx context.Context, store *corpus.Store, corpusName string) (*analysis.Result, error) {
	logger := s.logger

	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to read corpus stats")
	}

	allText, err := store.AllText(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to read corpus text")
	}

	titles, err := store.Titles(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to read corpus titles")
	}

	samples, err := store.RandomRecords(ctx, 10)
	if err != nil {
		return nil, WrapError(err, "failed to sample corpus")
	}

	result := &analysis.Result{
		Corpus:        corpusName,
		GeneratedAt:   time.Now().UTC(),
		Stats:         stats,
		Phrases:       analysis.CountPhrases(allText, analysis.DefaultPhrases, s.minPhraseOccurrences),
		Keywords:      analysis.CountKeywords(allText, analysis.DefaultKeywords),
		Series:        analysis.DetectSeries(titles),
		Contamination: analysis.ScanContamination(titles),
		Samples:       samples,
	}

	logger.InfoContext(ctx, "deep analysis computed",
		"corpus", corpusName,
		"sermons", stats.SermonCount,
		"phrases", len(result.Phrases),
		"series", len(result.Series),
	)

	evaluation, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: evaluationPrompt(analysis.PromptSummary(result))}},
		llm.ChatParams{MaxTokens: 3000},
	)
	if err != nil {
		logger.ErrorContext(ctx, "evaluation generation failed", "error", err)
		return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
	}
	result.Evaluation = evaluation

	return result, nil
}

// Survey generates a quick first-impression assessment from five random
// sermon samples, without the full corpus scan.
func (s *Service) Survey(ctx context.Context, store *corpus.Store) (string, error) {
	samples, err := store.RandomRecords(ctx, 5)
	if err != nil {
		return "", WrapError(err, "failed to sample corpus")
	}
	if len(samples) == 0 {
		return "", fmt.Errorf("%w: corpus has no transcripts", ErrNotFound)
	}

	answer, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: surveyPrompt(samples)}},
		llm.ChatParams{MaxTokens: 2000},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrExternalService, err)
	}
	return answer, nil
}

// ThemeComparison is the generated comparison of one theme across two
// corpora, with the excerpts that grounded it.
type ThemeComparison struct {
	Theme     string   `json:"theme"`
	Analysis  string   `json:"analysis"`
	ExcerptsA []string `json:"excerpts_a"`
	ExcerptsB []string `json:"excerpts_b"`
}

// CompareThemes generates a structured comparison of each theme across two
// corpora. Themes without enough content in both corpora are skipped.
func (s *Service) CompareThemes(ctx context.Context, storeA, storeB *corpus.Store, nameA, nameB string, themes []string) ([]ThemeComparison, error) {
	var results []ThemeComparison
	for _, theme := range themes {
		terms, ok := analysis.ThemeSearchTerms[theme]
		if !ok {
			terms = []string{theme}
		}

		excerptsA, err := analysis.ExtractExcerpts(ctx, storeA, terms)
		if err != nil {
			return nil, WrapError(err, "failed to extract excerpts")
		}
		excerptsB, err := analysis.ExtractExcerpts(ctx, storeB, terms)
		if err != nil {
			return nil, WrapError(err, "failed to extract excerpts")
		}

		if len(excerptsA) == 0 || len(excerptsB) == 0 {
			s.logger.WarnContext(ctx, "not enough content for theme", "theme", theme)
			continue
		}

		comparison, err := s.llm.ChatWithMessages(ctx,
			[]llm.Message{{Role: "user", Content: themeComparisonPrompt(theme, nameA, nameB, excerptsA, excerptsB)}},
			llm.ChatParams{MaxTokens: 1500},
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrExternalService, err)
		}

		results = append(results, ThemeComparison{
			Theme:     theme,
			Analysis:  comparison,
			ExcerptsA: capExcerpts(excerptsA),
			ExcerptsB: capExcerpts(excerptsB),
		})
	}
	return results, nil
}
