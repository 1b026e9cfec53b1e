package generator

import (
	"context"
	"fmt"
	"strings"

	"sermonlens/internal/corpus"
	"sermonlens/internal/library"
	"sermonlens/internal/llm"
)

// costPerPost is the estimated generation cost of one series post, in USD.
const costPerPost = 0.24

// sermonCharCap limits how much of one sermon goes into a post's source
// context.
const sermonCharCap = 15000

// SeriesRequest describes a multi-post series to generate.
type SeriesRequest struct {
	Topic          string             `json:"topic"`
	Audience       string             `json:"audience"`
	Style          string             `json:"style"`
	Length         string             `json:"length"` // short, medium, long
	NumPosts       int                `json:"num_posts"`
	SermonsPerPost int                `json:"sermons_per_post"`
	CorpusWeights  map[string]float64 `json:"corpus_weights"` // corpus name -> weight
}

// SeriesResult is a generated series with its library record.
type SeriesResult struct {
	Series          *library.Series `json:"series"`
	Posts           []library.Post  `json:"posts"`
	SourceBreakdown map[string]int  `json:"source_breakdown"` // corpus name -> sermons used
	Saved           bool            `json:"saved"`
}

// Outline generates a series outline without generating the posts.
func (s *Service) Outline(ctx context.Context, req SeriesRequest) (string, error) {
	if err := validateSeriesRequest(&req); err != nil {
		return "", err
	}

	outline, err := s.llm.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: outlinePrompt(req.Topic, req.Audience, req.Style, req.Length, req.NumPosts)}},
		llm.ChatParams{MaxTokens: 1500},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrExternalService, err)
	}
	return outline, nil
}

// sourceSermon is one sermon collected for series generation, tagged with
// the corpus it came from.
type sourceSermon struct {
	corpus string
	title  string
	text   string
}

// GenerateSeries generates every post of a series from complete sermons
// drawn across the weighted corpora, then saves the result to the library.
// A failed save is logged and reported in the result, not returned as an
// error: the generated content is still worth handing back.
func (s *Service) GenerateSeries(ctx context.Context, req SeriesRequest) (*SeriesResult, error) {
	if err := validateSeriesRequest(&req); err != nil {
		return nil, err
	}
	wordTarget := seriesWordTargets[req.Length]

	sources, breakdown, err := s.collectSermons(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no content for topic %q", ErrNotFound, req.Topic)
	}

	s.logger.InfoContext(ctx, "generating series",
		"topic", req.Topic,
		"posts", req.NumPosts,
		"sermons", len(sources),
	)

	posts := make([]library.Post, 0, req.NumPosts)
	for postNum := 1; postNum <= req.NumPosts; postNum++ {
		start := (postNum - 1) * req.SermonsPerPost
		end := start + req.SermonsPerPost
		if start > len(sources) {
			start = len(sources)
		}
		if end > len(sources) {
			end = len(sources)
		}
		postSources := sources[start:end]

		markdown, err := s.llm.ChatWithMessages(ctx,
			[]llm.Message{{Role: "user", Content: seriesPostPrompt(
				req.Topic, req.Audience, req.Style, postNum, req.NumPosts, wordTarget,
				buildSermonContext(postSources),
			)}},
			llm.ChatParams{MaxTokens: 4000},
		)
		if err != nil {
			return nil, fmt.Errorf("%w: post %d: %s", ErrExternalService, postNum, err)
		}

		html, err := RenderHTML(markdown)
		if err != nil {
			return nil, WrapError(err, fmt.Sprintf("failed to render post %d", postNum))
		}

		titles := make([]string, 0, len(postSources))
		for _, src := range postSources {
			titles = append(titles, src.title)
		}

		posts = append(posts, library.Post{
			PostNumber:      postNum,
			Title:           fmt.Sprintf("%s - Part %d", req.Topic, postNum),
			HTMLContent:     html,
			MarkdownContent: markdown,
			WordCount:       countWords(markdown),
			Sources:         titles,
		})
	}

	series := &library.Series{
		Title:         req.Topic,
		Topic:         req.Topic,
		NumPosts:      req.NumPosts,
		Audience:      req.Audience,
		Style:         req.Style,
		PostLength:    req.Length,
		SourceCorpora: req.CorpusWeights,
		TotalWords:    req.NumPosts * wordTarget,
		TotalCost:     float64(req.NumPosts) * costPerPost,
	}

	result := &SeriesResult{Series: series, Posts: posts, SourceBreakdown: breakdown}
	if s.seriesStore != nil {
		if err := s.seriesStore.Create(ctx, series, posts); err != nil {
			s.logger.WarnContext(ctx, "failed to auto-save series", "error", err)
		} else {
			result.Saved = true
		}
	}

	return result, nil
}

// collectSermons pulls the longest topic-matching sermons from each weighted
// corpus. A corpus that fails to open is skipped with a warning so one bad
// file does not sink the whole series.
func (s *Service) collectSermons(ctx context.Context, req SeriesRequest) ([]sourceSermon, map[string]int, error) {
	terms := strings.Fields(strings.ToLower(req.Topic))
	totalNeeded := req.NumPosts * req.SermonsPerPost

	weights := normalizeWeights(req.CorpusWeights)
	var sources []sourceSermon
	breakdown := make(map[string]int)

	for name, weight := range weights {
		limit := int(float64(totalNeeded) * weight)
		if limit == 0 {
			continue
		}

		path, err := corpus.ResolvePath(s.corpusDir, name)
		if err != nil {
			return nil, nil, &ValidationError{Field: "corpus_weights", Message: err.Error()}
		}

		store, err := corpus.Open(ctx, path)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping corpus", "corpus", name, "error", err)
			continue
		}

		records, err := store.LongestMatchingAny(ctx, terms, limit)
		closeErr := store.Close()
		if err != nil {
			return nil, nil, WrapError(err, fmt.Sprintf("failed to search corpus %s", name))
		}
		if closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close corpus", "corpus", name, "error", closeErr)
		}

		for _, rec := range records {
			sources = append(sources, sourceSermon{corpus: name, title: rec.Title, text: rec.Text})
		}
		breakdown[name] = len(records)
	}

	return sources, breakdown, nil
}

// buildSermonContext frames complete sermons for the post prompt, capping
// each at sermonCharCap characters.
func buildSermonContext(sermons []sourceSermon) string {
	var b strings.Builder
	separator := strings.Repeat("=", 60)
	for i, sermon := range sermons {
		text := sermon.text
		if len(text) > sermonCharCap {
			text = text[:sermonCharCap]
		}
		fmt.Fprintf(&b, "\n\n%s\n", separator)
		fmt.Fprintf(&b, "SOURCE %d: %s (from %s)\n", i+1, sermon.title, sermon.corpus)
		fmt.Fprintf(&b, "%s\n", separator)
		b.WriteString(text)
	}
	return b.String()
}

func validateSeriesRequest(req *SeriesRequest) error {
	if strings.TrimSpace(req.Topic) == "" {
		return &ValidationError{Field: "topic", Message: "must not be empty"}
	}
	if req.NumPosts < 3 || req.NumPosts > 10 {
		return &ValidationError{Field: "num_posts", Message: "must be between 3 and 10"}
	}
	if req.SermonsPerPost == 0 {
		req.SermonsPerPost = 5
	}
	if req.SermonsPerPost < 3 || req.SermonsPerPost > 10 {
		return &ValidationError{Field: "sermons_per_post", Message: "must be between 3 and 10"}
	}
	if _, ok := seriesWordTargets[req.Length]; !ok {
		return &ValidationError{Field: "length", Message: "must be short, medium, or long"}
	}
	if req.Audience == "" {
		req.Audience = "General Christian"
	}
	if req.Style == "" {
		req.Style = "Progressive Journey (builds week by week)"
	}
	if len(req.CorpusWeights) == 0 {
		return &ValidationError{Field: "corpus_weights", Message: "at least one corpus is required"}
	}
	return nil
}

// normalizeWeights scales weights so they sum to one. Non-positive weights
// are dropped; if none remain, the corpora are weighted equally.
func normalizeWeights(weights map[string]float64) map[string]float64 {
	sum := 0.0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}

	normalized := make(map[string]float64, len(weights))
	if sum == 0 {
		share := 1.0 / float64(len(weights))
		for name := range weights {
			normalized[name] = share
		}
		return normalized
	}

	for name, w := range weights {
		if w > 0 {
			normalized[name] = w / sum
		}
	}
	return normalized
}
