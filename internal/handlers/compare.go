package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"sermonlens/internal/analysis"
	"sermonlens/internal/generator"
)

// CompareTopicsHandler compares topic coverage across two corpora by record
// counts.
type CompareTopicsHandler struct {
	corpusDir string
}

// NewCompareTopicsHandler creates a new CompareTopicsHandler.
func NewCompareTopicsHandler(corpusDir string) *CompareTopicsHandler {
	return &CompareTopicsHandler{corpusDir: corpusDir}
}

// CompareTopicsRequest names the two corpora and the topics to compare.
// Topics come from an explicit list, a named preset, or a single custom
// term, checked in that order.
type CompareTopicsRequest struct {
	CorpusA string   `json:"corpus_a"`
	CorpusB string   `json:"corpus_b"`
	Topics  []string `json:"topics,omitempty"`
	Preset  string   `json:"preset,omitempty"`
	Term    string   `json:"term,omitempty"`
}

// CompareTopicsResponse carries the per-topic comparison, most divergent
// first, plus the preset names available.
type CompareTopicsResponse struct {
	CorpusA string                     `json:"corpus_a"`
	CorpusB string                     `json:"corpus_b"`
	Results []analysis.TopicComparison `json:"results"`
	Presets []string                   `json:"presets"`
}

// ServeHTTP compares record-level topic counts across the two corpora.
//
// swagger:route POST /api/v1/compare/topics compareTopics
func (h *CompareTopicsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CompareTopicsRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.CorpusA == "" || req.CorpusB == "" {
		writeError(w, http.StatusBadRequest, "Both corpora are required")
		return
	}

	topics, err := resolveTopics(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	storeA, ok := openCorpus(ctx, w, h.corpusDir, req.CorpusA)
	if !ok {
		return
	}
	defer closeStore(ctx, storeA)

	storeB, ok := openCorpus(ctx, w, h.corpusDir, req.CorpusB)
	if !ok {
		return
	}
	defer closeStore(ctx, storeB)

	results, err := analysis.CompareTopics(ctx, storeA, storeB, topics)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, CompareTopicsResponse{
		CorpusA: req.CorpusA,
		CorpusB: req.CorpusB,
		Results: results,
		Presets: presetNames(),
	})
}

func resolveTopics(req *CompareTopicsRequest) ([]string, error) {
	if len(req.Topics) > 0 {
		return req.Topics, nil
	}
	if req.Preset != "" {
		topics, ok := analysis.TopicPresets[req.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", req.Preset)
		}
		return topics, nil
	}
	if term := strings.TrimSpace(req.Term); term != "" {
		return []string{term}, nil
	}
	return nil, fmt.Errorf("topics, preset, or term is required")
}

func presetNames() []string {
	names := make([]string, 0, len(analysis.TopicPresets))
	for name := range analysis.TopicPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompareThemesHandler generates the structured theme comparison of two
// corpora.
type CompareThemesHandler struct {
	service   *generator.Service
	corpusDir string
}

// NewCompareThemesHandler creates a new CompareThemesHandler.
func NewCompareThemesHandler(service *generator.Service, corpusDir string) *CompareThemesHandler {
	return &CompareThemesHandler{service: service, corpusDir: corpusDir}
}

// CompareThemesRequest names the corpora and the themes to compare. An empty
// theme list means every known theme.
type CompareThemesRequest struct {
	CorpusA string   `json:"corpus_a"`
	CorpusB string   `json:"corpus_b"`
	Themes  []string `json:"themes,omitempty"`
}

// CompareThemesResponse carries one generated comparison per theme with
// enough content in both corpora.
type CompareThemesResponse struct {
	CorpusA string                      `json:"corpus_a"`
	CorpusB string                      `json:"corpus_b"`
	Results []generator.ThemeComparison `json:"results"`
}

// ServeHTTP generates the per-theme comparisons.
func (h *CompareThemesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CompareThemesRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.CorpusA == "" || req.CorpusB == "" {
		writeError(w, http.StatusBadRequest, "Both corpora are required")
		return
	}

	themes := req.Themes
	if len(themes) == 0 {
		themes = make([]string, 0, len(analysis.ThemeSearchTerms))
		for theme := range analysis.ThemeSearchTerms {
			themes = append(themes, theme)
		}
		sort.Strings(themes)
	}

	storeA, ok := openCorpus(ctx, w, h.corpusDir, req.CorpusA)
	if !ok {
		return
	}
	defer closeStore(ctx, storeA)

	storeB, ok := openCorpus(ctx, w, h.corpusDir, req.CorpusB)
	if !ok {
		return
	}
	defer closeStore(ctx, storeB)

	results, err := h.service.CompareThemes(ctx, storeA, storeB, req.CorpusA, req.CorpusB, themes)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, CompareThemesResponse{
		CorpusA: req.CorpusA,
		CorpusB: req.CorpusB,
		Results: results,
	})
}
