package handlers

import (
	"net/http"

	"sermonlens/internal/analysis"
	"sermonlens/internal/appstate"
	"sermonlens/internal/generator"
)

// AnalyzeHandler runs the full deep analysis of one corpus.
type AnalyzeHandler struct {
	service   *generator.Service
	state     *appstate.State
	corpusDir string
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(service *generator.Service, state *appstate.State, corpusDir string) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, state: state, corpusDir: corpusDir}
}

// AnalyzeRequest names the corpus to analyze.
type AnalyzeRequest struct {
	Corpus string `json:"corpus"`
}

// AnalyzeResponse carries the analysis plus its rendered report.
type AnalyzeResponse struct {
	Analysis *analysis.Result `json:"analysis"`
	Report   string           `json:"report"`
}

// ServeHTTP runs the deep analysis and stores it as the application's last
// analysis so the export endpoints can serve it.
//
// swagger:route POST /api/v1/analyze analyzeCorpus
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.Corpus == "" {
		writeError(w, http.StatusBadRequest, "Corpus is required")
		return
	}

	store, ok := openCorpus(ctx, w, h.corpusDir, req.Corpus)
	if !ok {
		return
	}
	defer closeStore(ctx, store)

	result, err := h.service.Analyze(ctx, store, req.Corpus)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	h.state.SetAnalysis(result)

	writeJSON(ctx, w, http.StatusOK, AnalyzeResponse{
		Analysis: result,
		Report:   analysis.FormatReport(result),
	})
}

// SurveyHandler runs the quick first-impression survey of one corpus.
type SurveyHandler struct {
	service   *generator.Service
	corpusDir string
}

// NewSurveyHandler creates a new SurveyHandler.
func NewSurveyHandler(service *generator.Service, corpusDir string) *SurveyHandler {
	return &SurveyHandler{service: service, corpusDir: corpusDir}
}

// SurveyResponse carries the generated first-impression assessment.
type SurveyResponse struct {
	Corpus     string `json:"corpus"`
	Assessment string `json:"assessment"`
}

// ServeHTTP runs the survey from a handful of random samples.
func (h *SurveyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.Corpus == "" {
		writeError(w, http.StatusBadRequest, "Corpus is required")
		return
	}

	store, ok := openCorpus(ctx, w, h.corpusDir, req.Corpus)
	if !ok {
		return
	}
	defer closeStore(ctx, store)

	assessment, err := h.service.Survey(ctx, store)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, SurveyResponse{Corpus: req.Corpus, Assessment: assessment})
}
