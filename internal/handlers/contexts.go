package handlers

import (
	"net/http"
	"strings"

	"sermonlens/internal/analysis"
)

// ContextsHandler serves the context inspector: every occurrence of a term
// across a corpus with its surrounding text.
type ContextsHandler struct {
	corpusDir    string
	contextChars int
}

// NewContextsHandler creates a new ContextsHandler.
func NewContextsHandler(corpusDir string, contextChars int) *ContextsHandler {
	return &ContextsHandler{corpusDir: corpusDir, contextChars: contextChars}
}

// ContextsRequest names the corpus and the term to inspect.
type ContextsRequest struct {
	Corpus string `json:"corpus"`
	Term   string `json:"term"`
}

// ContextsResponse lists every occurrence of the term.
type ContextsResponse struct {
	Corpus      string                `json:"corpus"`
	Term        string                `json:"term"`
	Count       int                   `json:"count"`
	Occurrences []analysis.Occurrence `json:"occurrences"`
}

// ServeHTTP scans the corpus for every occurrence of the term.
//
// swagger:route POST /api/v1/contexts inspectContexts
func (h *ContextsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ContextsRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.Corpus == "" {
		writeError(w, http.StatusBadRequest, "Corpus is required")
		return
	}
	if strings.TrimSpace(req.Term) == "" {
		writeError(w, http.StatusBadRequest, "Term is required")
		return
	}

	store, ok := openCorpus(ctx, w, h.corpusDir, req.Corpus)
	if !ok {
		return
	}
	defer closeStore(ctx, store)

	occurrences, err := analysis.FindAllContexts(ctx, store, req.Term, h.contextChars)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, ContextsResponse{
		Corpus:      req.Corpus,
		Term:        req.Term,
		Count:       len(occurrences),
		Occurrences: occurrences,
	})
}
