package handlers

import (
	"net/http"

	"sermonlens/internal/generator"
)

// AskHandler answers questions about a corpus with quoted evidence.
type AskHandler struct {
	service   *generator.Service
	corpusDir string
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(service *generator.Service, corpusDir string) *AskHandler {
	return &AskHandler{service: service, corpusDir: corpusDir}
}

// AskRequest represents the HTTP request payload for corpus questions.
//
// swagger:model AskRequest
type AskRequest struct {
	Corpus   string `json:"corpus"`
	Question string `json:"question"`
}

// AskResponse represents the HTTP response payload for corpus questions.
//
// swagger:model AskResponse
type AskResponse struct {
	// The generated answer, grounded on transcript excerpts
	Answer string `json:"answer"`

	// Titles of the transcripts used as evidence
	Sources []string `json:"sources"`
}

// ServeHTTP answers a question against the named corpus.
//
// swagger:route POST /api/v1/ask askQuestion
//
// Searches the corpus for transcripts relevant to the question and generates
// an evidence-quoting answer from them.
//
// responses:
//
//	'200':
//	  description: Successful response with answer and sources
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Bad request (missing corpus or question)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'404':
//	  description: Corpus not found or no relevant content
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: Generation service error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AskRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.Corpus == "" {
		writeError(w, http.StatusBadRequest, "Corpus is required")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	store, ok := openCorpus(ctx, w, h.corpusDir, req.Corpus)
	if !ok {
		return
	}
	defer closeStore(ctx, store)

	result, err := h.service.Ask(ctx, store, req.Question)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:  result.Answer,
		Sources: result.Sources,
	})
}
