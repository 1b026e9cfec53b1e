package handlers

import (
	"net/http"

	"sermonlens/internal/generator"
)

// BlogHandler generates a single blog post grounded on corpus content.
type BlogHandler struct {
	service   *generator.Service
	corpusDir string
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *generator.Service, corpusDir string) *BlogHandler {
	return &BlogHandler{service: service, corpusDir: corpusDir}
}

// BlogRequest represents the HTTP request payload for blog generation.
type BlogRequest struct {
	Corpus   string `json:"corpus"`
	Topic    string `json:"topic"`
	Audience string `json:"audience,omitempty"`
	Length   string `json:"length"` // short, medium, long
}

// ServeHTTP generates one blog post from the named corpus.
//
// swagger:route POST /api/v1/blog generateBlog
func (h *BlogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BlogRequest
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

	result, err := h.service.Blog(ctx, store, generator.BlogRequest{
		Topic:    req.Topic,
		Audience: req.Audience,
		Length:   req.Length,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}
