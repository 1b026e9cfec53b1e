package handlers

import (
	"fmt"
	"net/http"

	"sermonlens/internal/contextutil"
	"sermonlens/internal/export"
	"sermonlens/internal/generator"
)

// DevotionalsHandler generates a devotional set from a corpus.
type DevotionalsHandler struct {
	service   *generator.Service
	corpusDir string
}

// NewDevotionalsHandler creates a new DevotionalsHandler.
func NewDevotionalsHandler(service *generator.Service, corpusDir string) *DevotionalsHandler {
	return &DevotionalsHandler{service: service, corpusDir: corpusDir}
}

// DevotionalsRequest names the corpus and topic for the devotional set.
type DevotionalsRequest struct {
	Corpus string `json:"corpus"`
	Topic  string `json:"topic"`
}

// DevotionalsResponse carries the parsed devotionals. Malformed units are
// dropped by the parser, so Count may be under ten.
type DevotionalsResponse struct {
	Corpus      string                 `json:"corpus"`
	Topic       string                 `json:"topic"`
	Count       int                    `json:"count"`
	Devotionals []generator.Devotional `json:"devotionals"`
}

// ServeHTTP generates the devotionals. With ?format=bundle the response is a
// downloadable tar.xz bundle instead of JSON.
//
// swagger:route POST /api/v1/devotionals generateDevotionals
func (h *DevotionalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DevotionalsRequest
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

	devotionals, err := h.service.Devotionals(ctx, store, req.Topic, req.Corpus)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	if r.URL.Query().Get("format") == "bundle" {
		w.Header().Set("Content-Type", "application/x-xz")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "devotionals.tar.xz"))
		if err := export.BundleDevotionals(w, req.Topic, devotionals); err != nil {
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to write devotional bundle", "error", err)
		}
		return
	}

	writeJSON(ctx, w, http.StatusOK, DevotionalsResponse{
		Corpus:      req.Corpus,
		Topic:       req.Topic,
		Count:       len(devotionals),
		Devotionals: devotionals,
	})
}
