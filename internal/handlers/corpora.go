package handlers

import (
	"net/http"

	"sermonlens/internal/contextutil"
	"sermonlens/internal/corpus"
)

// CorporaHandler lists the corpus databases available for analysis.
type CorporaHandler struct {
	corpusDir string
}

// NewCorporaHandler creates a new CorporaHandler.
func NewCorporaHandler(corpusDir string) *CorporaHandler {
	return &CorporaHandler{corpusDir: corpusDir}
}

// CorporaResponse lists the discovered corpora.
type CorporaResponse struct {
	Corpora []corpus.Info `json:"corpora"`
}

// ServeHTTP lists the .db files under the corpus directory.
//
// swagger:route GET /api/v1/corpora listCorpora
func (h *CorporaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	infos, err := corpus.Discover(h.corpusDir)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to discover corpora", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list corpora")
		return
	}

	writeJSON(ctx, w, http.StatusOK, CorporaResponse{Corpora: infos})
}
