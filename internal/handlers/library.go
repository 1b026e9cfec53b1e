package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sermonlens/internal/contextutil"
	"sermonlens/internal/export"
	"sermonlens/internal/library"
)

// LibraryHandler serves the saved-series library: listing, fetching,
// deleting, status changes, and bundle downloads.
type LibraryHandler struct {
	store library.SeriesStore
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(store library.SeriesStore) *LibraryHandler {
	return &LibraryHandler{store: store}
}

// ListResponse lists saved series metadata.
type ListResponse struct {
	Series []library.Series `json:"series"`
	Count  int              `json:"count"`
}

// SeriesDetailResponse carries one series with its posts.
type SeriesDetailResponse struct {
	Series *library.Series `json:"series"`
	Posts  []library.Post  `json:"posts"`
}

// List returns saved series, optionally filtered by ?q= and ordered by
// ?sort= (newest, oldest, alpha).
//
// swagger:route GET /api/v1/library listSeries
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	sortOrder := r.URL.Query().Get("sort")

	series, err := h.store.List(ctx, query, sortOrder)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, ListResponse{Series: series, Count: len(series)})
}

// Get returns one series with its posts.
func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	series, posts, err := h.store.Get(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, SeriesDetailResponse{Series: series, Posts: posts})
}

// Delete removes a series and its posts.
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(ctx, id); err != nil {
		handleError(ctx, w, err)
		return
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "series deleted", "series_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// StatusRequest carries the new status for a series.
type StatusRequest struct {
	Status string `json:"status"` // draft or published
}

// UpdateStatus moves a series between draft and published.
func (h *LibraryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if req.Status != library.StatusDraft && req.Status != library.StatusPublished {
		writeError(w, http.StatusBadRequest, "Status must be draft or published")
		return
	}

	if err := h.store.UpdateStatus(ctx, id, req.Status); err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"series_id": id, "status": req.Status})
}

// Bundle streams a series as a downloadable tar.xz bundle.
func (h *LibraryHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	series, posts, err := h.store.Get(ctx, id)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("series-%s.tar.xz", export.SafeName(series.Title))
	w.Header().Set("Content-Type", "application/x-xz")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.BundleSeries(w, series, posts); err != nil {
		// Headers are already out; log and abandon the stream.
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to write series bundle", "series_id", id, "error", err)
	}
}
