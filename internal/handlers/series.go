package handlers

import (
	"net/http"

	"sermonlens/internal/generator"
)

// SeriesHandler generates a multi-post series from weighted corpora and
// saves it to the library.
type SeriesHandler struct {
	service *generator.Service
}

// NewSeriesHandler creates a new SeriesHandler.
func NewSeriesHandler(service *generator.Service) *SeriesHandler {
	return &SeriesHandler{service: service}
}

// ServeHTTP generates every post of the requested series.
//
// swagger:route POST /api/v1/series generateSeries
func (h *SeriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generator.SeriesRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}

	result, err := h.service.GenerateSeries(ctx, req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// SeriesOutlineHandler generates a series outline without generating posts.
type SeriesOutlineHandler struct {
	service *generator.Service
}

// NewSeriesOutlineHandler creates a new SeriesOutlineHandler.
func NewSeriesOutlineHandler(service *generator.Service) *SeriesOutlineHandler {
	return &SeriesOutlineHandler{service: service}
}

// OutlineResponse carries the generated outline.
type OutlineResponse struct {
	Outline string `json:"outline"`
}

// ServeHTTP generates the outline for the requested series.
func (h *SeriesOutlineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generator.SeriesRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}

	outline, err := h.service.Outline(ctx, req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, OutlineResponse{Outline: outline})
}
