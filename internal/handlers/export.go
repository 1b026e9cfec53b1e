package handlers

import (
	"fmt"
	"net/http"

	"sermonlens/internal/appstate"
	"sermonlens/internal/export"
)

// ExportHandler serves the last deep analysis as downloadable files.
type ExportHandler struct {
	state *appstate.State
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(state *appstate.State) *ExportHandler {
	return &ExportHandler{state: state}
}

// Markdown serves the last analysis as a Markdown report download.
//
// swagger:route GET /api/v1/export/markdown exportMarkdown
func (h *ExportHandler) Markdown(w http.ResponseWriter, r *http.Request) {
	result := h.state.Analysis()
	if result == nil {
		writeError(w, http.StatusNotFound, "No analysis to export; run an analysis first")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.ReportBasename(result)+".md"))
	_, _ = w.Write(export.ReportMarkdown(result))
}

// JSON serves the last analysis as a JSON download.
func (h *ExportHandler) JSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result := h.state.Analysis()
	if result == nil {
		writeError(w, http.StatusNotFound, "No analysis to export; run an analysis first")
		return
	}

	data, err := export.ReportJSON(result)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.ReportBasename(result)+".json"))
	_, _ = w.Write(data)
}
