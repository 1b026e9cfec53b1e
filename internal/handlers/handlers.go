// Package handlers holds the HTTP handlers for the analysis and generation
// API. Each handler is a small struct wired with its dependencies; corpus
// stores are opened per request from the corpus directory.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"sermonlens/internal/contextutil"
	"sermonlens/internal/corpus"
	"sermonlens/internal/generator"
	"sermonlens/internal/library"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON writes a JSON success response.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// statusForError maps service errors to HTTP status codes: validation
// failures to 400, missing content to 404, an undetectable corpus schema to
// 422, and generation-service failures to 502.
func statusForError(err error) int {
	var validationErr *generator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, corpus.ErrCorpusNotFound),
		errors.Is(err, generator.ErrNotFound),
		errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, corpus.ErrSchemaNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generator.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes the mapped error response.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "error", err)
	} else {
		logger.WarnContext(ctx, "request rejected", "status", status, "error", err)
	}
	writeError(w, status, err.Error())
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// openCorpus resolves a corpus name under dir and opens its store. The
// caller closes it.
func openCorpus(ctx context.Context, w http.ResponseWriter, dir, name string) (*corpus.Store, bool) {
	path, err := corpus.ResolvePath(dir, name)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid corpus name", "corpus", name)
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	store, err := corpus.Open(ctx, path)
	if err != nil {
		handleError(ctx, w, err)
		return nil, false
	}
	return store, true
}

// closeStore closes a per-request corpus store. Close failures are logged,
// never surfaced to the client.
func closeStore(ctx context.Context, store *corpus.Store) {
	if err := store.Close(); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to close corpus", "error", err)
	}
}
