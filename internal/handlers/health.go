package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"sermonlens/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	libraryDB          *sql.DB
	corpusDir          string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(libraryDB *sql.DB, corpusDir string) *HealthHandler {
	return &HealthHandler{
		libraryDB:          libraryDB,
		corpusDir:          corpusDir,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP checks the library database and the corpus directory. Returns
// 200 OK if healthy, 503 Service Unavailable otherwise.
//
// swagger:route GET /api/health healthCheck
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.libraryDB.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "library database health check failed", "error", err)
		checks["library_db"] = "error"
		issues = append(issues, "library_db_unavailable")
	} else {
		checks["library_db"] = "ok"
	}

	if info, err := os.Stat(h.corpusDir); err != nil || !info.IsDir() {
		logger.WarnContext(ctx, "corpus directory health check failed", "dir", h.corpusDir, "error", err)
		checks["corpus_dir"] = "error"
		issues = append(issues, "corpus_dir_unavailable")
	} else {
		checks["corpus_dir"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
