package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"sermonlens/internal/appstate"
	"sermonlens/internal/config"
	"sermonlens/internal/generator"
	"sermonlens/internal/http"
	"sermonlens/internal/library"
	"sermonlens/internal/llm"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API analyzes sermon-transcript corpora (phrase and keyword
// frequencies, sermon series, two-corpus comparison) and generates content
// from them: evidence-quoting answers, blog posts, multi-post series, and
// devotionals.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: SermonLens API
//   description: |
//     Theological-content analysis and generation API over sermon-transcript
//     corpora. Corpus databases are discovered from a directory and opened
//     per request; generated series are persisted to a library.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the series library database
	db, err := library.New(cfg.LibraryDBPath)
	if err != nil {
		log.Fatalf("Failed to open library database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := library.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Library database initialized", "path", cfg.LibraryDBPath)

	seriesRepo := library.NewSeriesRepo(db)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Generation service; corpus stores are opened per request from the
	// corpus directory.
	service := generator.NewService(llmClient, seriesRepo, cfg.CorpusDir, cfg.MinPhraseOccurrences)
	slog.Info("Generation service initialized",
		"corpus_dir", cfg.CorpusDir,
		"min_phrase_occurrences", cfg.MinPhraseOccurrences,
	)

	// Create router with dependencies
	deps := &http.Deps{
		Service:      service,
		SeriesStore:  seriesRepo,
		State:        appstate.New(),
		LibraryDB:    db,
		CorpusDir:    cfg.CorpusDir,
		ContextChars: cfg.ContextSize,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
