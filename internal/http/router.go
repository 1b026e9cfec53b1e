// Package http assembles the chi router for the analysis and generation API.
package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sermonlens/internal/appstate"
	"sermonlens/internal/generator"
	"sermonlens/internal/handlers"
	"sermonlens/internal/library"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Service      *generator.Service
	SeriesStore  library.SeriesStore
	State        *appstate.State
	LibraryDB    *sql.DB
	CorpusDir    string
	ContextChars int
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	healthHandler := handlers.NewHealthHandler(deps.LibraryDB, deps.CorpusDir)
	corporaHandler := handlers.NewCorporaHandler(deps.CorpusDir)
	analyzeHandler := handlers.NewAnalyzeHandler(deps.Service, deps.State, deps.CorpusDir)
	surveyHandler := handlers.NewSurveyHandler(deps.Service, deps.CorpusDir)
	contextsHandler := handlers.NewContextsHandler(deps.CorpusDir, deps.ContextChars)
	compareTopics := handlers.NewCompareTopicsHandler(deps.CorpusDir)
	compareThemes := handlers.NewCompareThemesHandler(deps.Service, deps.CorpusDir)
	askHandler := handlers.NewAskHandler(deps.Service, deps.CorpusDir)
	blogHandler := handlers.NewBlogHandler(deps.Service, deps.CorpusDir)
	seriesHandler := handlers.NewSeriesHandler(deps.Service)
	outlineHandler := handlers.NewSeriesOutlineHandler(deps.Service)
	devotionalsHandler := handlers.NewDevotionalsHandler(deps.Service, deps.CorpusDir)
	libraryHandler := handlers.NewLibraryHandler(deps.SeriesStore)
	exportHandler := handlers.NewExportHandler(deps.State)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodGet, "/corpora", corporaHandler)
			r.Method(http.MethodPost, "/analyze", analyzeHandler)
			r.Method(http.MethodPost, "/survey", surveyHandler)
			r.Method(http.MethodPost, "/contexts", contextsHandler)
			r.Method(http.MethodPost, "/compare/topics", compareTopics)
			r.Method(http.MethodPost, "/compare/themes", compareThemes)
			r.Method(http.MethodPost, "/ask", askHandler)
			r.Method(http.MethodPost, "/blog", blogHandler)
			r.Method(http.MethodPost, "/series", seriesHandler)
			r.Method(http.MethodPost, "/series/outline", outlineHandler)
			r.Method(http.MethodPost, "/devotionals", devotionalsHandler)

			r.Get("/library", libraryHandler.List)
			r.Get("/library/{id}", libraryHandler.Get)
			r.Delete("/library/{id}", libraryHandler.Delete)
			r.Patch("/library/{id}/status", libraryHandler.UpdateStatus)
			r.Get("/library/{id}/bundle", libraryHandler.Bundle)

			r.Get("/export/markdown", exportHandler.Markdown)
			r.Get("/export/json", exportHandler.JSON)
		})
	})

	return r
}
