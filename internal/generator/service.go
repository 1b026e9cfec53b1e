// Package generator orchestrates the generation service: corpus analysis
// evaluations, question answering, blog posts, multi-post series, and daily
// devotionals, all grounded on transcript content pulled from the corpus
// stores.
package generator

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks sermonlens/internal/generator LLMClient

import (
	"context"
	"log/slog"

	"sermonlens/internal/library"
	"sermonlens/internal/llm"
)

// LLMClient is the generation-service surface the orchestrator needs.
type LLMClient interface {
	// ChatWithMessages sends a full message list with explicit parameters.
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Service runs the generation flows.
type Service struct {
	llm                  LLMClient
	seriesStore          library.SeriesStore
	corpusDir            string
	minPhraseOccurrences int
	logger               *slog.Logger
}

// NewService creates a generator service. The series store may be nil when
// auto-save is not wanted (tests).
func NewService(llmClient LLMClient, seriesStore library.SeriesStore, corpusDir string, minPhraseOccurrences int) *Service {
	return &Service{
		llm:                  llmClient,
		seriesStore:          seriesStore,
		corpusDir:            corpusDir,
		minPhraseOccurrences: minPhraseOccurrences,
		logger:               slog.Default(),
	}
}
