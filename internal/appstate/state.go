// Package appstate holds cross-request application state. Each operation is
// synchronous, but the HTTP server is not, so access is mutex-guarded.
package appstate

import (
	"sync"

	"sermonlens/internal/analysis"
)

// State holds the most recent deep analysis. Export handlers read it;
// re-running an analysis replaces it.
type State struct {
	mu           sync.RWMutex
	lastAnalysis *analysis.Result
}

// New creates an empty State.
func New() *State {
	return &State{}
}

// SetAnalysis stores the latest analysis result.
func (s *State) SetAnalysis(result *analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnalysis = result
}

// Analysis returns the last stored analysis, or nil if none has run yet.
func (s *State) Analysis() *analysis.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAnalysis
}

// Clear drops the stored analysis.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnalysis = nil
}
