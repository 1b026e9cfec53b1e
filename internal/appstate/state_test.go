package appstate

import (
	"sync"
	"testing"

	"sermonlens/internal/analysis"
)

func TestState(t *testing.T) {
	state := New()

	if state.Analysis() != nil {
		t.Error("new state should hold no analysis")
	}

	first := &analysis.Result{Corpus: "a"}
	state.SetAnalysis(first)
	if got := state.Analysis(); got != first {
		t.Errorf("Analysis() = %v, want first result", got)
	}

	second := &analysis.Result{Corpus: "b"}
	state.SetAnalysis(second)
	if got := state.Analysis(); got != second {
		t.Error("SetAnalysis() did not replace the stored result")
	}

	state.Clear()
	if state.Analysis() != nil {
		t.Error("Clear() did not drop the stored result")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	state := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.SetAnalysis(&analysis.Result{Corpus: "x"})
		}()
		go func() {
			defer wg.Done()
			_ = state.Analysis()
		}()
	}
	wg.Wait()

	if state.Analysis() == nil {
		t.Error("expected an analysis after concurrent writes")
	}
}
