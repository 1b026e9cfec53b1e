package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"sermonlens/internal/corpus"
	"sermonlens/internal/generator/mocks"
	"sermonlens/internal/llm"
)

func TestService_Analyze(t *testing.T) {
	store := openTestCorpus(t, []corpus.Record{
		{Title: "Romans: Faith", Text: "The grace of god endures forever."},
		{Title: "Romans: Law", Text: "The grace of god is not earned by works."},
		{Title: "Romans: Hope", Text: "The grace of god sustains us in hope."},
	})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			if params.MaxTokens != 3000 {
				t.Errorf("MaxTokens = %d, want 3000", params.MaxTokens)
			}
			prompt := messages[0].Content
			if !strings.Contains(prompt, "COMPREHENSIVE CORPUS ANALYSIS") {
				t.Error("prompt missing analysis summary")
			}
			if !strings.Contains(prompt, "ASSESSMENT STRUCTURE") {
				t.Error("prompt missing evaluation instructions")
			}
			return "## 1. TRADITION\nReformed.", nil
		})

	svc := NewService(mockLLM, nil, t.TempDir(), 2)
	result, err := svc.Analyze(context.Background(), store, "teacher-a")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Corpus != "teacher-a" {
		t.Errorf("Analyze() corpus = %q, want %q", result.Corpus, "teacher-a")
	}
	if result.GeneratedAt.IsZero() {
		t.Error("Analyze() did not stamp generation time")
	}
	if result.Stats.SermonCount != 3 {
		t.Errorf("Analyze() sermon count = %d, want 3", result.Stats.SermonCount)
	}

	foundPhrase := false
	for _, pc := range result.Phrases {
		if pc.Phrase == "grace of god" && pc.Count == 3 {
			foundPhrase = true
		}
	}
	if !foundPhrase {
		t.Errorf("Analyze() phrases = %v, want grace of god x3", result.Phrases)
	}

	foundKeyword := false
	for _, kc := range result.Keywords {
		if kc.Phrase == "god" && kc.Count == 3 {
			foundKeyword = true
		}
	}
	if !foundKeyword {
		t.Errorf("Analyze() keywords missing god x3")
	}

	if len(result.Series) != 1 || result.Series[0].Name != "Romans" || result.Series[0].Count != 3 {
		t.Errorf("Analyze() series = %v, want Romans x3", result.Series)
	}
	if len(result.Samples) != 3 {
		t.Errorf("Analyze() sampled %d records, want 3", len(result.Samples))
	}
	if result.Evaluation != "## 1. TRADITION\nReformed." {
		t.Errorf("Analyze() evaluation = %q", result.Evaluation)
	}
}

func TestService_Analyze_EvaluationFailure(t *testing.T) {
	store := openTestCorpus(t, []corpus.Record{
		{Title: "One", Text: "grace"},
	})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", fmt.Errorf("timeout"))

	svc := NewService(mockLLM, nil, t.TempDir(), 20)
	_, err := svc.Analyze(context.Background(), store, "teacher-a")
	if !errors.Is(err, ErrExternalService) {
		t.Errorf("Analyze() error = %v, want ErrExternalService", err)
	}
}

func TestService_Survey(t *testing.T) {
	store := openTestCorpus(t, []corpus.Record{
		{Title: "On Faith", Text: "Faith comes by hearing the word."},
	})

	t.Run("successful survey", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLLM := mocks.NewMockLLMClient(ctrl)
		mockLLM.EXPECT().
			ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
				if params.MaxTokens != 2000 {
					t.Errorf("MaxTokens = %d, want 2000", params.MaxTokens)
				}
				if !strings.Contains(messages[0].Content, "On Faith") {
					t.Error("prompt missing sampled transcript")
				}
				return "Looks Reformed.", nil
			})

		svc := NewService(mockLLM, nil, t.TempDir(), 20)
		answer, err := svc.Survey(context.Background(), store)
		if err != nil {
			t.Fatalf("Survey() unexpected error: %v", err)
		}
		if answer != "Looks Reformed." {
			t.Errorf("Survey() = %q", answer)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		empty := openTestCorpus(t, nil)
		svc := NewService(mocks.NewMockLLMClient(ctrl), nil, t.TempDir(), 20)
		_, err := svc.Survey(context.Background(), empty)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Survey() error = %v, want ErrNotFound", err)
		}
	})
}

func TestService_CompareThemes(t *testing.T) {
	storeA := openTestCorpus(t, []corpus.Record{
		{Title: "A1", Text: "Prayer changes things when the church prays together."},
	})
	storeB := openTestCorpus(t, []corpus.Record{
		{Title: "B1", Text: "Prayer is communion, worship is the overflow."},
	})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			if params.MaxTokens != 1500 {
				t.Errorf("MaxTokens = %d, want 1500", params.MaxTokens)
			}
			prompt := messages[0].Content
			if !strings.Contains(prompt, "Teacher A") || !strings.Contains(prompt, "Teacher B") {
				t.Error("prompt missing corpus names")
			}
			return "Both emphasize prayer.", nil
		})

	svc := NewService(mockLLM, nil, t.TempDir(), 20)
	// Marriage & Family has no hits in either corpus and is skipped; only the
	// prayer theme yields a comparison.
	results, err := svc.CompareThemes(context.Background(), storeA, storeB,
		"Teacher A", "Teacher B", []string{"Prayer & Worship", "Marriage & Family"})
	if err != nil {
		t.Fatalf("CompareThemes() unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("CompareThemes() returned %d themes, want 1", len(results))
	}
	got := results[0]
	if got.Theme != "Prayer & Worship" {
		t.Errorf("CompareThemes() theme = %q", got.Theme)
	}
	if got.Analysis != "Both emphasize prayer." {
		t.Errorf("CompareThemes() analysis = %q", got.Analysis)
	}
	if len(got.ExcerptsA) == 0 || len(got.ExcerptsB) == 0 {
		t.Error("CompareThemes() missing grounding excerpts")
	}
}

func TestService_CompareThemes_UnknownThemeUsesItself(t *testing.T) {
	storeA := openTestCorpus(t, []corpus.Record{
		{Title: "A1", Text: "Sabbath rest is a gift, not a burden."},
	})
	storeB := openTestCorpus(t, []corpus.Record{
		{Title: "B1", Text: "Keeping sabbath reorders the week around God."},
	})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("Comparison.", nil)

	svc := NewService(mockLLM, nil, t.TempDir(), 20)
	results, err := svc.CompareThemes(context.Background(), storeA, storeB,
		"A", "B", []string{"sabbath"})
	if err != nil {
		t.Fatalf("CompareThemes() unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("CompareThemes() returned %d themes, want 1", len(results))
	}
}
