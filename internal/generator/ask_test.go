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

func TestService_Ask(t *testing.T) {
	store := openTestCorpus(t, []corpus.Record{
		{Title: "On Prosperity", Text: "The prosperity message says give to get."},
		{Title: "On Faith", Text: "Faith comes by hearing."},
	})

	tests := []struct {
		name        string
		question    string
		setupMock   func(*mocks.MockLLMClient)
		wantAnswer  string
		wantSources []string
		wantErr     error
	}{
		{
			name:     "successful answer with sources",
			question: "Does this teacher preach prosperity?",
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
						if len(messages) != 1 {
							t.Errorf("expected 1 message, got %d", len(messages))
						}
						if !strings.Contains(messages[0].Content, "Does this teacher preach prosperity?") {
							t.Error("prompt missing the question")
						}
						if !strings.Contains(messages[0].Content, "On Prosperity") {
							t.Error("prompt missing transcript context")
						}
						if params.MaxTokens != 2000 {
							t.Errorf("MaxTokens = %d, want 2000", params.MaxTokens)
						}
						return "Yes, with quoted evidence.", nil
					})
			},
			wantAnswer:  "Yes, with quoted evidence.",
			wantSources: []string{"On Prosperity"},
		},
		{
			name:      "empty question",
			question:  "   ",
			setupMock: func(m *mocks.MockLLMClient) {},
			wantErr:   ErrInvalidInput, // matched by type below
		},
		{
			name:      "no relevant content",
			question:  "thoughts on quantum chromodynamics",
			setupMock: func(m *mocks.MockLLMClient) {},
			wantErr:   ErrNotFound,
		},
		{
			name:     "generation service failure",
			question: "Does this teacher preach prosperity?",
			setupMock: func(m *mocks.MockLLMClient) {
				m.EXPECT().
					ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", fmt.Errorf("connection refused"))
			},
			wantErr: ErrExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockLLM := mocks.NewMockLLMClient(ctrl)
			tt.setupMock(mockLLM)
			svc := NewService(mockLLM, nil, t.TempDir(), 20)

			result, err := svc.Ask(context.Background(), store, tt.question)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("Ask() expected error, got nil")
				}
				var validationErr *ValidationError
				if tt.wantErr == ErrInvalidInput {
					if !errors.As(err, &validationErr) {
						t.Errorf("Ask() error = %v, want ValidationError", err)
					}
				} else if !errors.Is(err, tt.wantErr) {
					t.Errorf("Ask() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Ask() unexpected error: %v", err)
			}
			if result.Answer != tt.wantAnswer {
				t.Errorf("Ask() answer = %q, want %q", result.Answer, tt.wantAnswer)
			}
			if len(result.Sources) != len(tt.wantSources) {
				t.Fatalf("Ask() sources = %v, want %v", result.Sources, tt.wantSources)
			}
			for i := range result.Sources {
				if result.Sources[i] != tt.wantSources[i] {
					t.Errorf("Ask() source[%d] = %q, want %q", i, result.Sources[i], tt.wantSources[i])
				}
			}
		})
	}
}

func TestExtractSearchTerms(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{
			name:     "known vocabulary extracted",
			question: "Does this teacher connect prosperity with faith?",
			want:     []string{"prosperity", "faith"},
		},
		{
			name:     "multi-word vocabulary",
			question: "What about the holy spirit and spiritual warfare?",
			want:     []string{"holy spirit", "spiritual warfare"},
		},
		{
			name:     "fallback to long words",
			question: "thoughts about weekly potlucks",
			want:     []string{"thoughts", "about", "weekly"},
		},
		{
			name:     "at most five terms",
			question: "god grace faith prayer sin healing prophecy",
			want:     []string{"god", "healing", "prayer", "sin", "prophecy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractSearchTerms(tt.question)
			if len(got) != len(tt.want) {
				t.Fatalf("extractSearchTerms() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("extractSearchTerms()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
