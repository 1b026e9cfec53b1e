package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"sermonlens/internal/corpus"
	"sermonlens/internal/generator/mocks"
	"sermonlens/internal/llm"
)

// seriesTestCorpus writes a corpus named <name>.db under dir with count
// sermons all mentioning grace.
func seriesTestCorpus(t *testing.T, dir, name string, count int) {
	t.Helper()

	records := make([]corpus.Record, 0, count)
	for i := 1; i <= count; i++ {
		records = append(records, corpus.Record{
			Title: fmt.Sprintf("Sermon %d", i),
			Text:  fmt.Sprintf("Sermon %d explores grace at length. %s", i, strings.Repeat("word ", i*20)),
		})
	}
	writeTestCorpus(t, filepath.Join(dir, name+".db"), records)
}

func TestService_GenerateSeries(t *testing.T) {
	corpusDir := t.TempDir()
	seriesTestCorpus(t, corpusDir, "main", 9)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			if params.MaxTokens != 4000 {
				t.Errorf("MaxTokens = %d, want 4000", params.MaxTokens)
			}
			if !strings.Contains(messages[0].Content, "SOURCE 1:") {
				t.Error("prompt missing framed sermon sources")
			}
			return "## Grace\n\nA post about grace.", nil
		}).
		Times(3)

	repo := newTestLibrary(t)
	svc := NewService(mockLLM, repo, corpusDir, 20)

	result, err := svc.GenerateSeries(context.Background(), SeriesRequest{
		Topic:          "Grace",
		Length:         "short",
		NumPosts:       3,
		SermonsPerPost: 3,
		CorpusWeights:  map[string]float64{"main": 1.0},
	})
	if err != nil {
		t.Fatalf("GenerateSeries() unexpected error: %v", err)
	}

	if len(result.Posts) != 3 {
		t.Fatalf("GenerateSeries() returned %d posts, want 3", len(result.Posts))
	}
	for i, post := range result.Posts {
		wantTitle := fmt.Sprintf("Grace - Part %d", i+1)
		if post.Title != wantTitle {
			t.Errorf("post %d title = %q, want %q", i, post.Title, wantTitle)
		}
		if post.PostNumber != i+1 {
			t.Errorf("post %d number = %d, want %d", i, post.PostNumber, i+1)
		}
		if !strings.Contains(post.HTMLContent, "<h2") {
			t.Errorf("post %d HTML missing heading: %q", i, post.HTMLContent)
		}
		if len(post.Sources) != 3 {
			t.Errorf("post %d used %d sermons, want 3", i, len(post.Sources))
		}
	}

	if result.SourceBreakdown["main"] != 9 {
		t.Errorf("GenerateSeries() breakdown = %v, want 9 from main", result.SourceBreakdown)
	}
	if result.Series.TotalWords != 3*1500 {
		t.Errorf("GenerateSeries() total words = %d, want %d", result.Series.TotalWords, 3*1500)
	}
	if math.Abs(result.Series.TotalCost-0.72) > 1e-9 {
		t.Errorf("GenerateSeries() total cost = %f, want 0.72", result.Series.TotalCost)
	}
	if !result.Saved {
		t.Error("GenerateSeries() did not save to the library")
	}

	// The auto-saved series is retrievable with all its posts.
	saved, posts, err := repo.Get(context.Background(), result.Series.ID)
	if err != nil {
		t.Fatalf("Get() after auto-save: %v", err)
	}
	if saved.Topic != "Grace" || len(posts) != 3 {
		t.Errorf("saved series = %q with %d posts, want Grace with 3", saved.Topic, len(posts))
	}
}

func TestService_GenerateSeries_SkipsUnopenableCorpus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewService(mocks.NewMockLLMClient(ctrl), nil, t.TempDir(), 20)
	_, err := svc.GenerateSeries(context.Background(), SeriesRequest{
		Topic:         "Grace",
		Length:        "short",
		NumPosts:      3,
		CorpusWeights: map[string]float64{"missing": 1.0},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GenerateSeries() error = %v, want ErrNotFound", err)
	}
}

func TestService_GenerateSeries_RejectsTraversalName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewService(mocks.NewMockLLMClient(ctrl), nil, t.TempDir(), 20)
	_, err := svc.GenerateSeries(context.Background(), SeriesRequest{
		Topic:         "Grace",
		Length:        "short",
		NumPosts:      3,
		CorpusWeights: map[string]float64{"../secrets": 1.0},
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("GenerateSeries() error = %v, want ValidationError", err)
	}
}

func TestService_Outline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLLM := mocks.NewMockLLMClient(ctrl)
	mockLLM.EXPECT().
		ChatWithMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
			if !strings.Contains(messages[0].Content, "Forgiveness") {
				t.Error("prompt missing topic")
			}
			if params.MaxTokens != 1500 {
				t.Errorf("MaxTokens = %d, want 1500", params.MaxTokens)
			}
			return "Post 1: ...", nil
		})

	svc := NewService(mockLLM, nil, t.TempDir(), 20)
	outline, err := svc.Outline(context.Background(), SeriesRequest{
		Topic:         "Forgiveness",
		Length:        "medium",
		NumPosts:      5,
		CorpusWeights: map[string]float64{"main": 1.0},
	})
	if err != nil {
		t.Fatalf("Outline() unexpected error: %v", err)
	}
	if outline != "Post 1: ..." {
		t.Errorf("Outline() = %q", outline)
	}
}

func TestValidateSeriesRequest(t *testing.T) {
	valid := func() SeriesRequest {
		return SeriesRequest{
			Topic:         "Grace",
			Length:        "short",
			NumPosts:      3,
			CorpusWeights: map[string]float64{"main": 1.0},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*SeriesRequest)
		wantErr bool
	}{
		{name: "valid with defaults", mutate: func(r *SeriesRequest) {}, wantErr: false},
		{name: "empty topic", mutate: func(r *SeriesRequest) { r.Topic = " " }, wantErr: true},
		{name: "too few posts", mutate: func(r *SeriesRequest) { r.NumPosts = 2 }, wantErr: true},
		{name: "too many posts", mutate: func(r *SeriesRequest) { r.NumPosts = 11 }, wantErr: true},
		{name: "too few sermons per post", mutate: func(r *SeriesRequest) { r.SermonsPerPost = 2 }, wantErr: true},
		{name: "too many sermons per post", mutate: func(r *SeriesRequest) { r.SermonsPerPost = 11 }, wantErr: true},
		{name: "unknown length", mutate: func(r *SeriesRequest) { r.Length = "epic" }, wantErr: true},
		{name: "no corpora", mutate: func(r *SeriesRequest) { r.CorpusWeights = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := validateSeriesRequest(&req)
			if tt.wantErr {
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("validateSeriesRequest() error = %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validateSeriesRequest() unexpected error: %v", err)
			}
			if req.SermonsPerPost != 5 {
				t.Errorf("SermonsPerPost default = %d, want 5", req.SermonsPerPost)
			}
			if req.Audience == "" || req.Style == "" {
				t.Error("audience and style defaults not applied")
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	t.Run("scales to one", func(t *testing.T) {
		got := normalizeWeights(map[string]float64{"a": 3, "b": 1})
		if math.Abs(got["a"]-0.75) > 1e-9 || math.Abs(got["b"]-0.25) > 1e-9 {
			t.Errorf("normalizeWeights() = %v", got)
		}
	})

	t.Run("drops non-positive weights", func(t *testing.T) {
		got := normalizeWeights(map[string]float64{"a": 2, "b": -1, "c": 0})
		if len(got) != 1 || math.Abs(got["a"]-1.0) > 1e-9 {
			t.Errorf("normalizeWeights() = %v", got)
		}
	})

	t.Run("equal shares when all zero", func(t *testing.T) {
		got := normalizeWeights(map[string]float64{"a": 0, "b": 0})
		if math.Abs(got["a"]-0.5) > 1e-9 || math.Abs(got["b"]-0.5) > 1e-9 {
			t.Errorf("normalizeWeights() = %v", got)
		}
	})
}
