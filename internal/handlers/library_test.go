package handlers

import (
	"archive/tar"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ulikunitz/xz"
	"go.uber.org/mock/gomock"

	"sermonlens/internal/corpus"
	"sermonlens/internal/library"
)

// libraryRouter mounts the library handler the way the real router does.
func libraryRouter(h *LibraryHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/library", h.List)
	r.Get("/api/v1/library/{id}", h.Get)
	r.Delete("/api/v1/library/{id}", h.Delete)
	r.Patch("/api/v1/library/{id}/status", h.UpdateStatus)
	r.Get("/api/v1/library/{id}/bundle", h.Bundle)
	return r
}

func seedSeries(t *testing.T, repo *library.SeriesRepo) *library.Series {
	t.Helper()

	series := &library.Series{
		Title:      "Grace",
		Topic:      "Grace",
		NumPosts:   2,
		Audience:   "General Christian",
		Style:      "Progressive Journey",
		PostLength: "short",
	}
	posts := []library.Post{
		{PostNumber: 1, Title: "Grace - Part 1", MarkdownContent: "# One", HTMLContent: "<h1>One</h1>", WordCount: 2},
		{PostNumber: 2, Title: "Grace - Part 2", MarkdownContent: "# Two", HTMLContent: "<h1>Two</h1>", WordCount: 2},
	}
	if err := repo.Create(context.Background(), series, posts); err != nil {
		t.Fatalf("failed to seed series: %v", err)
	}
	return series
}

func TestLibraryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestEnv(t, ctrl, []corpus.Record{{Title: "T", Text: "text"}})
	series := seedSeries(t, env.repo)
	router := libraryRouter(NewLibraryHandler(env.repo))

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/library", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp ListResponse
		decodeBody(t, rec, &resp)
		if resp.Count != 1 || resp.Series[0].Title != "Grace" {
			t.Errorf("list = %+v", resp)
		}
	})

	t.Run("list with search miss", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/library?q=nothing", nil))

		var resp ListResponse
		decodeBody(t, rec, &resp)
		if resp.Count != 0 {
			t.Errorf("count = %d, want 0", resp.Count)
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/library/"+series.ID, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp SeriesDetailResponse
		decodeBody(t, rec, &resp)
		if len(resp.Posts) != 2 || resp.Posts[0].PostNumber != 1 {
			t.Errorf("posts = %+v", resp.Posts)
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/library/does-not-exist", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("update status", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/library/"+series.ID+"/status",
			strings.NewReader(`{"status": "published"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
		}

		got, _, err := env.repo.Get(context.Background(), series.ID)
		if err != nil {
			t.Fatalf("Get() after status update: %v", err)
		}
		if got.Status != library.StatusPublished {
			t.Errorf("status = %q, want published", got.Status)
		}
	})

	t.Run("update status rejects unknown value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/library/"+series.ID+"/status",
			strings.NewReader(`{"status": "archived"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bundle download", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/library/"+series.ID+"/bundle", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/x-xz" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "series-Grace.tar.xz") {
			t.Errorf("Content-Disposition = %q", got)
		}

		xzReader, err := xz.NewReader(rec.Body)
		if err != nil {
			t.Fatalf("bundle is not an xz stream: %v", err)
		}
		var names []string
		tarReader := tar.NewReader(xzReader)
		for {
			header, err := tarReader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("failed to read bundle entry: %v", err)
			}
			names = append(names, header.Name)
		}
		joined := strings.Join(names, " ")
		for _, want := range []string{"manifest.json", "post-1.md", "post-2.html", "series.html", "README.md"} {
			if !strings.Contains(joined, want) {
				t.Errorf("bundle missing %s (got %v)", want, names)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/library/"+series.ID, nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/library/"+series.ID, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete status = %d, want 404", rec.Code)
		}
	})
}
