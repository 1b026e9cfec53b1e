package generator

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"sermonlens/internal/corpus"
	"sermonlens/internal/library"
)

// writeTestCorpus builds a transcripts database at path from title/text
// pairs.
func writeTestCorpus(t *testing.T, path string, records []corpus.Record) {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	_, err = db.Exec("CREATE TABLE transcripts (id INTEGER PRIMARY KEY, title TEXT, transcript_text TEXT)")
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	for _, rec := range records {
		_, err = db.Exec("INSERT INTO transcripts (title, transcript_text) VALUES (?, ?)", rec.Title, rec.Text)
		if err != nil {
			t.Fatalf("failed to insert test row: %v", err)
		}
	}
}

// openTestCorpus builds a corpus in a temp dir and opens a Store over it.
func openTestCorpus(t *testing.T, records []corpus.Record) *corpus.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.db")
	writeTestCorpus(t, path, records)

	store, err := corpus.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("failed to open corpus: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// newTestLibrary returns a SeriesRepo over a fresh temp database.
func newTestLibrary(t *testing.T) *library.SeriesRepo {
	t.Helper()

	db, err := library.New(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("failed to open library database: %v", err)
	}
	if err := library.Migrate(db); err != nil {
		t.Fatalf("failed to migrate library database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return library.NewSeriesRepo(db)
}
