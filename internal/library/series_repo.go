package library

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_series_store.go -package=mocks sermonlens/internal/library SeriesStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a series is not found.
	ErrNotFound = errors.New("series not found")
)

// Sort orders for listing series.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortAlpha  = "alpha"
)

// SeriesStore defines the interface for series library operations.
type SeriesStore interface {
	// Create saves a series and its posts. Missing IDs are generated.
	Create(ctx context.Context, series *Series, posts []Post) error
	// List returns series metadata, optionally filtered by a title/topic
	// substring and ordered by the given sort. An unknown sort falls back
	// to newest first.
	List(ctx context.Context, query, sort string) ([]Series, error)
	// Get returns a series with its posts ordered by post number.
	// Returns ErrNotFound if no such series exists.
	Get(ctx context.Context, id string) (*Series, []Post, error)
	// Delete removes a series and, via cascade, its posts.
	Delete(ctx context.Context, id string) error
	// UpdateStatus moves a series between draft and published.
	UpdateStatus(ctx context.Context, id, status string) error
}

// SeriesRepo provides series library operations backed by sqlite.
// It implements the SeriesStore interface.
type SeriesRepo struct {
	db *sql.DB
}

// NewSeriesRepo creates a new SeriesRepo.
func NewSeriesRepo(db *sql.DB) *SeriesRepo {
	return &SeriesRepo{db: db}
}

// Create saves a series and its posts in one transaction.
func (r *SeriesRepo) Create(ctx context.Context, series *Series, posts []Post) error {
	if series.ID == "" {
		series.ID = uuid.New().String()
	}
	if series.Status == "" {
		series.Status = StatusDraft
	}
	if series.CreatedAt.IsZero() {
		series.CreatedAt = time.Now().UTC()
	}

	sources, err := json.Marshal(series.SourceCorpora)
	if err != nil {
		return fmt.Errorf("failed to encode source corpora: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO series_library (
			series_id, series_title, topic, num_posts, audience, style,
			post_length, date_created, source_corpora, total_words,
			total_cost, status, tags, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		series.ID, series.Title, series.Topic, series.NumPosts, series.Audience,
		series.Style, series.PostLength, series.CreatedAt.Format("2006-01-02 15:04:05"),
		string(sources), series.TotalWords, series.TotalCost, series.Status,
		series.Tags, series.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert series: %w", err)
	}

	for i := range posts {
		post := &posts[i]
		if post.ID == "" {
			post.ID = uuid.New().String()
		}
		post.SeriesID = series.ID
		if post.CreatedAt.IsZero() {
			post.CreatedAt = series.CreatedAt
		}

		postSources, err := json.Marshal(post.Sources)
		if err != nil {
			return fmt.Errorf("failed to encode post sources: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO posts (
				post_id, series_id, post_number, post_title, html_content,
				markdown_content, word_count, sources_used, date_created
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			post.ID, post.SeriesID, post.PostNumber, post.Title, post.HTMLContent,
			post.MarkdownContent, post.WordCount, string(postSources),
			post.CreatedAt.Format("2006-01-02 15:04:05"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert post %d: %w", post.PostNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series: %w", err)
	}
	return nil
}

// List returns series metadata, newest first by default. A non-empty query
// filters by title or topic substring.
func (r *SeriesRepo) List(ctx context.Context, query, sort string) ([]Series, error) {
	stmt := `SELECT series_id, series_title, topic, num_posts, audience, style,
		post_length, date_created, source_corpora, total_words, total_cost,
		status, tags, notes FROM series_library`

	var args []any
	if query != "" {
		stmt += " WHERE series_title LIKE ? OR topic LIKE ?"
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}

	switch sort {
	case SortOldest:
		stmt += " ORDER BY date_created ASC"
	case SortAlpha:
		stmt += " ORDER BY series_title COLLATE NOCASE ASC"
	default:
		stmt += " ORDER BY date_created DESC"
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *series)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// Get returns a series and its posts ordered by post number.
func (r *SeriesRepo) Get(ctx context.Context, id string) (*Series, []Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT series_id, series_title, topic, num_posts, audience, style,
			post_length, date_created, source_corpora, total_words, total_cost,
			status, tags, notes FROM series_library WHERE series_id = ?`, id)

	series, err := scanSeries(row)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT post_id, series_id, post_number, post_title, html_content,
			markdown_content, word_count, sources_used, date_created
		FROM posts WHERE series_id = ? ORDER BY post_number`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var posts []Post
	for rows.Next() {
		var post Post
		var sourcesJSON sql.NullString
		var createdAtStr string
		err := rows.Scan(&post.ID, &post.SeriesID, &post.PostNumber, &post.Title,
			&post.HTMLContent, &post.MarkdownContent, &post.WordCount,
			&sourcesJSON, &createdAtStr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan post: %w", err)
		}

		if sourcesJSON.Valid && sourcesJSON.String != "" {
			if err := json.Unmarshal([]byte(sourcesJSON.String), &post.Sources); err != nil {
				return nil, nil, fmt.Errorf("failed to decode post sources: %w", err)
			}
		}
		post.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, nil, err
		}

		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration error: %w", err)
	}

	return series, posts, nil
}

// Delete removes a series; its posts go with it via the foreign key cascade.
func (r *SeriesRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM series_library WHERE series_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus moves a series between draft and published.
func (r *SeriesRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if status != StatusDraft && status != StatusPublished {
		return fmt.Errorf("invalid status %q", status)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE series_library SET status = ? WHERE series_id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(row rowScanner) (*Series, error) {
	var series Series
	var sourcesJSON sql.NullString
	var createdAtStr string
	var tags, notes sql.NullString

	err := row.Scan(&series.ID, &series.Title, &series.Topic, &series.NumPosts,
		&series.Audience, &series.Style, &series.PostLength, &createdAtStr,
		&sourcesJSON, &series.TotalWords, &series.TotalCost, &series.Status,
		&tags, &notes)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan series: %w", err)
	}

	if sourcesJSON.Valid && sourcesJSON.String != "" {
		if err := json.Unmarshal([]byte(sourcesJSON.String), &series.SourceCorpora); err != nil {
			return nil, fmt.Errorf("failed to decode source corpora: %w", err)
		}
	}
	series.Tags = tags.String
	series.Notes = notes.String

	series.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}

	return &series, nil
}

// parseTimestamp handles both sqlite DATETIME and RFC3339 formats.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t, nil
}
