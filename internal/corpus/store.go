package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrCorpusNotFound is returned when the requested corpus database file
	// does not exist.
	ErrCorpusNotFound = errors.New("corpus database not found")
)

// Record is a single sermon row pulled from a corpus database.
type Record struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Stats summarizes a corpus at a glance.
type Stats struct {
	SermonCount    int    `json:"sermon_count"`
	TotalChars     int    `json:"total_chars"`
	TotalWords     int    `json:"total_words"`
	AvgCharsPerDoc int    `json:"avg_chars_per_doc"`
	DateRange      string `json:"date_range"`
}

// Store provides read-only access to a single corpus database. A Store is
// opened for one operation or request and closed afterwards; corpus files on
// disk may be swapped out between requests.
type Store struct {
	db     *sql.DB
	schema Schema
	path   string
}

// Open opens the corpus database at path, detects its schema, and returns a
// ready Store. The caller must Close it.
func Open(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	schema, err := DetectSchema(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, schema: schema, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Schema returns the resolved schema for this corpus.
func (s *Store) Schema() Schema {
	return s.schema
}

// Path returns the database file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Stats returns record count, size totals, and the publication date range.
// Word counts are estimated as characters divided by five.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(%s)), 0), COALESCE(AVG(LENGTH(%s)), 0) FROM %s WHERE %s IS NOT NULL",
		s.schema.TextColumn, s.schema.TextColumn, s.schema.Table, s.schema.TextColumn,
	)

	stats := &Stats{DateRange: "Unknown"}
	var avg float64
	err := s.db.QueryRowContext(ctx, query).Scan(&stats.SermonCount, &stats.TotalChars, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute corpus stats: %w", err)
	}
	stats.AvgCharsPerDoc = int(avg)
	stats.TotalWords = stats.TotalChars / 5

	if s.schema.DateColumn != "" {
		query := fmt.Sprintf(
			"SELECT MIN(%s), MAX(%s) FROM %s WHERE %s IS NOT NULL",
			s.schema.DateColumn, s.schema.DateColumn, s.schema.Table, s.schema.DateColumn,
		)
		var minDate, maxDate sql.NullString
		if err := s.db.QueryRowContext(ctx, query).Scan(&minDate, &maxDate); err == nil &&
			minDate.Valid && maxDate.Valid {
			stats.DateRange = fmt.Sprintf("%s to %s", truncateDate(minDate.String), truncateDate(maxDate.String))
		}
	}

	return stats, nil
}

// truncateDate keeps the date portion of a stored timestamp.
func truncateDate(value string) string {
	if len(value) > 10 {
		return value[:10]
	}
	return value
}

// AllText concatenates every transcript in the corpus into one string,
// separated by single spaces. Callers lowercase the result once before
// scanning it for phrases.
func (s *Store) AllText(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s IS NOT NULL",
		s.schema.TextColumn, s.schema.Table, s.schema.TextColumn,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to read transcripts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var builder strings.Builder
	first := true
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return "", fmt.Errorf("failed to scan transcript: %w", err)
		}
		if !first {
			builder.WriteString(" ")
		}
		builder.WriteString(text)
		first = false
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("row iteration error: %w", err)
	}

	return builder.String(), nil
}

// Titles returns every non-null sermon title in the corpus.
func (s *Store) Titles(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT title FROM %s WHERE title IS NOT NULL", s.schema.Table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read titles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return titles, nil
}

// Count returns the number of records with a non-null transcript.
func (s *Store) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s IS NOT NULL",
		s.schema.Table, s.schema.TextColumn,
	)

	var count int
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// CountMatching returns how many records mention the term, matched
// case-insensitively as a substring of the transcript text.
func (s *Store) CountMatching(ctx context.Context, term string) (int, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE LOWER(%s) LIKE ?",
		s.schema.Table, s.schema.TextColumn,
	)

	var count int
	pattern := "%" + strings.ToLower(term) + "%"
	if err := s.db.QueryRowContext(ctx, query, pattern).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches for %q: %w", term, err)
	}
	return count, nil
}

// RecordsMatching returns records whose transcript mentions the term. A limit
// of zero or less returns every match.
func (s *Store) RecordsMatching(ctx context.Context, term string, limit int) ([]Record, error) {
	return s.RecordsMatchingAny(ctx, []string{term}, limit)
}

// RecordsMatchingAny returns records whose transcript mentions any of the
// terms, matched case-insensitively. A limit of zero or less returns every
// match.
func (s *Store) RecordsMatchingAny(ctx context.Context, terms []string, limit int) ([]Record, error) {
	return s.queryMatchingAny(ctx, terms, limit, "")
}

// LongestMatchingAny is RecordsMatchingAny ordered by transcript length,
// longest first. Generation flows prefer long sermons for source material.
func (s *Store) LongestMatchingAny(ctx context.Context, terms []string, limit int) ([]Record, error) {
	return s.queryMatchingAny(ctx, terms, limit, fmt.Sprintf("ORDER BY LENGTH(%s) DESC", s.schema.TextColumn))
}

func (s *Store) queryMatchingAny(ctx context.Context, terms []string, limit int, orderBy string) ([]Record, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))
	for _, term := range terms {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) LIKE ?", s.schema.TextColumn))
		args = append(args, "%"+strings.ToLower(term)+"%")
	}

	query := fmt.Sprintf(
		"SELECT COALESCE(title, 'Untitled'), %s FROM %s WHERE (%s) AND %s IS NOT NULL",
		s.schema.TextColumn, s.schema.Table, strings.Join(conditions, " OR "), s.schema.TextColumn,
	)
	if orderBy != "" {
		query += " " + orderBy
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.queryRecords(ctx, query, args...)
}

// RandomRecords returns up to n records sampled at random, for quick corpus
// surveys.
func (s *Store) RandomRecords(ctx context.Context, n int) ([]Record, error) {
	query := fmt.Sprintf(
		"SELECT COALESCE(title, 'Untitled'), %s FROM %s WHERE %s IS NOT NULL ORDER BY RANDOM() LIMIT ?",
		s.schema.TextColumn, s.schema.Table, s.schema.TextColumn,
	)
	return s.queryRecords(ctx, query, n)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Title, &rec.Text); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
