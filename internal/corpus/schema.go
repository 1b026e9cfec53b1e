package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrSchemaNotFound is returned when a database contains no recognized
	// transcript table or text column.
	ErrSchemaNotFound = errors.New("no recognized transcript schema")
)

// Accepted identifier allow-lists. Table and column names cannot be bound as
// query parameters, so every identifier interpolated into SQL must come from
// one of these lists.
var (
	acceptedTables      = []string{"transcripts", "video_transcripts"}
	acceptedTextColumns = []string{"transcript_text", "transcript"}
	acceptedDateColumns = []string{"published_at", "created_at", "created_date"}
)

// Schema describes the resolved layout of a corpus database.
type Schema struct {
	Table      string
	TextColumn string
	DateColumn string // empty when the table has no recognized date column
}

// DetectSchema inspects a corpus database and resolves its transcript table
// and text column against the accepted allow-lists. The text column
// preference order is transcript_text, then transcript. Returns
// ErrSchemaNotFound when no accepted table or text column exists.
func DetectSchema(ctx context.Context, db *sql.DB) (Schema, error) {
	var table string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name IN (?, ?)",
		acceptedTables[0], acceptedTables[1],
	).Scan(&table)
	if err == sql.ErrNoRows {
		return Schema{}, ErrSchemaNotFound
	}
	if err != nil {
		return Schema{}, fmt.Errorf("failed to inspect tables: %w", err)
	}

	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return Schema{}, err
	}

	schema := Schema{Table: table}
	for _, candidate := range acceptedTextColumns {
		if columns[candidate] {
			schema.TextColumn = candidate
			break
		}
	}
	if schema.TextColumn == "" {
		return Schema{}, ErrSchemaNotFound
	}

	for _, candidate := range acceptedDateColumns {
		if columns[candidate] {
			schema.DateColumn = candidate
			break
		}
	}

	return schema, nil
}

// tableColumns returns the set of column names for a table. The table name
// must already be validated against the allow-list: PRAGMA statements cannot
// take bound parameters.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	if !isAcceptedTable(table) {
		return nil, fmt.Errorf("table %q is not in the accepted list", table)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect columns: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return columns, nil
}

func isAcceptedTable(name string) bool {
	for _, t := range acceptedTables {
		if name == t {
			return true
		}
	}
	return false
}
