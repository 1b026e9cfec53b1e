package library

import "time"

// Series status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Series is the metadata row for one generated series.
type Series struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Topic         string             `json:"topic"`
	NumPosts      int                `json:"num_posts"`
	Audience      string             `json:"audience"`
	Style         string             `json:"style"`
	PostLength    string             `json:"post_length"`
	CreatedAt     time.Time          `json:"created_at"`
	SourceCorpora map[string]float64 `json:"source_corpora"` // corpus name -> weight
	TotalWords    int                `json:"total_words"`
	TotalCost     float64            `json:"total_cost"`
	Status        string             `json:"status"`
	Tags          string             `json:"tags,omitempty"`
	Notes         string             `json:"notes,omitempty"`
}

// Post is one generated post within a series, stored as both Markdown and
// rendered HTML.
type Post struct {
	ID              string    `json:"id"`
	SeriesID        string    `json:"series_id"`
	PostNumber      int       `json:"post_number"`
	Title           string    `json:"title"`
	HTMLContent     string    `json:"html_content"`
	MarkdownContent string    `json:"markdown_content"`
	WordCount       int       `json:"word_count"`
	Sources         []string  `json:"sources"`
	CreatedAt       time.Time `json:"created_at"`
}
