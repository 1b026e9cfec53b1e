// Package export writes analysis reports and downloadable content bundles.
// Bundles are tar.xz archives carrying a manifest.json that records every
// file's size and BLAKE3 digest, so a consumer can verify what it unpacked.
package export

import (
	"archive/tar"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"sermonlens/internal/generator"
	"sermonlens/internal/library"
)

// ManifestEntry records one bundled file.
type ManifestEntry struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	BLAKE3    string `json:"blake3"`
}

// Manifest describes the contents of a bundle.
type Manifest struct {
	SeriesID  string          `json:"series_id,omitempty"`
	Title     string          `json:"title"`
	Topic     string          `json:"topic,omitempty"`
	NumPosts  int             `json:"num_posts"`
	CreatedAt string          `json:"created_at"`
	Files     []ManifestEntry `json:"files"`
}

// bundleFile is one entry staged for archiving.
type bundleFile struct {
	name string
	data []byte
}

// BundleSeries writes a tar.xz archive of a series to w: each post as
// Markdown and HTML, one complete-series HTML page, a README, and the
// manifest.
func BundleSeries(w io.Writer, series *library.Series, posts []library.Post) error {
	files := make([]bundleFile, 0, 2*len(posts)+2)
	for _, post := range posts {
		files = append(files,
			bundleFile{name: fmt.Sprintf("post-%d.md", post.PostNumber), data: []byte(post.MarkdownContent)},
			bundleFile{name: fmt.Sprintf("post-%d.html", post.PostNumber), data: []byte(post.HTMLContent)},
		)
	}
	files = append(files,
		bundleFile{name: "series.html", data: seriesHTML(series, posts)},
		bundleFile{name: "README.md", data: seriesReadme(series, posts)},
	)

	manifest := &Manifest{
		SeriesID:  series.ID,
		Title:     series.Title,
		Topic:     series.Topic,
		NumPosts:  len(posts),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return writeBundle(w, manifest, files)
}

// BundleDevotionals writes a tar.xz archive of a devotional set to w: one
// Markdown and one HTML file per day, a README, and the manifest.
func BundleDevotionals(w io.Writer, topic string, devotionals []generator.Devotional) error {
	files := make([]bundleFile, 0, 2*len(devotionals)+1)
	for i, devotional := range devotionals {
		markdown := devotionalMarkdown(devotional, i+1)
		rendered, err := generator.RenderHTML(markdown)
		if err != nil {
			return fmt.Errorf("failed to render day %d: %w", i+1, err)
		}
		files = append(files,
			bundleFile{name: fmt.Sprintf("day-%d.md", i+1), data: []byte(markdown)},
			bundleFile{name: fmt.Sprintf("day-%d.html", i+1), data: []byte(rendered)},
		)
	}
	files = append(files, bundleFile{name: "README.md", data: devotionalReadme(topic, devotionals)})

	manifest := &Manifest{
		Title:     fmt.Sprintf("Devotionals: %s", topic),
		Topic:     topic,
		NumPosts:  len(devotionals),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return writeBundle(w, manifest, files)
}

// writeBundle archives manifest.json followed by every staged file. The
// manifest's Files list is filled from the staged files before writing.
func writeBundle(w io.Writer, manifest *Manifest, files []bundleFile) error {
	manifest.Files = make([]ManifestEntry, 0, len(files))
	for _, f := range files {
		digest := blake3.Sum256(f.data)
		manifest.Files = append(manifest.Files, ManifestEntry{
			Name:      f.name,
			SizeBytes: int64(len(f.data)),
			BLAKE3:    hex.EncodeToString(digest[:]),
		})
	}

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	xzWriter, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	tarWriter := tar.NewWriter(xzWriter)

	entries := append([]bundleFile{{name: "manifest.json", data: manifestJSON}}, files...)
	modTime := time.Now().UTC()
	for _, entry := range entries {
		header := &tar.Header{
			Name:    entry.name,
			Mode:    0644,
			Size:    int64(len(entry.data)),
			ModTime: modTime,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write header for %s: %w", entry.name, err)
		}
		if _, err := tarWriter.Write(entry.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := xzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close compressor: %w", err)
	}
	return nil
}

// seriesHTML assembles every post into one standalone HTML page.
func seriesHTML(series *library.Series, posts []library.Post) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n</head>\n<body>\n", html.EscapeString(series.Title))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(series.Title))
	for _, post := range posts {
		fmt.Fprintf(&b, "<article id=\"post-%d\">\n%s\n</article>\n", post.PostNumber, post.HTMLContent)
	}
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

func seriesReadme(series *library.Series, posts []library.Post) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", series.Title)
	fmt.Fprintf(&b, "- Topic: %s\n", series.Topic)
	fmt.Fprintf(&b, "- Audience: %s\n", series.Audience)
	fmt.Fprintf(&b, "- Style: %s\n", series.Style)
	fmt.Fprintf(&b, "- Posts: %d (%s)\n\n", len(posts), series.PostLength)
	b.WriteString("## Posts\n\n")
	for _, post := range posts {
		fmt.Fprintf(&b, "%d. %s (%d words", post.PostNumber, post.Title, post.WordCount)
		if len(post.Sources) > 0 {
			fmt.Fprintf(&b, ", %d sources", len(post.Sources))
		}
		b.WriteString(")\n")
	}
	return []byte(b.String())
}

// devotionalMarkdown renders one devotional as a standalone Markdown page.
func devotionalMarkdown(d generator.Devotional, day int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Day %d: %s\n\n", day, d.Title)
	for _, paragraph := range d.Narrative {
		b.WriteString(paragraph)
		b.WriteString("\n\n")
	}
	if len(d.Scriptures) > 0 {
		b.WriteString("## Key Scriptures\n\n")
		for _, scripture := range d.Scriptures {
			fmt.Fprintf(&b, "- %s\n", scripture)
		}
	}
	return b.String()
}

func devotionalReadme(topic string, devotionals []generator.Devotional) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Devotionals: %s\n\n", topic)
	fmt.Fprintf(&b, "A %d-day devotional journey.\n\n", len(devotionals))
	for i, d := range devotionals {
		fmt.Fprintf(&b, "%d. %s\n", i+1, d.Title)
	}
	return []byte(b.String())
}
