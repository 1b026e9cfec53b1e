package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sermonlens/internal/analysis"
)

// ReportMarkdown renders an analysis as its full Markdown report.
func ReportMarkdown(result *analysis.Result) []byte {
	return []byte(analysis.FormatReport(result))
}

// ReportJSON renders an analysis as indented JSON. Raw samples are not part
// of the serialized form.
func ReportJSON(result *analysis.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return data, nil
}

// ReportBasename builds a filename stem from the corpus name and analysis
// time, like analysis-teacher-a-20260825-101500.
func ReportBasename(result *analysis.Result) string {
	return fmt.Sprintf("analysis-%s-%s",
		SafeName(result.Corpus),
		result.GeneratedAt.Format("20060102-150405"),
	)
}

// SaveReport writes both report representations under dir, creating the
// directory if needed. It returns the two file paths.
func SaveReport(dir string, result *analysis.Result) (mdPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create export directory: %w", err)
	}

	base := ReportBasename(result)

	mdPath = filepath.Join(dir, base+".md")
	if err := os.WriteFile(mdPath, ReportMarkdown(result), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write markdown report: %w", err)
	}

	data, err := ReportJSON(result)
	if err != nil {
		return "", "", err
	}
	jsonPath = filepath.Join(dir, base+".json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write json report: %w", err)
	}

	return mdPath, jsonPath, nil
}

// SafeName maps a name to a filesystem- and header-safe form.
func SafeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, name)
	if mapped == "" {
		return "corpus"
	}
	return mapped
}
