package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Info identifies one corpus database available under the corpus directory.
type Info struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Discover lists the .db files directly under dir, sorted by name. An empty
// or missing directory yields an empty list, not an error.
func Discover(dir string) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		infos = append(infos, Info{
			Name: strings.TrimSuffix(entry.Name(), ".db"),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// ResolvePath maps a corpus name to its database path under dir. Names
// containing path separators or traversal elements are rejected so callers
// can pass user input directly.
func ResolvePath(dir, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid corpus name %q", name)
	}
	return filepath.Join(dir, name+".db"), nil
}
