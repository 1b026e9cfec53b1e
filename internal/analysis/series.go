package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// SeriesGroup is one detected sermon series with the number of titles that
// matched it.
type SeriesGroup struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

var (
	partSplitRe      = regexp.MustCompile(`\s+-\s+Part|\s+Part`)
	trailingNumberRe = regexp.MustCompile(`^(.+?)\s+\d+$`)
)

// DetectSeries groups sermon titles into likely series using three naming
// heuristics: a colon prefix ("Romans: The Gospel"), a " - Part N" or
// " Part N" suffix, and a bare trailing number ("Hope 2"). The trailing
// number check runs independently of the first two, so a title like
// "Romans - Part 3" can credit two groups. Returns the top 20 groups with at
// least 3 titles, largest first.
func DetectSeries(titles []string) []SeriesGroup {
	counts := make(map[string]int)
	var order []string

	credit := func(name string) {
		if name == "" {
			return
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	for _, title := range titles {
		if strings.Contains(title, ":") {
			credit(strings.TrimSpace(strings.SplitN(title, ":", 2)[0]))
		} else if strings.Contains(title, " - Part ") || strings.Contains(title, " Part ") {
			credit(strings.TrimSpace(partSplitRe.Split(title, 2)[0]))
		}

		if match := trailingNumberRe.FindStringSubmatch(title); match != nil {
			credit(strings.TrimSpace(match[1]))
		}
	}

	groups := make([]SeriesGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, SeriesGroup{Name: name, Count: counts[name]})
	}

	// Largest first; ties keep first-seen order.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	if len(groups) > 20 {
		groups = groups[:20]
	}

	filtered := groups[:0]
	for _, g := range groups {
		if g.Count >= 3 {
			filtered = append(filtered, g)
		}
	}
	return filtered
}
