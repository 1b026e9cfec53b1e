package generator

import "strings"

// Devotional is one parsed unit from the devotional delimiter protocol.
type Devotional struct {
	Title      string   `json:"title"`
	Narrative  []string `json:"narrative"` // paragraphs
	Scriptures []string `json:"scriptures"`
}

// ParseDevotionals parses generated text using the
// ---DEVOTIONAL START--- / ---DEVOTIONAL END--- protocol with TITLE:,
// NARRATIVE:, and KEY SCRIPTURES: labels. Units missing any marker are
// skipped; partial results are returned and unit-level failures never become
// errors.
func ParseDevotionals(text string) []Devotional {
	var devotionals []Devotional

	sections := strings.Split(text, "---DEVOTIONAL START---")
	for _, section := range sections[1:] {
		if !strings.Contains(section, "---DEVOTIONAL END---") {
			continue
		}
		section = strings.TrimSpace(strings.SplitN(section, "---DEVOTIONAL END---", 2)[0])

		titleSplit := strings.SplitN(section, "TITLE:", 2)
		if len(titleSplit) < 2 {
			continue
		}

		narrativeSplit := strings.SplitN(titleSplit[1], "NARRATIVE:", 2)
		if len(narrativeSplit) < 2 {
			continue
		}
		title := strings.TrimSpace(narrativeSplit[0])

		scripturesSplit := strings.SplitN(narrativeSplit[1], "KEY SCRIPTURES:", 2)
		if len(scripturesSplit) < 2 {
			continue
		}

		var paragraphs []string
		for _, para := range strings.Split(strings.TrimSpace(scripturesSplit[0]), "\n\n") {
			if para = strings.TrimSpace(para); para != "" {
				paragraphs = append(paragraphs, para)
			}
		}

		var scriptures []string
		for _, line := range strings.Split(strings.TrimSpace(scripturesSplit[1]), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") {
				if scripture := strings.TrimSpace(strings.TrimLeft(line, "-•")); scripture != "" {
					scriptures = append(scriptures, scripture)
				}
			}
		}

		devotionals = append(devotionals, Devotional{
			Title:      title,
			Narrative:  paragraphs,
			Scriptures: scriptures,
		})
	}

	return devotionals
}
