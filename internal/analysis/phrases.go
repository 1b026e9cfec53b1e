package analysis

import (
	"sort"
	"strings"
)

// PhraseCount pairs a candidate phrase or keyword with its occurrence count.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// DefaultPhrases is the candidate list for phrase-frequency analysis,
// grouped by theological tradition markers.
var DefaultPhrases = []string{
	// NAR markers
	"courts of heaven", "court of heaven", "dna healing", "wounded soul",
	"soul wound", "wounding spirit", "leviathan spirit", "jezebel spirit",
	"python spirit", "generational curse", "territorial spirits",
	"seven mountains", "apostolic center", "prophetic word",

	// Prosperity
	"name it claim it", "speak into existence", "seed faith",
	"hundredfold return", "breakthrough anointing", "supernatural favor",

	// Kingdom / Third Wave
	"kingdom of god", "kingdom now", "power encounter", "signs and wonders",
	"holy spirit", "baptism of the spirit", "spiritual gifts",
	"word of knowledge",

	// Orthodox markers
	"gospel of", "grace of god", "blood of christ", "atonement",
	"justification", "sanctification", "repentance", "faith alone",
	"scripture alone", "sola scriptura",
}

// DefaultKeywords is the candidate list for single-keyword counting.
var DefaultKeywords = []string{
	// Trinitarian
	"god", "jesus", "christ", "holy spirit", "spirit",

	// Salvation
	"gospel", "salvation", "saved", "grace", "faith",
	"repent", "sin", "cross", "blood", "atonement",

	// Charismatic
	"healing", "miracle", "prophetic", "prophecy",
	"tongues", "anointing", "demon", "deliverance",

	// Prosperity / NAR
	"blessing", "blessed", "prosperity", "favor",
	"breakthrough", "abundance", "wealth",

	// Kingdom
	"kingdom", "church", "worship", "prayer",
}

// CountPhrases counts non-overlapping case-insensitive occurrences of each
// candidate phrase in text, keeping phrases that occur at least minOccurrences
// times. Results are sorted descending by count; ties keep candidate order.
func CountPhrases(text string, phrases []string, minOccurrences int) []PhraseCount {
	return countCandidates(text, phrases, minOccurrences)
}

// CountKeywords counts every candidate keyword with no threshold.
func CountKeywords(text string, keywords []string) []PhraseCount {
	return countCandidates(text, keywords, 0)
}

func countCandidates(text string, candidates []string, minOccurrences int) []PhraseCount {
	textLower := strings.ToLower(text)

	results := make([]PhraseCount, 0, len(candidates))
	for _, candidate := range candidates {
		count := strings.Count(textLower, strings.ToLower(candidate))
		if count >= minOccurrences {
			results = append(results, PhraseCount{Phrase: candidate, Count: count})
		}
	}

	// Stable sort keeps tie order aligned with the candidate list.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results
}
