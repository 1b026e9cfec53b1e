package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sermonlens/internal/corpus"
)

// TopicComparison holds one topic's record counts across two corpora. Counts
// are records mentioning the topic, not raw occurrence tallies; a sermon that
// repeats a phrase fifty times still counts once.
type TopicComparison struct {
	Topic      string  `json:"topic"`
	CountA     int     `json:"count_a"`
	CountB     int     `json:"count_b"`
	PercentA   float64 `json:"percent_a"`
	PercentB   float64 `json:"percent_b"`
	Difference int     `json:"difference"`
}

// TopicPresets maps preset names to their topic lists for two-corpus
// comparison.
var TopicPresets = map[string][]string{
	"Prosperity Gospel Red Flags": {
		"seed offering", "sow and reap", "financial blessing",
		"breakthrough offering", "prosperity", "wealth transfer",
	},
	"Inner Healing Approaches": {
		"inner healing", "soul wounds", "trauma", "attachment",
		"healing memories", "deliverance",
	},
	"Money & Giving Teaching": {
		"tithe", "offering", "giving", "money", "wealth", "prosperity",
	},
	"Holy Spirit & Power": {
		"holy spirit", "power", "anointing", "glory", "presence",
		"manifestation",
	},
	"Grace vs. Works": {
		"grace", "works", "faith", "righteousness", "justification",
		"sanctification",
	},
	"Sexual Purity Topics": {
		"addiction", "purity", "sexual", "lust", "pornography",
		"accountability",
	},
}

// ThemeSearchTerms maps AI-comparison themes to the corpus search terms used
// to pull representative excerpts.
var ThemeSearchTerms = map[string][]string{
	"Gospel & Salvation":            {"gospel", "salvation", "saved", "eternal life"},
	"Money & Prosperity":            {"money", "wealth", "prosperity", "blessing", "offering"},
	"Holy Spirit & Power":           {"holy spirit", "power", "anointing", "glory"},
	"Sin & Redemption":              {"sin", "redemption", "forgiveness", "repentance"},
	"Healing & Deliverance":         {"healing", "deliverance", "freedom", "breakthrough"},
	"Prayer & Worship":              {"prayer", "worship", "praise", "intercession"},
	"Authority & Spiritual Warfare": {"authority", "spiritual warfare", "demons", "enemy"},
	"Marriage & Family":             {"marriage", "family", "children", "parenting"},
}

// CompareTopics counts, for each topic, how many records in each corpus
// mention it, along with the percentage of that corpus's total and the signed
// difference (A minus B). Results are sorted by absolute difference,
// most divergent first.
func CompareTopics(ctx context.Context, storeA, storeB *corpus.Store, topics []string) ([]TopicComparison, error) {
	totalA, err := storeA.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count first corpus: %w", err)
	}
	totalB, err := storeB.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count second corpus: %w", err)
	}

	results := make([]TopicComparison, 0, len(topics))
	for _, topic := range topics {
		countA, err := storeA.CountMatching(ctx, topic)
		if err != nil {
			return nil, err
		}
		countB, err := storeB.CountMatching(ctx, topic)
		if err != nil {
			return nil, err
		}

		cmp := TopicComparison{
			Topic:      topic,
			CountA:     countA,
			CountB:     countB,
			Difference: countA - countB,
		}
		if totalA > 0 {
			cmp.PercentA = float64(countA) / float64(totalA) * 100
		}
		if totalB > 0 {
			cmp.PercentB = float64(countB) / float64(totalB) * 100
		}
		results = append(results, cmp)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return abs(results[i].Difference) > abs(results[j].Difference)
	})
	return results, nil
}

// ExtractExcerpts pulls up to three short excerpts mentioning any of the
// terms, each a ±300 character window around the first hit. Terms are tried
// in order until three excerpts are collected.
func ExtractExcerpts(ctx context.Context, store *corpus.Store, terms []string) ([]string, error) {
	var excerpts []string
	for _, term := range terms {
		records, err := store.RecordsMatching(ctx, term, 2)
		if err != nil {
			return nil, err
		}

		termLower := strings.ToLower(term)
		for _, rec := range records {
			pos := strings.Index(strings.ToLower(rec.Text), termLower)
			if pos < 0 {
				continue
			}
			// pos is an offset into the lowered text, which can be longer
			// than the original; clamp before slicing the original.
			start := pos - 300
			if start < 0 {
				start = 0
			}
			end := pos + 300
			if end > len(rec.Text) {
				end = len(rec.Text)
			}
			if start > end {
				start = end
			}
			excerpts = append(excerpts, rec.Text[start:end])
		}
		if len(excerpts) >= 3 {
			break
		}
	}
	return excerpts, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
