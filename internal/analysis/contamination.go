package analysis

import "strings"

// ContaminationKeywords flag titles that are very likely not sermons:
// tech-news uploads, apologetics commentary channels, and media clips that
// leak into scraped transcript collections.
var ContaminationKeywords = []string{
	"elon musk", "grok", "openai", "chatgpt",
	"justin peters", "community bible church",
	"trailer", "movie clip", "full album",
}

// ScanContamination returns the titles containing any known non-sermon
// keyword, in input order. Each title is reported once.
func ScanContamination(titles []string) []string {
	var contaminated []string
	for _, title := range titles {
		titleLower := strings.ToLower(title)
		for _, keyword := range ContaminationKeywords {
			if strings.Contains(titleLower, keyword) {
				contaminated = append(contaminated, title)
				break
			}
		}
	}
	return contaminated
}
