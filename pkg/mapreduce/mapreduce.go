package mapreduce

import "github.com/dtnitsch/lexicon-scraper/models"

// Map counts context hits per lexicon word for one corpus file.
func Map(records []models.ContextRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Word]++
	}
	return counts
}

// MapTags counts tagged definitions per tag across a lexicon.
func MapTags(lexicon []models.WordEntries) map[string]int {
	counts := make(map[string]int)
	for _, w := range lexicon {
		for _, d := range w.Definitions {
			for _, t := range d.Tags {
				counts[string(t)]++
			}
		}
	}
	return counts
}

// Reduce aggregates a slice of count maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
