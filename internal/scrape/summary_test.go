package scrape

import (
	"errors"
	"testing"
	"time"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/manifest"
	"github.com/dtnitsch/lexicon-scraper/pkg/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []manifest.WordResult {
	return []manifest.WordResult{
		{
			Word: "cad",
			URL:  "https://en.wiktionary.org/wiki/cad",
			Page: &models.LexiconPage{
				Word: "cad",
				Entries: []models.ParsedEntry{
					{PartOfSpeech: models.PartOfSpeechNoun, Tags: []models.Tag{models.TagSlang, models.TagDerogatory}},
					{PartOfSpeech: models.PartOfSpeechNoun, Tags: []models.Tag{models.TagSlang}},
				},
				Discarded: 1,
			},
			FromCache: true,
		},
		{
			Word:      "missing",
			URL:       "https://en.wiktionary.org/wiki/missing",
			Error:     errors.New("status code: 404"),
			ErrorType: scraper.ErrorTypeHTTP,
		},
	}
}

func TestBuildResultOutput(t *testing.T) {
	results := sampleResults()

	ok := BuildResultOutput(results[0])
	assert.Equal(t, "success", ok.Status)
	assert.Equal(t, 2, ok.Entries)
	assert.Equal(t, 1, ok.Discarded)
	assert.Equal(t, []string{"slang:2", "derogatory:1"}, ok.Tags)
	assert.True(t, ok.FromCache)

	failed := BuildResultOutput(results[1])
	assert.Equal(t, "failed", failed.Status)
	assert.Equal(t, scraper.ErrorTypeHTTP, failed.ErrorType)
	assert.Contains(t, failed.Error, "404")
}

func TestBuildStats(t *testing.T) {
	summary := &scraper.Summary{
		StartedAt:  time.Now().Add(-time.Second),
		Results:    sampleResults(),
		Successful: 1,
		Failed:     1,
		Entries:    2,
	}

	stats := BuildStats(3, summary)
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 1, stats.FromCache)
	assert.Equal(t, []string{"slang:2", "derogatory:1"}, stats.TopTags)
	assert.GreaterOrEqual(t, stats.TotalTimeSeconds, 1.0)

	assert.Equal(t, statusPartialFailure, RunStatus(stats))
	assert.Equal(t, 1, ExitCode(stats))
}

func TestBuildResults_Fields(t *testing.T) {
	got := BuildResults(sampleResults(), "word,status")
	filtered, ok := got.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, filtered, 2)
	assert.Equal(t, map[string]interface{}{"word": "cad", "status": "success"}, filtered[0])

	full, ok := BuildResults(sampleResults(), "").([]ResultOutput)
	require.True(t, ok)
	assert.Len(t, full, 2)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  int
	}{
		{"all ok", Stats{Processed: 2, Successful: 2}, 0},
		{"some failed", Stats{Processed: 2, Successful: 1, Failed: 1}, 1},
		{"none ok", Stats{Processed: 2, Failed: 2}, 2},
		{"interrupted", Stats{Processed: 1, Successful: 1, Interrupted: true}, 1},
		{"nothing processed", Stats{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.stats))
		})
	}
}
