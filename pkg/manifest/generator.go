package manifest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/mapreduce"
	"github.com/dtnitsch/lexicon-scraper/pkg/storage"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// WordResult is the outcome of scraping one word, as reported by the scraper.
type WordResult struct {
	Word       string
	URL        string
	Page       *models.LexiconPage
	Error      error
	ErrorType  string
	StatusCode int
	FromCache  bool
}

// RunInfo identifies the run being summarised.
type RunInfo struct {
	RunKey    string
	RunID     int64
	ParseMode string
	StartedAt time.Time
}

// Build aggregates results into a manifest. outputs are stat'ed for their sizes;
// missing files are listed without a size.
func Build(run RunInfo, results []WordResult, outputs []string, s *storage.Storage) *RunManifest {
	m := &RunManifest{
		RunKey:      run.RunKey,
		RunID:       run.RunID,
		GeneratedAt: time.Now().Format(time.RFC3339),
		ParseMode:   run.ParseMode,
		TotalWords:  len(results),
		Results:     make([]WordSummary, 0, len(results)),
	}
	if !run.StartedAt.IsZero() {
		m.Elapsed = time.Since(run.StartedAt).Round(time.Second).String()
	}

	tagCounts := make(map[string]int)
	for _, r := range results {
		summary := WordSummary{Word: r.Word, URL: r.URL, FromCache: r.FromCache}
		if r.FromCache {
			m.FromCache++
		}

		if r.Error != nil {
			m.Failed++
			summary.Status = "error"
			summary.ErrorType = r.ErrorType
			summary.ErrorMessage = r.Error.Error()
			m.Results = append(m.Results, summary)
			continue
		}

		m.Successful++
		summary.Status = "success"
		if r.Page != nil {
			summary.Entries = len(r.Page.Entries)
			summary.Discarded = r.Page.Discarded
			m.Entries += summary.Entries
			m.Discarded += summary.Discarded

			counts := mapreduce.MapTags([]models.WordEntries{{Word: r.Word, Definitions: r.Page.Entries}})
			summary.Tags = mapreduce.TopWords(counts, len(counts))
			tagCounts = mapreduce.Reduce([]map[string]int{tagCounts, counts})
		}
		m.Results = append(m.Results, summary)
	}
	m.TopTags = mapreduce.TopWords(tagCounts, len(models.TagVocabulary))

	for _, path := range outputs {
		out := OutputSummary{Path: path}
		if stats, err := s.GetFileStats(path); err == nil {
			out.SizeBytes = stats.SizeBytes
			out.Size = humanize.Bytes(uint64(stats.SizeBytes))
		}
		m.Outputs = append(m.Outputs, out)
	}
	return m
}

// Save writes the manifest as run-<key>.yaml under dir and returns its path.
func Save(m *RunManifest, dir string, s *storage.Storage) (string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("run-%s.yaml", m.RunKey))
	if err := s.SaveFile(path, data); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}
	return path, nil
}

// GenerateSummary builds and saves the manifest of a run in one step.
func GenerateSummary(run RunInfo, results []WordResult, outputs []string, dir string, s *storage.Storage) (string, error) {
	return Save(Build(run, results, outputs, s), dir, s)
}
