package scrape

import (
	"time"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/manifest"
	"github.com/dtnitsch/lexicon-scraper/pkg/mapreduce"
	"github.com/dtnitsch/lexicon-scraper/pkg/scraper"
)

const (
	statusSuccess        = "success"
	statusPartialFailure = "partial_failure"
	statusFailure        = "failure"
	statusInterrupted    = "interrupted"
)

func BuildResultOutput(r manifest.WordResult) ResultOutput {
	out := ResultOutput{Word: r.Word, URL: r.URL, FromCache: r.FromCache}
	if r.Error != nil {
		out.Status = "failed"
		out.Error = r.Error.Error()
		out.ErrorType = r.ErrorType
		return out
	}

	out.Status = statusSuccess
	if r.Page != nil {
		out.Entries = len(r.Page.Entries)
		out.Discarded = r.Page.Discarded
		counts := mapreduce.MapTags([]models.WordEntries{{Word: r.Word, Definitions: r.Page.Entries}})
		out.Tags = mapreduce.TopWords(counts, len(counts))
	}
	return out
}

func BuildStats(total int, summary *scraper.Summary) Stats {
	stats := Stats{
		TotalWords:       total,
		Processed:        len(summary.Results),
		Successful:       summary.Successful,
		Failed:           summary.Failed,
		Entries:          summary.Entries,
		Pauses:           summary.Pauses,
		Interrupted:      summary.Interrupted,
		TotalTimeSeconds: time.Since(summary.StartedAt).Seconds(),
	}

	var lexicon []models.WordEntries
	for _, r := range summary.Results {
		if r.FromCache {
			stats.FromCache++
		}
		if r.Page != nil {
			lexicon = append(lexicon, models.WordEntries{Word: r.Word, Definitions: r.Page.Entries})
		}
	}
	stats.TopTags = mapreduce.TopWords(mapreduce.MapTags(lexicon), len(models.TagVocabulary))
	return stats
}

// BuildResults renders per-word outputs, keeping only fields when it is set.
func BuildResults(results []manifest.WordResult, fields string) interface{} {
	outputs := make([]ResultOutput, len(results))
	for i, r := range results {
		outputs[i] = BuildResultOutput(r)
	}
	if fields == "" {
		return outputs
	}

	filtered := make([]map[string]interface{}, len(outputs))
	for i, o := range outputs {
		filtered[i] = common.FilterFields(o, fields)
	}
	return filtered
}

// RunStatus summarises the run as one word.
func RunStatus(stats Stats) string {
	switch {
	case stats.Interrupted:
		return statusInterrupted
	case stats.Processed > 0 && stats.Successful == 0:
		return statusFailure
	case stats.Failed > 0:
		return statusPartialFailure
	default:
		return statusSuccess
	}
}

// ExitCode is 0 on success, 1 when some words failed and 2 when none succeeded.
func ExitCode(stats Stats) int {
	switch {
	case stats.Processed > 0 && stats.Successful == 0:
		return 2
	case stats.Failed > 0 || stats.Interrupted:
		return 1
	default:
		return 0
	}
}
