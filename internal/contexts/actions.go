package contexts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/internal/config"
	"github.com/dtnitsch/lexicon-scraper/pkg/contexts"
	"github.com/dtnitsch/lexicon-scraper/pkg/lexicon"
	"github.com/dtnitsch/lexicon-scraper/pkg/mapreduce"
	"github.com/urfave/cli/v2"
)

const DefaultOutputFile = "contexts.csv"

// Output is the run summary printed after extraction.
type Output struct {
	Status           string   `json:"status" yaml:"status"`
	Output           string   `json:"output" yaml:"output"`
	LexiconWords     int      `json:"lexicon_words" yaml:"lexicon_words"`
	Files            int      `json:"files" yaml:"files"`
	Articles         int      `json:"articles" yaml:"articles"`
	Skipped          int      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Malformed        int      `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	Contexts         int      `json:"contexts" yaml:"contexts"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopWords         []string `json:"top_words,omitempty" yaml:"top_words,omitempty"`
}

// ContextsAction extracts sentence windows around lexicon words from JSON
// Lines corpus files given as arguments.
func ContextsAction(c *cli.Context) error {
	_, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	startTime := time.Now()

	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("Error: No corpus files provided\n\nUsage:\n  lxs contexts --lexicon lexicon.json corpus/*.jsonl", 1)
	}

	words, err := lexiconWords(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	ex, err := contexts.NewExtractor(words)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = DefaultOutputFile
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return cli.Exit(fmt.Sprintf("failed to create output directory: %v", err), 2)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create output: %v", err), 2)
	}
	defer out.Close()

	opts := contexts.Options{Workers: c.Int("workers"), Logger: logger}
	if c.Bool("english-only") {
		opts.Filter = contexts.NewEnglishFilter()
	}

	logger.Info("Starting context extraction", "files", len(files), "lexicon_words", ex.Len(), "workers", opts.Workers, "english_only", opts.Filter != nil)
	res, runErr := contexts.Run(c.Context, files, ex, out, opts)
	if runErr != nil {
		logger.Error("context extraction failed", "error", runErr)
		if res == nil {
			return cli.Exit("", 2)
		}
	}

	output := Output{
		Status:           "success",
		Output:           outPath,
		LexiconWords:     ex.Len(),
		Files:            res.Files,
		Articles:         res.Articles,
		Skipped:          res.Skipped,
		Malformed:        res.Malformed,
		Contexts:         res.Records,
		TotalTimeSeconds: time.Since(startTime).Seconds(),
		TopWords:         mapreduce.TopWords(res.Counts, c.Int("top")),
	}
	if runErr != nil {
		output.Status = "failure"
	}
	if err := common.PrintOutput(os.Stdout, output, c.String("format")); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if runErr != nil {
		return cli.Exit("", 2)
	}
	return nil
}

// lexiconWords reads headwords from --lexicon (JSON) or --words (CSV word list).
func lexiconWords(c *cli.Context) ([]string, error) {
	if path := c.String("lexicon"); path != "" {
		lex, err := lexicon.ReadLexicon(path)
		if err != nil {
			return nil, err
		}
		return lexicon.Words(lex), nil
	}

	if path := c.String("words"); path != "" {
		links, err := lexicon.ReadWordListFile(path)
		if err != nil {
			return nil, err
		}
		words := make([]string, len(links))
		for i, l := range links {
			words[i] = l.Word
		}
		return words, nil
	}
	return nil, fmt.Errorf("one of --lexicon or --words is required")
}
