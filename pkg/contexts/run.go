package contexts

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/mapreduce"
	"golang.org/x/sync/errgroup"
)

const maxLineBytes = 64 << 20

type Options struct {
	Workers int            // defaults to GOMAXPROCS
	Filter  LanguageFilter // nil keeps every article
	Logger  *slog.Logger
}

// Result summarises a Run.
type Result struct {
	Files     int
	Articles  int
	Skipped   int // rejected by the language filter
	Malformed int // lines that were not valid article JSON
	Records   int
	Counts    map[string]int // hits per word across all files
}

type fileResult struct {
	records   []models.ContextRecord
	articles  int
	skipped   int
	malformed int
}

// Run extracts contexts from JSON Lines corpus files and writes them to w as
// date,word,text CSV. Files are processed in parallel; each file's rows are
// written as one block.
func Run(ctx context.Context, files []string, ex *Extractor, w io.Writer, opts Options) (*Result, error) {
	if ex == nil {
		return nil, ErrEmptyLexicon
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "word", "text"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	var (
		mu      sync.Mutex
		res     = &Result{Files: len(files)}
		perFile = make([]map[string]int, len(files))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			fr, err := processFile(gctx, path, ex, opts.Filter, logger)
			if err != nil {
				return fmt.Errorf("failed to process %s: %w", path, err)
			}

			mu.Lock()
			defer mu.Unlock()
			for _, r := range fr.records {
				if err := cw.Write([]string{r.Date, r.Word, r.Text}); err != nil {
					return fmt.Errorf("failed to write context: %w", err)
				}
			}
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("failed to flush contexts: %w", err)
			}

			perFile[i] = mapreduce.Map(fr.records)
			res.Articles += fr.articles
			res.Skipped += fr.skipped
			res.Malformed += fr.malformed
			res.Records += len(fr.records)
			logger.Info("Processed corpus file", "file", path, "articles", fr.articles, "contexts", len(fr.records))
			return nil
		})
	}

	err := g.Wait()
	res.Counts = mapreduce.Reduce(perFile)
	return res, err
}

func processFile(ctx context.Context, path string, ex *Extractor, filter LanguageFilter, logger *slog.Logger) (*fileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fr := &fileResult{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), maxLineBytes)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var a models.Article
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			fr.malformed++
			logger.Warn("Skipping malformed article", "file", path, "line", line, "error", err)
			continue
		}
		fr.articles++

		text := Preprocess(a.Article)
		if filter != nil && !filter.Keep(text) {
			fr.skipped++
			continue
		}
		fr.records = append(fr.records, ex.Extract(a.Date, text)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return fr, nil
}
