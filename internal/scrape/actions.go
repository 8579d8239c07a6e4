package scrape

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/internal/config"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/artifact_manager"
	"github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/dtnitsch/lexicon-scraper/pkg/fetcher"
	"github.com/dtnitsch/lexicon-scraper/pkg/lexicon"
	"github.com/dtnitsch/lexicon-scraper/pkg/manifest"
	"github.com/dtnitsch/lexicon-scraper/pkg/metrics"
	"github.com/dtnitsch/lexicon-scraper/pkg/scraper"
	"github.com/dtnitsch/lexicon-scraper/pkg/storage"
	"github.com/urfave/cli/v2"
)

const DefaultOutputFile = "lexicon.csv"

func ScrapeAction(c *cli.Context) error {
	cfg, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	sc := cfg.Scrape

	words, err := lexicon.ReadWordListFile(c.String("words"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No words provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  lxs scrape --words words.csv --out lexicon.csv`)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: lxs quickstart")
		return cli.Exit("", 1)
	}

	mode, err := models.ResolveParseMode(sc.Mode)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	manager, err := artifact_manager.NewManager(sc.OutputDir, sc.MaxAge)
	if err != nil {
		logger.Error("failed to initialize artifact manager", "error", err)
		return cli.Exit("", 2)
	}

	var database *db.DB
	if !c.Bool("no-db") {
		database, err = db.OpenPath(cfg.DB.Path)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			return cli.Exit("", 2)
		}
		defer database.Close()
	}

	sinks, err := openSinks(c, sc.OutputDir)
	if err != nil {
		closeSinks(sinks, logger)
		logger.Error("failed to open outputs", "error", err)
		return cli.Exit("", 2)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Warn("Metrics server stopped", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
	}

	f := fetcher.NewFetcher(fetcher.Options{
		UserAgent:    sc.UserAgent,
		Timeout:      sc.Timeout,
		IgnoreRobots: sc.IgnoreRobots,
	})
	s := scraper.New(scraper.Config{
		BaseURL:    sc.BaseURL,
		Delay:      sc.Delay,
		BatchSize:  sc.BatchSize,
		BatchPause: sc.BatchPause,
		SkipWarmup: sc.SkipWarmup,
		ForceFetch: c.Bool("force-fetch"),
		Mode:       mode,
		OutputDir:  sc.OutputDir,
	}, scraper.Deps{
		Fetcher:   f,
		Artifacts: manager,
		DB:        database,
		Sinks:     sinks,
		Metrics:   m,
		Logger:    logger,
	})

	summary, runErr := s.Run(ctx, words)
	closeSinks(sinks, logger)

	outputs := make([]string, len(sinks))
	for i, sink := range sinks {
		outputs[i] = sink.Path()
	}

	stats := BuildStats(len(words), summary)
	finalOutput := &FinalOutput{
		Status:  RunStatus(stats),
		RunKey:  summary.RunKey,
		RunID:   summary.RunID,
		Outputs: outputs,
		Stats:   stats,
	}
	if c.Bool("results") || c.IsSet("fields") {
		finalOutput.Results = BuildResults(summary.Results, c.String("fields"))
	}

	manifestPath, err := manifest.GenerateSummary(summary.RunInfo(mode), summary.Results, outputs, sc.OutputDir, &storage.Storage{})
	if err != nil {
		logger.Warn("Failed to write run manifest", "error", err)
	} else {
		finalOutput.Manifest = manifestPath
	}

	if err := common.PrintOutput(os.Stdout, finalOutput, c.String("format")); err != nil {
		logger.Error("failed to marshal final output", "error", err)
		return cli.Exit("", 2)
	}

	if runErr != nil {
		logger.Error("scrape aborted", "error", runErr)
		return cli.Exit("", 2)
	}
	if code := ExitCode(stats); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

func openSinks(c *cli.Context, outputDir string) ([]storage.Sink, error) {
	out := c.String("out")
	if out == "" {
		out = filepath.Join(outputDir, DefaultOutputFile)
	}

	targets := []struct{ format, path string }{
		{storage.FormatCSV, out},
		{storage.FormatJSON, c.String("json")},
		{storage.FormatXLSX, c.String("xlsx")},
	}

	var sinks []storage.Sink
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		sink, err := storage.NewSink(t.format, t.path)
		if err != nil {
			return sinks, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

func closeSinks(sinks []storage.Sink, logger *slog.Logger) {
	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			logger.Warn("Failed to close output", "path", sink.Path(), "error", err)
		}
	}
}
