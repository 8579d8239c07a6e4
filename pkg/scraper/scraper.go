// Package scraper runs the per-word fetch, parse and store loop.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/artifact_manager"
	"github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/dtnitsch/lexicon-scraper/pkg/fetcher"
	"github.com/dtnitsch/lexicon-scraper/pkg/manifest"
	"github.com/dtnitsch/lexicon-scraper/pkg/metrics"
	"github.com/dtnitsch/lexicon-scraper/pkg/parser"
	"github.com/dtnitsch/lexicon-scraper/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Error types recorded per word.
const (
	ErrorTypeRobots   = "robots_disallowed"
	ErrorTypeHTTP     = "http_error"
	ErrorTypeTimeout  = "timeout"
	ErrorTypeCanceled = "canceled"
	ErrorTypeNetwork  = "network_error"
	ErrorTypeParse    = "parse_error"
)

// PageFetcher is the network side of the loop. *fetcher.Fetcher satisfies it.
type PageFetcher interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, error)
	Warmup(ctx context.Context, url string) error
}

type Config struct {
	BaseURL    string
	Delay      time.Duration
	BatchSize  int
	BatchPause time.Duration
	SkipWarmup bool
	ForceFetch bool
	Mode       models.ParseMode
	OutputDir  string
}

// Deps are the collaborators of a Scraper. Only Fetcher is required; the
// page cache needs both Artifacts and DB, since artifacts are keyed by word id.
type Deps struct {
	Fetcher   PageFetcher
	Artifacts *artifact_manager.Manager
	DB        *db.DB
	Sinks     []storage.Sink
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

type Scraper struct {
	cfg     Config
	deps    Deps
	parser  *parser.Parser
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Summary is the outcome of one Run.
type Summary struct {
	RunKey      string
	RunID       int64
	StartedAt   time.Time
	Results     []manifest.WordResult
	Successful  int
	Failed      int
	Entries     int
	Pauses      int
	Interrupted bool
}

// RunInfo returns the manifest header of the run.
func (s *Summary) RunInfo(mode models.ParseMode) manifest.RunInfo {
	return manifest.RunInfo{
		RunKey:    s.RunKey,
		RunID:     s.RunID,
		ParseMode: mode.String(),
		StartedAt: s.StartedAt,
	}
}

func New(cfg Config, deps Deps) *Scraper {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	limit := rate.Inf
	if cfg.Delay > 0 {
		limit = rate.Every(cfg.Delay)
	}
	return &Scraper{
		cfg:     cfg,
		deps:    deps,
		parser:  &parser.Parser{},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Run scrapes words in order. Failures of single words are recorded and the
// loop continues; a sink write failure or a cancelled ctx ends it early.
// The returned Summary is valid even when err is non-nil.
func (s *Scraper) Run(ctx context.Context, words []models.WordLink) (*Summary, error) {
	summary := &Summary{StartedAt: time.Now()}

	if s.deps.DB != nil {
		run, err := s.deps.DB.CreateRun(len(words), s.cfg.Mode.String(), s.cfg.OutputDir)
		if err != nil {
			return summary, err
		}
		summary.RunKey = run.RunKey
		summary.RunID = run.RunID
	} else {
		summary.RunKey = uuid.NewString()
	}

	s.logger.Info("Starting scrape",
		"run_key", summary.RunKey,
		"word_count", len(words),
		"mode", s.cfg.Mode.String(),
		"force_fetch", s.cfg.ForceFetch,
		"delay", s.cfg.Delay,
		"batch_size", s.cfg.BatchSize,
	)

	if !s.cfg.SkipWarmup && len(words) > 0 {
		s.warmup(ctx, common.ResolveWordURL(s.cfg.BaseURL, words[0].Word, words[0].Link))
	}

	var runErr error
	fetched := 0
	for i, w := range words {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}

		result := s.ScrapeWord(ctx, w)
		if result.Error != nil && ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		summary.Results = append(summary.Results, result)

		if result.Error != nil {
			summary.Failed++
		} else {
			summary.Successful++
			summary.Entries += len(result.Page.Entries)
			if err := s.writeSinks(result.Page); err != nil {
				runErr = err
				break
			}
		}
		s.recordResult(summary.RunID, result)

		if !result.FromCache && result.ErrorType != ErrorTypeRobots {
			fetched++
			if s.cfg.BatchSize > 0 && s.cfg.BatchPause > 0 && fetched%s.cfg.BatchSize == 0 && i < len(words)-1 {
				if err := s.pause(ctx); err != nil {
					summary.Interrupted = true
					break
				}
				summary.Pauses++
			}
		}
	}

	if s.deps.DB != nil && summary.RunID > 0 {
		if err := s.deps.DB.UpdateRunStats(summary.RunID, summary.Successful, summary.Failed, summary.Entries); err != nil {
			s.logger.Warn("Failed to update run stats", "run_id", summary.RunID, "error", err)
		}
	}

	s.logger.Info("Scrape finished",
		"run_key", summary.RunKey,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"entries", summary.Entries,
		"interrupted", summary.Interrupted,
		"elapsed", time.Since(summary.StartedAt).Round(time.Millisecond),
	)
	return summary, runErr
}

// ScrapeWord fetches (or loads from cache) and parses one word.
func (s *Scraper) ScrapeWord(ctx context.Context, w models.WordLink) manifest.WordResult {
	word := common.NormalizeWord(w.Word)
	url := common.ResolveWordURL(s.cfg.BaseURL, word, w.Link)
	result := manifest.WordResult{Word: word, URL: url}

	var wordID int64
	if s.deps.DB != nil {
		id, err := s.deps.DB.InsertWord(word, url)
		if err != nil {
			s.logger.Warn("Failed to insert word to DB", "word", word, "error", err)
		}
		wordID = id
	}

	rawHTML, fromCache, err := s.loadPage(ctx, wordID, word, url)
	result.FromCache = fromCache
	if err != nil {
		result.Error = err
		result.ErrorType, result.StatusCode = classifyFetchError(err)
		s.logger.Error("Error fetching HTML", "word", word, "url", url, "error_type", result.ErrorType, "error", err)
		s.recordAccess(wordID, result)
		return result
	}
	result.StatusCode = 200

	page, err := s.parser.Parse(models.ParseRequest{
		Word: word,
		URL:  url,
		HTML: string(rawHTML),
		Mode: s.cfg.Mode,
	})
	if err != nil {
		s.logger.Error("Error parsing HTML", "word", word, "url", url, "error", err)
		result.Error = err
		result.ErrorType = ErrorTypeParse
		s.recordAccess(wordID, result)
		return result
	}
	result.Page = page
	s.recordAccess(wordID, result)
	s.storePage(wordID, page)

	s.logger.Info("Word processed",
		"word", word,
		"entries", len(page.Entries),
		"discarded", page.Discarded,
		"from_cache", fromCache,
	)
	return result
}

func (s *Scraper) loadPage(ctx context.Context, wordID int64, word, url string) ([]byte, bool, error) {
	cacheable := s.deps.Artifacts != nil && wordID > 0

	if cacheable && !s.cfg.ForceFetch {
		rawHTML, fresh, err := s.deps.Artifacts.GetRawHTML(wordID)
		if err != nil {
			s.logger.Warn("Error checking artifact storage, fetching fresh", "word", word, "error", err)
		}
		if fresh {
			s.logger.Debug("Raw HTML found in storage, using it", "word", word)
			return rawHTML, true, nil
		}
	}

	if err := s.wait(ctx); err != nil {
		return nil, false, err
	}

	start := time.Now()
	rawHTML, err := s.deps.Fetcher.GetHtmlBytes(ctx, url)
	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveFetch(time.Since(start))
	}
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		path, err := s.deps.Artifacts.SetRawHTML(wordID, rawHTML)
		if err != nil {
			s.logger.Warn("Failed to store raw HTML artifact", "word", word, "error", err)
		} else if s.deps.DB != nil {
			if _, err := s.deps.DB.InsertArtifact(wordID, db.ArtifactHTMLRaw, common.ContentHash(rawHTML), path, int64(len(rawHTML))); err != nil {
				s.logger.Warn("Failed to insert raw artifact to DB", "word", word, "error", err)
			}
		}
	}
	return rawHTML, false, nil
}

func (s *Scraper) storePage(wordID int64, page *models.LexiconPage) {
	if s.deps.DB == nil || wordID <= 0 {
		return
	}

	if err := s.deps.DB.ReplaceEntries(wordID, page.Entries); err != nil {
		s.logger.Warn("Failed to store entries", "word", page.Word, "error", err)
	}
	if page.Meta.Title != "" {
		if err := s.deps.DB.SetWordTitle(wordID, page.Meta.Title); err != nil {
			s.logger.Warn("Failed to store page title", "word", page.Word, "error", err)
		}
	}

	if s.deps.Artifacts == nil {
		return
	}
	path, err := s.deps.Artifacts.SetParsed(wordID, page)
	if err != nil {
		s.logger.Warn("Failed to store parsed YAML artifact", "word", page.Word, "error", err)
		return
	}
	data, err := (&storage.Storage{}).ReadFile(path)
	if err != nil {
		s.logger.Warn("Failed to read back parsed YAML artifact", "word", page.Word, "error", err)
		return
	}
	if _, err := s.deps.DB.InsertArtifact(wordID, db.ArtifactYAMLParsed, common.ContentHash(data), path, int64(len(data))); err != nil {
		s.logger.Warn("Failed to insert parsed artifact to DB", "word", page.Word, "error", err)
	}
}

func (s *Scraper) recordAccess(wordID int64, r manifest.WordResult) {
	if s.deps.DB == nil || wordID <= 0 {
		return
	}
	if err := s.deps.DB.RecordAccess(wordID, r.StatusCode, r.ErrorType, r.Error == nil, r.FromCache); err != nil {
		s.logger.Warn("Failed to record access to DB", "word", r.Word, "error", err)
	}
}

func (s *Scraper) recordResult(runID int64, r manifest.WordResult) {
	status := db.StatusSuccess
	if r.Error != nil {
		status = db.StatusFailed
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.ObserveWord(status, r.FromCache)
		s.deps.Metrics.ObservePage(r.Page)
	}

	if s.deps.DB == nil || runID <= 0 {
		return
	}
	wordID, err := s.deps.DB.GetWordID(r.Word)
	if err != nil {
		s.logger.Warn("Failed to look up word for run result", "word", r.Word, "error", err)
		return
	}

	rr := db.RunResult{
		WordID:     wordID,
		Word:       r.Word,
		Status:     status,
		StatusCode: r.StatusCode,
		ErrorType:  r.ErrorType,
		FromCache:  r.FromCache,
	}
	if r.Error != nil {
		rr.ErrorMessage = r.Error.Error()
	}
	if r.Page != nil {
		rr.EntryCount = len(r.Page.Entries)
		rr.DiscardedCount = r.Page.Discarded
	}
	if err := s.deps.DB.InsertRunResult(runID, rr); err != nil {
		s.logger.Warn("Failed to insert run result", "run_id", runID, "word", r.Word, "error", err)
	}
}

func (s *Scraper) writeSinks(page *models.LexiconPage) error {
	for _, sink := range s.deps.Sinks {
		if err := sink.Write(page); err != nil {
			s.logger.Error("Failed to write output", "path", sink.Path(), "word", page.Word, "error", err)
			return err
		}
	}
	return nil
}

func (s *Scraper) warmup(ctx context.Context, pageURL string) {
	root := common.SiteRoot(pageURL)
	if root == "" {
		return
	}
	if err := s.wait(ctx); err != nil {
		return
	}
	if err := s.deps.Fetcher.Warmup(ctx, root); err != nil {
		s.logger.Warn("Failed to warm up session", "url", root, "error", err)
		return
	}
	s.logger.Debug("Session warmed up", "url", root)
}

// wait blocks until the limiter allows the next request or ctx is done.
// Unlike rate.Limiter.Wait it does not fail early on a distant deadline.
func (s *Scraper) wait(ctx context.Context) error {
	r := s.limiter.Reserve()
	delay := r.Delay()
	if delay == 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Scraper) pause(ctx context.Context) error {
	s.logger.Info("Pausing between batches", "pause", s.cfg.BatchPause)
	if s.deps.Metrics != nil {
		s.deps.Metrics.PausesTotal.Inc()
	}

	timer := time.NewTimer(s.cfg.BatchPause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// classifyFetchError maps a fetch error to its error type and HTTP status.
func classifyFetchError(err error) (string, int) {
	var statusErr *fetcher.StatusError
	var netErr net.Error
	switch {
	case errors.Is(err, fetcher.ErrDisallowed):
		return ErrorTypeRobots, 0
	case errors.As(err, &statusErr):
		return ErrorTypeHTTP, statusErr.StatusCode
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled, 0
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout, 0
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorTypeTimeout, 0
	default:
		return ErrorTypeNetwork, 0
	}
}
