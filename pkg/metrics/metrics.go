// Package metrics exposes scrape progress as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lxs"

// Metrics registers its collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	WordsTotal     *prometheus.CounterVec
	EntriesTotal   *prometheus.CounterVec
	TagsTotal      *prometheus.CounterVec
	DiscardedTotal prometheus.Counter
	PausesTotal    prometheus.Counter
	FetchSeconds   prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		WordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "words_total",
				Help:      "Count of words processed, by outcome and page source",
			},
			[]string{"status", "source"},
		),
		EntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_total",
				Help:      "Count of definitions extracted, by part of speech",
			},
			[]string{"pos"},
		),
		TagsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tags_total",
				Help:      "Count of usage tags found on extracted definitions",
			},
			[]string{"tag"},
		),
		DiscardedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discarded_entries_total",
			Help:      "Definitions dropped because their description was too short",
		}),
		PausesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_pauses_total",
			Help:      "Number of pauses taken between batches of words",
		}),
		FetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Latency of network page fetches",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.WordsTotal, m.EntriesTotal, m.TagsTotal, m.DiscardedTotal, m.PausesTotal, m.FetchSeconds)
	return m
}

// ObserveWord records the outcome of one word.
func (m *Metrics) ObserveWord(status string, fromCache bool) {
	source := "network"
	if fromCache {
		source = "cache"
	}
	m.WordsTotal.WithLabelValues(status, source).Inc()
}

// ObservePage records the entries of a parsed page.
func (m *Metrics) ObservePage(page *models.LexiconPage) {
	if page == nil {
		return
	}
	for _, e := range page.Entries {
		m.EntriesTotal.WithLabelValues(string(e.PartOfSpeech)).Inc()
		for _, t := range e.Tags {
			m.TagsTotal.WithLabelValues(string(t)).Inc()
		}
	}
	m.DiscardedTotal.Add(float64(page.Discarded))
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	m.FetchSeconds.Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
