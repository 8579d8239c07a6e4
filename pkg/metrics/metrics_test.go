package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveWord("success", false)
	m.ObserveWord("success", true)
	m.ObserveWord("success", true)
	m.ObservePage(&models.LexiconPage{
		Entries: []models.ParsedEntry{
			{PartOfSpeech: models.PartOfSpeechNoun, Tags: []models.Tag{models.TagSlang}},
			{PartOfSpeech: models.PartOfSpeechNoun},
		},
		Discarded: 3,
	})
	m.ObservePage(nil)
	m.ObserveFetch(250 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsTotal.WithLabelValues("success", "network")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.WordsTotal.WithLabelValues("success", "cache")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesTotal.WithLabelValues("Noun")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TagsTotal.WithLabelValues("slang")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DiscardedTotal))
}

func TestHandler(t *testing.T) {
	m := New()
	m.PausesTotal.Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lxs_batch_pauses_total 1")
}
