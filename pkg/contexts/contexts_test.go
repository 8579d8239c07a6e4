package contexts

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "a scoundrel came home", Preprocess("a scoun-\ndrel came\nhome"))
}

func TestNewExtractor_Empty(t *testing.T) {
	_, err := NewExtractor([]string{" ", ""})
	assert.True(t, errors.Is(err, ErrEmptyLexicon))
}

func TestExtract(t *testing.T) {
	ex, err := NewExtractor([]string{"cad", "Bad Egg", "cad", "egg"})
	require.NoError(t, err)
	assert.Equal(t, 3, ex.Len())

	article := "It rained. He was a Cad, a real cad and a bad egg. Nobody cared. The end"
	got := ex.Extract("1890-01-02", article)

	assert.Equal(t, []models.ContextRecord{
		{Date: "1890-01-02", Word: "cad", Text: "It rained. He was a Cad, a real cad and a bad egg. Nobody cared."},
		{Date: "1890-01-02", Word: "bad egg", Text: "It rained. He was a Cad, a real cad and a bad egg. Nobody cared."},
	}, got)
}

func TestExtract_UnicodeWordBoundaries(t *testing.T) {
	ex, err := NewExtractor([]string{"café", "naïf", "bad", "bad egg"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"accented ending", "Un Café noir", []string{"café"}},
		{"accented middle", "a naïf fellow", []string{"naïf"}},
		{"letter after accent", "two cafés", nil},
		{"letter before", "décafé", nil},
		{"adjacent hits", "café,café naïf", []string{"café", "naïf"}},
		{"shorter word when longer is not whole", "bad eggs", []string{"bad"}},
		{"digit is a word character", "bad2 egg", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var words []string
			for _, r := range ex.Extract("", tt.sentence) {
				words = append(words, r.Word)
			}
			assert.Equal(t, tt.want, words)
		})
	}
}

func TestExtract_WindowClipping(t *testing.T) {
	ex, err := NewExtractor([]string{"oaf"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		article string
		want    []string
	}{
		{"first sentence", "An oaf. Second. Third.", []string{"An oaf. Second."}},
		{"last sentence", "First. Second. An oaf", []string{"Second. An oaf."}},
		{"only sentence", "  oaf  ", []string{"oaf."}},
		{"two hits", "Oaf. Middle. Oaf.", []string{"Oaf. Middle.", "Middle. Oaf."}},
		{"whole word only", "Loafers. Oafish.", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var texts []string
			for _, r := range ex.Extract("", tt.article) {
				texts = append(texts, r.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

type rejectContaining string

func (r rejectContaining) Keep(text string) bool {
	return !strings.Contains(text, string(r))
}

func writeCorpus(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := writeCorpus(t, dir, "a.jsonl",
		`{"date": "1890-01-01", "article": "A cad arrived. He left."}`,
		``,
		`not json`,
		`{"date": "1890-01-02", "article": "Le cad est parti."}`,
	)
	b := writeCorpus(t, dir, "b.jsonl",
		`{"date": "1891-05-05", "article": "The oaf and the cad-\ndish cad met."}`,
	)

	ex, err := NewExtractor([]string{"cad", "oaf"})
	require.NoError(t, err)

	var buf bytes.Buffer
	res, err := Run(context.Background(), []string{a, b}, ex, &buf, Options{Workers: 2, Filter: rejectContaining("Le ")})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 3, res.Articles)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Malformed)
	assert.Equal(t, 3, res.Records)
	assert.Equal(t, map[string]int{"cad": 2, "oaf": 1}, res.Counts)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"date", "word", "text"}, rows[0])
	assert.Contains(t, rows[1:], []string{"1890-01-01", "cad", "A cad arrived. He left."})
	assert.Contains(t, rows[1:], []string{"1891-05-05", "oaf", "The oaf and the caddish cad met."})
}

func TestRun_MissingFile(t *testing.T) {
	ex, err := NewExtractor([]string{"cad"})
	require.NoError(t, err)

	_, err = Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.jsonl")}, ex, &bytes.Buffer{}, Options{})
	assert.Error(t, err)
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, "a.jsonl", `{"date": "d", "article": "cad."}`)
	ex, err := NewExtractor([]string{"cad"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, []string{path}, ex, &bytes.Buffer{}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
