package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func samplePages() []*models.LexiconPage {
	return []*models.LexiconPage{
		{
			Word: "cad",
			Entries: []models.ParsedEntry{
				{
					PartOfSpeech: models.PartOfSpeechNoun,
					Tags:         []models.Tag{models.TagDerogatory},
					Description:  "A dishonourable man.",
					Quotations:   []string{"1838; what a cad", "a cad, sir"},
				},
				{
					PartOfSpeech: models.PartOfSpeechNoun,
					Tags:         []models.Tag{},
					Labels:       []string{"UK", "dated"},
					Description:  "A passenger.",
					Quotations:   []string{},
				},
			},
		},
		{Word: "nothing", Entries: []models.ParsedEntry{}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSink_FlushesPerPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "lexicon.csv")
	sink, err := NewCSVSink(path)
	require.NoError(t, err)

	pages := samplePages()
	require.NoError(t, sink.Write(pages[0]))

	// Readable before Close.
	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"cad", "derogatory", "A dishonourable man.", "1838; what a cad || a cad, sir"}, rows[1])
	assert.Equal(t, []string{"cad", "UK, dated", "A passenger.", ""}, rows[2])

	require.NoError(t, sink.Write(pages[1]))
	require.NoError(t, sink.Close())
	assert.Len(t, readCSV(t, path), 3)
}

func TestJSONSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.json")
	sink, err := NewJSONSink(path)
	require.NoError(t, err)
	require.NoError(t, WriteAll(sink, samplePages()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.WordEntries
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "cad", got[0].Word)
	assert.Len(t, got[0].Definitions, 2)
	assert.Empty(t, got[1].Definitions)
	assert.Contains(t, string(data), `"pos": "Noun"`)
	assert.Contains(t, string(data), `"definitions": []`)
}

func TestXLSXSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.xlsx")
	sink, err := NewSink("XLSX", path)
	require.NoError(t, err)
	require.NoError(t, WriteAll(sink, samplePages()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"word", "pos", "classes", "definition", "quotations"}, rows[0])
	assert.Equal(t, "Noun", rows[1][1])
	assert.Equal(t, "A passenger.", rows[2][3])
}

func TestNewSink_UnknownFormat(t *testing.T) {
	_, err := NewSink("parquet", filepath.Join(t.TempDir(), "x"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestPagesFromLexicon(t *testing.T) {
	pages := PagesFromLexicon([]models.WordEntries{{Word: "a", Definitions: []models.ParsedEntry{{Description: "abc"}}}})
	require.Len(t, pages, 1)
	assert.Equal(t, "a", pages[0].Word)
	assert.Equal(t, "abc", pages[0].Entries[0].Description)
}

func TestStorage_Files(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "file.txt")

	assert.False(t, s.HasFile(path))
	require.NoError(t, s.SaveFile(path, []byte("hello")))
	assert.True(t, s.HasFile(path))

	data, err := s.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	stats, err := s.GetFileStats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.SizeBytes)
}
