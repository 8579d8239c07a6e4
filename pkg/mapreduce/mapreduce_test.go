package mapreduce

import (
	"bytes"
	"testing"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/stretchr/testify/assert"
)

func TestMapReduce(t *testing.T) {
	a := Map([]models.ContextRecord{{Word: "cad"}, {Word: "oaf"}, {Word: "cad"}})
	b := Map([]models.ContextRecord{{Word: "oaf"}})

	assert.Equal(t, map[string]int{"cad": 2, "oaf": 2}, Reduce([]map[string]int{a, b}))
	assert.Empty(t, Reduce(nil))
}

func TestMapTags(t *testing.T) {
	lexicon := []models.WordEntries{
		{Word: "cad", Definitions: []models.ParsedEntry{
			{Tags: []models.Tag{models.TagDerogatory, models.TagSlang}},
			{Tags: []models.Tag{models.TagSlang}},
		}},
		{Word: "oaf", Definitions: []models.ParsedEntry{{Tags: []models.Tag{}}}},
	}
	assert.Equal(t, map[string]int{"derogatory": 1, "slang": 2}, MapTags(lexicon))
}

func TestTopWords(t *testing.T) {
	counts := map[string]int{"cad": 3, "oaf": 5, "lout": 3, "": 9}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"top two with tie broken by key", 2, []string{"oaf:5", "cad:3"}},
		{"more than available", 10, []string{"oaf:5", "cad:3", "lout:3"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopWords(counts, tt.n))
		})
	}
}

func TestPrintTopWords(t *testing.T) {
	var buf bytes.Buffer
	PrintTopWords(&buf, map[string]int{"cad": 1, "oaf": 2}, 5)
	assert.Equal(t, "1. oaf: 2\n2. cad: 1\n", buf.String())
}
