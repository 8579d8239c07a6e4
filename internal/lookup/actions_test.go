package lookup

import (
	"testing"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutput(t *testing.T) {
	page := &models.LexiconPage{
		Word: "cad",
		URL:  "https://en.wiktionary.org/wiki/cad",
		Meta: models.PageMeta{Title: "cad"},
		Entries: []models.ParsedEntry{{
			PartOfSpeech: models.PartOfSpeechNoun,
			Tags:         []models.Tag{models.TagDerogatory},
			Description:  "A man who behaves dishonourably.",
			Quotations:   []string{},
		}},
	}

	full := BuildOutput(page, "")
	assert.Equal(t, "cad", full.Title)
	assert.Equal(t, page.Entries, full.Definitions)

	filtered := BuildOutput(page, "pos, description")
	defs, ok := filtered.Definitions.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, defs, 1)
	assert.Equal(t, map[string]interface{}{
		"pos":         "Noun",
		"description": "A man who behaves dishonourably.",
	}, defs[0])
}
