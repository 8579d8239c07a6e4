package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWordURL(t *testing.T) {
	tests := []struct {
		base, word, want string
	}{
		{"https://en.wiktionary.org/wiki/", "cad", "https://en.wiktionary.org/wiki/cad"},
		{"https://en.wiktionary.org/wiki", " bad  egg ", "https://en.wiktionary.org/wiki/bad_egg"},
		{"https://en.wiktionary.org/wiki/", "café", "https://en.wiktionary.org/wiki/caf%C3%A9"},
		{"https://en.wiktionary.org/wiki/", "AC/DC", "https://en.wiktionary.org/wiki/AC%2FDC"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildWordURL(tt.base, tt.word))
		})
	}
}

func TestResolveWordURL(t *testing.T) {
	base := "https://en.wiktionary.org/wiki/"
	assert.Equal(t, "https://example.com/wiki/cad", ResolveWordURL(base, "cad", " https://example.com/wiki/cad, "))
	assert.Equal(t, base+"cad", ResolveWordURL(base, "cad", ""))
	assert.Equal(t, base+"cad", ResolveWordURL(base, "cad", "not a url"))
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com", SanitizeURL("[x](https://example.com)"))
	assert.Equal(t, "https://example.com/a", SanitizeURL("  (https://example.com/a), "))
}

func TestSiteRoot(t *testing.T) {
	assert.Equal(t, "https://en.wiktionary.org/", SiteRoot("https://en.wiktionary.org/wiki/cad"))
	assert.Equal(t, "", SiteRoot("cad"))
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(nil))
}

func TestFilterFields(t *testing.T) {
	obj := struct {
		Pos  string `json:"pos"`
		Desc string `json:"description"`
	}{"Noun", "A word."}

	assert.Equal(t, map[string]interface{}{"pos": "Noun"}, FilterFields(obj, "pos, missing"))
	assert.Len(t, FilterFields(obj, ""), 2)
}

func TestPrintOutput(t *testing.T) {
	v := struct {
		Word string `json:"word" yaml:"word"`
	}{"cad"}

	var buf bytes.Buffer
	assert.NoError(t, PrintOutput(&buf, v, "json"))
	assert.Equal(t, "{\n  \"word\": \"cad\"\n}\n", buf.String())

	buf.Reset()
	assert.NoError(t, PrintOutput(&buf, v, "yaml"))
	assert.Equal(t, "word: cad\n", buf.String())
}
