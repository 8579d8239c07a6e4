package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page wraps body in the markup of a rendered dictionary page.
func page(body string) string {
	return `<!DOCTYPE html><html><head><title>test</title></head><body>
<h1 id="firstHeading">test</h1>
<div class="mw-parser-output">` + body + `</div></body></html>`
}

func heading(level, id string) string {
	return `<div class="mw-heading mw-heading` + level[1:] + `"><` + level + ` id="` + id + `">` +
		strings.ReplaceAll(id, "_", " ") + `</` + level + `></div>`
}

func parse(t *testing.T, html string, mode models.ParseMode) *models.LexiconPage {
	t.Helper()
	p := &Parser{}
	got, err := p.Parse(models.ParseRequest{Word: "test", HTML: html, Mode: mode, SkipMeta: true})
	require.NoError(t, err)
	return got
}

func TestParse_MinimalDocument(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Noun") + `
<p><b>test</b></p>
<ol>
  <li>A valid definition.</li>
  <li></li>
</ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, models.PartOfSpeechNoun, got.Entries[0].PartOfSpeech)
	assert.Equal(t, "A valid definition.", got.Entries[0].Description)
	assert.Equal(t, 1, got.Discarded)
	assert.Equal(t, "test", got.Meta.Title)
}

func TestParse_NoEnglishSection(t *testing.T) {
	html := page(heading("h2", "French") + heading("h3", "Noun") + `<ol><li>un mot</li></ol>`)

	got := parse(t, html, models.ParseModeSenses)
	assert.NotNil(t, got.Entries)
	assert.Empty(t, got.Entries)
}

func TestParse_EmptyDocument(t *testing.T) {
	p := &Parser{}
	_, err := p.Parse(models.ParseRequest{Word: "x", HTML: "  \n"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

func TestParse_SectionBoundary(t *testing.T) {
	html := page(
		heading("h2", "English") +
			heading("h3", "Adjective") + `<ol><li>english adjective</li></ol>` +
			heading("h2", "Dutch") +
			heading("h3", "Noun") + `<ol><li>dutch noun</li></ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, models.PartOfSpeechAdjective, got.Entries[0].PartOfSpeech)
	assert.Equal(t, "english adjective", got.Entries[0].Description)
}

func TestParse_HeadingsInDocumentOrder(t *testing.T) {
	html := page(
		heading("h2", "English") +
			heading("h3", "Etymology_1") +
			heading("h4", "Noun") + `<ol><li>first noun</li></ol>` +
			heading("h3", "Adjective") + `<ol><li>an adjective</li></ol>` +
			heading("h3", "Etymology_2") +
			heading("h4", "Noun_2") + `<ol><li>second noun</li></ol>` +
			heading("h4", "Verb") + `<ol><li>a verb</li></ol>`)

	got := parse(t, html, models.ParseModeSenses)
	var descs []string
	var pos []models.PartOfSpeech
	for _, e := range got.Entries {
		descs = append(descs, e.Description)
		pos = append(pos, e.PartOfSpeech)
	}
	assert.Equal(t, []string{"first noun", "an adjective", "second noun"}, descs)
	assert.Equal(t, []models.PartOfSpeech{
		models.PartOfSpeechNoun, models.PartOfSpeechAdjective, models.PartOfSpeechNoun,
	}, pos)
}

func TestParse_SenseWithoutListDoesNotBorrow(t *testing.T) {
	html := page(
		heading("h2", "English") +
			heading("h3", "Noun") + `<p>See the adjective.</p>` +
			heading("h3", "Adjective") + `<ol><li>only adjective</li></ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, models.PartOfSpeechAdjective, got.Entries[0].PartOfSpeech)
}

func TestParse_ListStopsAtLanguageContainer(t *testing.T) {
	html := page(
		heading("h2", "English") +
			heading("h3", "Noun") + `<p>no list here</p>` +
			`<section>` + heading("h2", "German") + `<ol><li>ein Wort</li></ol></section>`)

	got := parse(t, html, models.ParseModeSenses)
	assert.Empty(t, got.Entries)
}

func TestParse_LegacyHeadlineMarkup(t *testing.T) {
	html := page(`<h2><span class="mw-headline" id="English">English</span></h2>
<h3><span class="mw-headline" id="Noun">Noun</span></h3>
<p>word</p>
<ol><li>legacy definition</li></ol>
<h2><span class="mw-headline" id="Latin">Latin</span></h2>
<h3><span class="mw-headline" id="Noun_2">Noun</span></h3>
<ol><li>latin definition</li></ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "legacy definition", got.Entries[0].Description)
}

func TestParse_NestedSubsensesAreNotEntries(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Noun") + `
<ol>
  <li>Top sense.
    <ol><li>Sub sense one.</li><li>Sub sense two.</li></ol>
    <dl><dd>A usage note.</dd></dl>
  </li>
</ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "Top sense.", got.Entries[0].Description)
}

func TestParse_FullEntry(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Noun") + `
<ol>
  <li><span class="usage-label-sense"><span class="ib-brac">(</span><span class="ib-content"><span class="label-content"><a href="/wiki/vulgar">vulgar</a>, <a href="/wiki/slang">slang</a></span></span><span class="ib-brac">)</span></span>
    A <a href="/wiki/rude">rude</a> person.<sup>[1]</sup>
    <span class="nyms-toggle">Synonyms</span>
    <ul>
      <li><div class="citation-whole"><span class="cited-source"><b>1811</b>, Someone, <i>A Book</i></span>:
        <dl><dd><div class="h-quotation"><span class="e-quotation">a vulgar <b>word</b>
          indeed</span></div></dd></dl></div></li>
      <li><div class="citation-whole"><div class="h-quotation"><span class="e-quotation">no source here</span></div></div></li>
    </ul>
  </li>
</ol>`)

	got := parse(t, html, models.ParseModeSenses)
	require.Len(t, got.Entries, 1)
	e := got.Entries[0]
	assert.Equal(t, []models.Tag{models.TagVulgar, models.TagSlang}, e.Tags)
	assert.Equal(t, []string{"vulgar", "slang"}, e.Labels)
	assert.Equal(t, "A rude person.", e.Description)
	assert.Equal(t, []string{"1811; a vulgar word indeed", "no source here"}, e.Quotations)
	assert.Equal(t, "vulgar, slang", e.Classes())
}

func TestParse_CaptureAllMode(t *testing.T) {
	html := page(
		heading("h2", "English") +
			heading("h3", "Etymology") + `<p>From somewhere.</p>` +
			heading("h4", "Proper_noun") + `<ol><li>a proper noun</li></ol>` +
			heading("h4", "Verb") + `<ol><li>to do it<ol><li>nested</li></ol></li></ol>` +
			`<ul><li><ol><li>inside a list</li></ol></li></ul>` +
			heading("h2", "French") + `<ol><li>le mot</li></ol>`)

	got := parse(t, html, models.ParseModeAll)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, models.PartOfSpeech("Proper noun"), got.Entries[0].PartOfSpeech)
	assert.Equal(t, models.PartOfSpeech("Verb"), got.Entries[1].PartOfSpeech)
	assert.Equal(t, "to do it", got.Entries[1].Description)
}

func TestParse_Idempotent(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Adjective") + `
<ol><li><span class="usage-label-sense">(derogatory)</span> Mean.<div class="citation-whole"><span class="cited-source"><b>1900</b></span><span class="e-quotation">so mean</span></div></li></ol>`)

	first := parse(t, html, models.ParseModeSenses)
	second := parse(t, html, models.ParseModeSenses)
	assert.Equal(t, first, second)
	require.Len(t, first.Entries, 1)
	assert.Equal(t, []models.Tag{models.TagDerogatory}, first.Entries[0].Tags)
}

func TestParseDocument_Nil(t *testing.T) {
	p := &Parser{}
	got := p.ParseDocument(nil, models.ParseModeSenses)
	assert.Empty(t, got.Entries)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.ParseDocument(doc, models.ParseModeAll).Entries)
}

func TestParse_WithMeta(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Noun") + `
<ol><li>A man who behaves dishonourably.</li></ol>`)

	p := &Parser{}
	got, err := p.Parse(models.ParseRequest{Word: "cad", URL: "https://en.wiktionary.org/wiki/cad", HTML: html})
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "test", got.Meta.Title)

	assert.NotPanics(t, func() { PageMeta("", "") })
}

func TestParseFetched(t *testing.T) {
	html := page(heading("h2", "English") + heading("h3", "Noun") + `
<ol><li>A man who behaves dishonourably.</li><li>x</li></ol>`)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	p := &Parser{}
	req := models.ParseRequest{Word: "cad", URL: "https://en.wiktionary.org/wiki/cad", Mode: models.ParseModeSenses}
	got := p.ParseFetched(doc, req)

	req.HTML = html
	want, err := p.Parse(req)
	require.NoError(t, err)

	assert.Equal(t, want.Entries, got.Entries)
	assert.Equal(t, 1, got.Discarded)
	assert.Equal(t, "cad", got.Word)
	assert.Equal(t, "test", got.Meta.Title)
}

// fragment builds a tree from a single list item and returns its index.
func fragment(t *testing.T, li string) (*dom.Tree, int) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<ol>" + li + "</ol>"))
	require.NoError(t, err)
	tree := dom.Build(doc.Nodes[0])
	i := tree.Find(0, dom.IsTag("li"))
	require.NotEqual(t, dom.None, i)
	return tree, i
}
