package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/dom"
)

// ErrEmptyDocument is returned when there is no markup to parse at all.
// Pages without an English section are not errors; they yield no entries.
var ErrEmptyDocument = errors.New("empty document")

// Parser holds no state between calls and is safe for concurrent use.
type Parser struct{}

// Parse turns one fetched dictionary page into its entries.
func (p *Parser) Parse(req models.ParseRequest) (*models.LexiconPage, error) {
	if strings.TrimSpace(req.HTML) == "" {
		return nil, fmt.Errorf("failed to parse %q: %w", req.Word, ErrEmptyDocument)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(req.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML for %q: %w", req.Word, err)
	}

	return p.build(doc, req), nil
}

// ParseFetched is Parse for a document the fetcher already parsed. When
// req.HTML is empty the metadata is read from the document's own markup.
func (p *Parser) ParseFetched(doc *goquery.Document, req models.ParseRequest) *models.LexiconPage {
	if req.HTML == "" && !req.SkipMeta && doc != nil {
		req.HTML, _ = doc.Html()
	}
	return p.build(doc, req)
}

func (p *Parser) build(doc *goquery.Document, req models.ParseRequest) *models.LexiconPage {
	page := p.ParseDocument(doc, req.Mode)
	page.Word = req.Word
	page.URL = req.URL

	if !req.SkipMeta {
		meta := PageMeta(req.URL, req.HTML)
		if page.Meta.Title != "" {
			meta.Title = page.Meta.Title
		}
		page.Meta = meta
	}
	return page
}

// ParseDocument extracts entries from an already parsed document.
func (p *Parser) ParseDocument(doc *goquery.Document, mode models.ParseMode) *models.LexiconPage {
	page := &models.LexiconPage{Entries: []models.ParsedEntry{}}
	if doc == nil || len(doc.Nodes) == 0 {
		return page
	}

	tree := dom.Build(doc.Nodes[0])
	page.Entries, page.Discarded = extractEntries(tree, mode)
	page.Meta.Title = normalizeText(doc.Find("#firstHeading").First().Text())
	return page
}

type definitionList struct {
	index int
	pos   models.PartOfSpeech
}

// extractEntries runs the whole pipeline over tree and returns the kept
// entries in document order together with the number discarded as noise.
func extractEntries(tree *dom.Tree, mode models.ParseMode) ([]models.ParsedEntry, int) {
	entries := []models.ParsedEntry{}

	section, ok := locateEnglishSection(tree)
	if !ok {
		return entries, 0
	}

	var lists []definitionList
	if mode == models.ParseModeAll {
		lists = locateAllLists(tree, section)
	} else {
		seen := make(map[int]bool)
		for _, h := range locateSenseHeadings(tree, section) {
			ol := locateDefinitionList(tree, h.index)
			if ol == dom.None || seen[ol] {
				continue
			}
			seen[ol] = true
			lists = append(lists, definitionList{index: ol, pos: h.category})
		}
	}

	discarded := 0
	for _, l := range lists {
		for _, li := range tree.ChildElements(l.index, dom.IsTag("li")) {
			entry, ok := buildEntry(tree, li, l.pos)
			if !ok {
				discarded++
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries, discarded
}
