package parser

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/dom"
)

var (
	isUsageLabel   = dom.TagWithClass("span", "usage-label-sense")
	isLabelContent = dom.WithClass("label-content")
	isCitation     = dom.WithClass("citation-whole")
	isQuoteList    = dom.TagWithClass("ul", "wikt-quote-container")
	isCitedSource  = dom.WithClass("cited-source")
	isPassage      = dom.WithClass("e-quotation", "cited-passage")

	// isNoise marks subtrees left out of a description.
	isNoise = dom.Any(
		isListContainer,
		dom.IsTag("sup", "style", "link", "script"),
		isUsageLabel,
		dom.TagWithClass("span", "HQToggle"),
		dom.TagWithClass("span", "nyms-toggle"),
	)
)

// buildEntry assembles one entry from a definition list item. The second
// result is false when the description is too short to be data.
func buildEntry(t *dom.Tree, li int, pos models.PartOfSpeech) (models.ParsedEntry, bool) {
	desc := extractDescription(t, li)
	if utf8.RuneCountInString(desc) < models.MinDescriptionLength {
		return models.ParsedEntry{}, false
	}
	return models.ParsedEntry{
		PartOfSpeech: pos,
		Tags:         extractTags(t, li),
		Labels:       extractLabels(t, li),
		Description:  desc,
		Quotations:   extractQuotations(t, li),
	}, true
}

// extractTags matches the first usage label of the fragment against the tag
// vocabulary by case-insensitive containment.
func extractTags(t *dom.Tree, frag int) []models.Tag {
	tags := []models.Tag{}
	label := t.Find(frag, isUsageLabel)
	if label == dom.None {
		return tags
	}

	src := label
	if content := t.Find(label, dom.WithClass("ib-content")); content != dom.None {
		src = content
	}
	text := strings.ToLower(t.InnerText(src))
	for _, tag := range models.TagVocabulary {
		if strings.Contains(text, string(tag)) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// extractLabels returns the linked label texts of the first label span.
func extractLabels(t *dom.Tree, frag int) []string {
	content := t.Find(frag, isLabelContent)
	if content == dom.None {
		return nil
	}

	var labels []string
	seen := make(map[string]bool)
	for _, a := range t.FindAll(content, dom.IsTag("a")) {
		text := normalizeText(t.InnerText(a))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		labels = append(labels, text)
	}
	return labels
}

// citationBlocks returns citation blocks in document order, including the
// older wikt-quote-container list items.
func citationBlocks(t *dom.Tree, frag int) []int {
	blocks := t.FindAll(frag, isCitation)
	for _, ul := range t.FindAll(frag, isQuoteList) {
		for _, li := range t.ChildElements(ul, dom.IsTag("li")) {
			if !isCitation(t, li) && t.Find(li, isCitation) == dom.None {
				blocks = append(blocks, li)
			}
		}
	}
	sort.Ints(blocks)
	return blocks
}

func extractQuotations(t *dom.Tree, frag int) []string {
	quotes := []string{}
	for _, block := range citationBlocks(t, frag) {
		var year, text string
		if src := t.Find(block, isCitedSource); src != dom.None {
			if b := t.Find(src, dom.IsTag("b")); b != dom.None {
				year = strings.TrimSpace(t.InnerText(b))
			}
		}
		if passage := t.Find(block, isPassage); passage != dom.None {
			text = normalizeText(t.InnerText(passage))
		}

		switch {
		case year == "" && text == "":
			continue
		case year != "":
			quotes = append(quotes, year+"; "+text)
		default:
			quotes = append(quotes, text)
		}
	}
	return quotes
}

// extractDescription flattens the fragment without nested lists, footnote
// markers, usage labels or toggle widgets. The tree is read, never edited.
func extractDescription(t *dom.Tree, frag int) string {
	text := t.TextContent(frag, dom.TextOptions{Separator: " ", Exclude: isNoise})
	return stripMarkup(text)
}
