package parser

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/dom"
)

const englishID = "English"

var (
	isHeading       = dom.IsTag("h1", "h2", "h3", "h4", "h5", "h6")
	isSenseHeading  = dom.IsTag("h3", "h4")
	isLanguageBreak = dom.IsTag("h2")
	isListContainer = dom.IsTag("ol", "ul", "dl")

	headingOrdinal = regexp.MustCompile(`_\d+$`)
)

// boundary is the half-open index range [start, end) of a language section.
// start is the section's h2.
type boundary struct {
	start, end int
}

// senseHeading is a Noun or Adjective heading inside the English section.
type senseHeading struct {
	index    int
	category models.PartOfSpeech
}

// locateEnglishSection finds the h2 identified as English (either on the h2
// itself or on a headline span inside it). The section runs to the next h2 in
// document order or to the end of the tree.
func locateEnglishSection(t *dom.Tree) (boundary, bool) {
	for i := 0; i < t.Len(); i++ {
		if t.ID(i) != englishID {
			continue
		}
		h := i
		if t.Tag(i) != "h2" {
			h = t.Closest(i, isLanguageBreak)
			if h == dom.None {
				continue
			}
		}

		end := t.Len()
		for j := t.End(h); j < t.Len(); j++ {
			if t.Tag(j) == "h2" {
				end = j
				break
			}
		}
		return boundary{start: h, end: end}, true
	}
	return boundary{}, false
}

// headingID returns the id of heading h, falling back to the id of a
// mw-headline span for older page markup.
func headingID(t *dom.Tree, h int) string {
	if id := t.ID(h); id != "" {
		return id
	}
	if span := t.Find(h, dom.WithClass("mw-headline")); span != dom.None {
		return t.ID(span)
	}
	return ""
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// senseCategory classifies a heading id by its prefix before any underscore.
func senseCategory(id string) (models.PartOfSpeech, bool) {
	prefix, _, _ := strings.Cut(id, "_")
	switch models.PartOfSpeech(prefix) {
	case models.PartOfSpeechNoun:
		return models.PartOfSpeechNoun, true
	case models.PartOfSpeechAdjective:
		return models.PartOfSpeechAdjective, true
	}
	return "", false
}

// headingCategory names any h3/h4 heading for capture-all parsing:
// "Proper_noun_2" becomes "Proper noun".
func headingCategory(id string) models.PartOfSpeech {
	id = headingOrdinal.ReplaceAllString(id, "")
	return models.PartOfSpeech(strings.ReplaceAll(id, "_", " "))
}

// locateSenseHeadings returns the Noun and Adjective headings of the section
// in document order. Index order is document order, so an h3 and h4 can never
// tie; no source position metadata is consulted.
func locateSenseHeadings(t *dom.Tree, b boundary) []senseHeading {
	var out []senseHeading
	for _, h := range t.FindIn(b.start+1, b.end, isSenseHeading) {
		if cat, ok := senseCategory(headingID(t, h)); ok {
			out = append(out, senseHeading{index: h, category: cat})
		}
	}
	return out
}

// locateDefinitionList walks the siblings after a sense heading until the
// first ordered list. Modern markup wraps headings in div.mw-heading, in which
// case the walk starts after the wrapper. The walk gives up at a new language
// heading or at a heading no deeper than the sense heading, so a sense without
// its own list never borrows the next one.
func locateDefinitionList(t *dom.Tree, heading int) int {
	start := heading
	if p := t.Parent(heading); p != dom.None && t.HasClass(p, "mw-heading") {
		start = p
	}
	level := headingLevel(t.Tag(heading))

	for s := t.NextElementSibling(start); s != dom.None; s = t.NextElementSibling(s) {
		switch {
		case t.Tag(s) == "ol":
			return s
		case isLanguageBreak(t, s) || t.Find(s, isLanguageBreak) != dom.None:
			return dom.None
		case closesSense(t, s, level):
			return dom.None
		}
	}
	return dom.None
}

func closesSense(t *dom.Tree, s, level int) bool {
	h := s
	if !isHeading(t, s) {
		if !t.HasClass(s, "mw-heading") {
			return false
		}
		if h = t.Find(s, isHeading); h == dom.None {
			return false
		}
	}
	l := headingLevel(t.Tag(h))
	return l > 0 && l <= level
}

// locateAllLists returns every top-level ordered list in the section, each
// labelled with the nearest preceding h3/h4 heading.
func locateAllLists(t *dom.Tree, b boundary) []definitionList {
	var (
		out     []definitionList
		current models.PartOfSpeech
	)
	for i := b.start + 1; i < b.end; i++ {
		switch {
		case isSenseHeading(t, i):
			current = headingCategory(headingID(t, i))
		case t.Tag(i) == "ol":
			if t.Closest(i, isListContainer) == dom.None {
				out = append(out, definitionList{index: i, pos: current})
			}
			i = t.End(i) - 1
		}
	}
	return out
}
