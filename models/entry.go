package models

import "strings"

type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "Noun"
	PartOfSpeechAdjective PartOfSpeech = "Adjective"
)

// Tag is a usage label retained from the fixed vocabulary.
type Tag string

const (
	TagDerogatory Tag = "derogatory"
	TagVulgar     Tag = "vulgar"
	TagSlang      Tag = "slang"
	TagOffensive  Tag = "offensive"
)

// TagVocabulary is the closed set of tags, in output order.
var TagVocabulary = []Tag{TagDerogatory, TagVulgar, TagSlang, TagOffensive}

// MinDescriptionLength is the shortest description, in characters, kept as data.
const MinDescriptionLength = 3

// ParsedEntry is one sense extracted from a dictionary page.
type ParsedEntry struct {
	PartOfSpeech PartOfSpeech `json:"pos" yaml:"pos"`
	Tags         []Tag        `json:"tags" yaml:"tags"`
	Labels       []string     `json:"labels,omitempty" yaml:"labels,omitempty"`
	Description  string       `json:"description" yaml:"description"`
	Quotations   []string     `json:"quotations" yaml:"quotations"`
}

// HasTag reports whether the entry carries tag t.
func (e ParsedEntry) HasTag(t Tag) bool {
	for _, have := range e.Tags {
		if have == t {
			return true
		}
	}
	return false
}

// Classes is the comma-joined label list used by the CSV output.
// Falls back to the tags when the entry has no labels.
func (e ParsedEntry) Classes() string {
	if len(e.Labels) > 0 {
		return strings.Join(e.Labels, ", ")
	}
	tags := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		tags[i] = string(t)
	}
	return strings.Join(tags, ", ")
}

// JoinedQuotations is the quotation column of the CSV output.
func (e ParsedEntry) JoinedQuotations() string {
	return strings.Join(e.Quotations, " || ")
}

// LexiconPage collects the entries parsed from one fetched document.
// Entries is empty when the page has no English section.
type LexiconPage struct {
	Word      string        `json:"word" yaml:"word"`
	URL       string        `json:"url,omitempty" yaml:"url,omitempty"`
	Meta      PageMeta      `json:"meta,omitempty" yaml:"meta,omitempty"`
	Entries   []ParsedEntry `json:"definitions" yaml:"definitions"`
	Discarded int           `json:"-" yaml:"-"`
}
