// Package contexts finds lexicon words in a text corpus and keeps the
// sentence window around every hit.
package contexts

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/models"
)

var ErrEmptyLexicon = errors.New("empty lexicon")

// nonWord is any character that may border a match: not a letter, digit or
// underscore in any script.
const nonWord = `[^\p{L}\p{N}_]`

var dehyphenate = strings.NewReplacer("-\n", "", "\n", " ")

// Preprocess joins words broken across lines and turns newlines into spaces.
func Preprocess(text string) string {
	return dehyphenate.Replace(text)
}

// Extractor matches whole lexicon words, case-insensitively.
type Extractor struct {
	pattern *regexp.Regexp
	words   int
}

// NewExtractor compiles one alternation over words. Longer words come first
// so that a phrase wins over a word it starts with.
func NewExtractor(words []string) (*Extractor, error) {
	seen := make(map[string]bool)
	var alts []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		alts = append(alts, w)
	}
	if len(alts) == 0 {
		return nil, ErrEmptyLexicon
	}

	sort.Slice(alts, func(i, j int) bool {
		if len(alts[i]) != len(alts[j]) {
			return len(alts[i]) > len(alts[j])
		}
		return alts[i] < alts[j]
	})
	for i, w := range alts {
		alts[i] = regexp.QuoteMeta(w)
	}

	// RE2 has no lookaround, so the boundary characters are consumed and
	// find resumes right after each word.
	pattern, err := regexp.Compile(`(?i)(?:^|` + nonWord + `)(` + strings.Join(alts, "|") + `)(?:` + nonWord + `|$)`)
	if err != nil {
		return nil, err
	}
	return &Extractor{pattern: pattern, words: len(alts)}, nil
}

// find returns every lexicon word in sentence that does not touch a letter,
// digit or underscore on either side.
func (e *Extractor) find(sentence string) []string {
	var out []string
	for pos := 0; pos < len(sentence); {
		loc := e.pattern.FindStringSubmatchIndex(sentence[pos:])
		if loc == nil {
			break
		}
		out = append(out, sentence[pos+loc[2]:pos+loc[3]])
		pos += loc[3]
	}
	return out
}

// Len is the number of distinct lexicon words.
func (e *Extractor) Len() int {
	return e.words
}

func splitSentences(article string) []string {
	var sentences []string
	for _, s := range strings.Split(article, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Extract returns one record per distinct word matched in each sentence of
// article. The text is the sentence with its neighbours on either side,
// joined with ". " and ending in a period.
func (e *Extractor) Extract(date, article string) []models.ContextRecord {
	sentences := splitSentences(article)

	var out []models.ContextRecord
	for idx, sentence := range sentences {
		matches := e.find(sentence)
		if len(matches) == 0 {
			continue
		}

		start := max(0, idx-1)
		end := min(len(sentences), idx+2)
		text := strings.Join(sentences[start:end], ". ")
		if !strings.HasSuffix(text, ".") {
			text += "."
		}

		seen := make(map[string]bool, len(matches))
		for _, m := range matches {
			word := strings.ToLower(m)
			if seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, models.ContextRecord{Date: date, Word: word, Text: text})
		}
	}
	return out
}
