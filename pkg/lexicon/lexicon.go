// Package lexicon reads and writes the word lists and lexicon documents
// that flow between the scrape, instances and contexts commands.
package lexicon

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/models"
)

// ReadWordList reads a word,link CSV. The header row is optional; without it
// the first column is the word and the second, if any, the link. Blank words
// are skipped.
func ReadWordList(r io.Reader) ([]models.WordLink, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	wordCol, linkCol := 0, 1
	var out []models.WordLink
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word list line %d: %w", line, err)
		}

		if line == 1 && isHeader(rec) {
			wordCol, linkCol = -1, -1
			for i, name := range rec {
				switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
				case "word":
					wordCol = i
				case "link", "url":
					linkCol = i
				}
			}
			if wordCol < 0 {
				return nil, fmt.Errorf("word list header has no word column")
			}
			continue
		}

		word := common.NormalizeWord(field(rec, wordCol))
		if word == "" {
			continue
		}
		out = append(out, models.WordLink{Word: word, Link: strings.TrimSpace(field(rec, linkCol))})
	}
	return out, nil
}

func isHeader(rec []string) bool {
	for _, name := range rec {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "word", "link", "url":
			return true
		}
	}
	return false
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimPrefix(rec[i], "\ufeff")
}

// ReadWordListFile opens path and reads it with ReadWordList.
func ReadWordListFile(path string) ([]models.WordLink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()
	return ReadWordList(f)
}

// ReadLexicon reads a lexicon JSON document: [{word, definitions: [...]}].
func ReadLexicon(path string) ([]models.WordEntries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	var lexicon []models.WordEntries
	if err := json.Unmarshal(data, &lexicon); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon %s: %w", path, err)
	}
	return lexicon, nil
}

// WriteLexicon writes lexicon as indented JSON.
func WriteLexicon(w io.Writer, lexicon []models.WordEntries) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lexicon); err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}
	return nil
}

// Words returns the lowercased, de-duplicated headwords in lexicon order.
func Words(lexicon []models.WordEntries) []string {
	seen := make(map[string]bool)
	var words []string
	for _, w := range lexicon {
		word := strings.ToLower(common.NormalizeWord(w.Word))
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		words = append(words, word)
	}
	return words
}
