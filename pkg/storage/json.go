package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dtnitsch/lexicon-scraper/models"
)

// JSONSink collects every page and writes one lexicon document on Close.
type JSONSink struct {
	path    string
	lexicon []models.WordEntries
}

func NewJSONSink(path string) (*JSONSink, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	return &JSONSink{path: path, lexicon: []models.WordEntries{}}, nil
}

func (s *JSONSink) Write(page *models.LexiconPage) error {
	defs := page.Entries
	if defs == nil {
		defs = []models.ParsedEntry{}
	}
	s.lexicon = append(s.lexicon, models.WordEntries{Word: page.Word, Definitions: defs})
	return nil
}

func (s *JSONSink) Close() error {
	data, err := json.MarshalIndent(s.lexicon, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lexicon: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write lexicon: %w", err)
	}
	return nil
}

func (s *JSONSink) Path() string {
	return s.path
}
