package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/models"
)

// Sink receives parsed pages as they are produced.
type Sink interface {
	Write(page *models.LexiconPage) error
	Close() error
	Path() string
}

var ErrUnknownFormat = errors.New("unknown output format")

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// NewSink opens a sink for format ("csv", "json" or "xlsx") writing to path.
func NewSink(format, path string) (Sink, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return NewCSVSink(path)
	case FormatJSON:
		return NewJSONSink(path)
	case FormatXLSX:
		return NewXLSXSink(path)
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}

// WriteAll sends every page to sink and closes it.
func WriteAll(sink Sink, pages []*models.LexiconPage) error {
	for _, p := range pages {
		if err := sink.Write(p); err != nil {
			_ = sink.Close()
			return err
		}
	}
	return sink.Close()
}

// PagesFromLexicon adapts stored lexicon records to pages for the sinks.
func PagesFromLexicon(lexicon []models.WordEntries) []*models.LexiconPage {
	pages := make([]*models.LexiconPage, len(lexicon))
	for i, w := range lexicon {
		pages[i] = &models.LexiconPage{Word: w.Word, Entries: w.Definitions}
	}
	return pages
}
