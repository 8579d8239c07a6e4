package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dtnitsch/lexicon-scraper/models"
)

var csvHeader = []string{"word", "classes", "definition", "quotations"}

// CSVSink appends one row per entry and flushes after every page, so an
// interrupted run keeps everything written so far.
type CSVSink struct {
	path string
	file *os.File
	w    *csv.Writer
}

func NewCSVSink(path string) (*CSVSink, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV output: %w", err)
	}

	s := &CSVSink{path: path, file: f, w: csv.NewWriter(f)}
	if err := s.w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	return s, nil
}

func (s *CSVSink) Write(page *models.LexiconPage) error {
	for _, e := range page.Entries {
		row := []string{page.Word, e.Classes(), e.Description, e.JoinedQuotations()}
		if err := s.w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", page.Word, err)
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return s.file.Sync()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

func (s *CSVSink) Path() string {
	return s.path
}
