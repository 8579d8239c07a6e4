package storage

import (
	"fmt"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "lexicon"

var xlsxHeader = []interface{}{"word", "pos", "classes", "definition", "quotations"}

// XLSXSink streams entries into a single-sheet workbook saved on Close.
type XLSXSink struct {
	path string
	file *excelize.File
	sw   *excelize.StreamWriter
	row  int
}

func NewXLSXSink(path string) (*XLSXSink, error) {
	if err := ensureParent(path); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to open sheet writer: %w", err)
	}

	s := &XLSXSink{path: path, file: f, sw: sw}
	if err := s.appendRow(xlsxHeader); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *XLSXSink) appendRow(values []interface{}) error {
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", s.row, err)
	}
	return nil
}

func (s *XLSXSink) Write(page *models.LexiconPage) error {
	for _, e := range page.Entries {
		if err := s.appendRow([]interface{}{
			page.Word, string(e.PartOfSpeech), e.Classes(), e.Description, e.JoinedQuotations(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *XLSXSink) Close() error {
	defer s.file.Close()
	if err := s.sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (s *XLSXSink) Path() string {
	return s.path
}
