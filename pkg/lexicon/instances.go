package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dtnitsch/lexicon-scraper/models"
)

// minInstanceLength is the shortest quotation, in characters, that can hold
// a year and its separator.
const minInstanceLength = 6

// Instances lists the quotations of every tagged definition. Quotations are
// "year; text", so the year is the first four characters and the text starts
// at the seventh.
func Instances(lexicon []models.WordEntries) []models.Instance {
	var out []models.Instance
	for _, w := range lexicon {
		for _, d := range w.Definitions {
			if len(d.Tags) == 0 {
				continue
			}
			for _, q := range d.Quotations {
				runes := []rune(q)
				if len(runes) < minInstanceLength {
					continue
				}
				out = append(out, models.Instance{
					Word:        w.Word,
					Description: d.Description,
					Year:        string(runes[:4]),
					Text:        string(runes[6:]),
				})
			}
		}
	}
	return out
}

// WriteInstances writes instances as CSV with a word,description,year,text header.
func WriteInstances(w io.Writer, instances []models.Instance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"word", "description", "year", "text"}); err != nil {
		return fmt.Errorf("failed to write instances header: %w", err)
	}
	for _, in := range instances {
		if err := cw.Write([]string{in.Word, in.Description, in.Year, in.Text}); err != nil {
			return fmt.Errorf("failed to write instance: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
