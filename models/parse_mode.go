package models

import (
	"errors"
	"fmt"
	"strings"
)

// ParseMode selects which definition lists of the English section are read.
type ParseMode int

const (
	// ParseModeSenses reads only the lists under Noun and Adjective headings.
	ParseModeSenses ParseMode = iota
	// ParseModeAll reads every top-level definition list in the section.
	ParseModeAll
)

var ErrUnknownParseMode = errors.New("unknown parse mode")

func (m ParseMode) String() string {
	switch m {
	case ParseModeAll:
		return "all"
	default:
		return "senses"
	}
}

// ResolveParseMode converts a flag or config value to a ParseMode.
// An empty string resolves to ParseModeSenses.
func ResolveParseMode(s string) (ParseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "senses", "pos":
		return ParseModeSenses, nil
	case "all", "capture-all":
		return ParseModeAll, nil
	}
	return ParseModeSenses, fmt.Errorf("%w: %q", ErrUnknownParseMode, s)
}
