package parser

import (
	"regexp"
	"strings"
)

var (
	markupResidue = regexp.MustCompile(`<[^>]*>`)
	angleBrackets = strings.NewReplacer("<", " ", ">", " ")
)

// normalizeText collapses whitespace runs to single spaces and trims the ends.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// stripMarkup removes anything tag-like left in extracted text.
func stripMarkup(input string) string {
	s := markupResidue.ReplaceAllString(input, " ")
	return normalizeText(angleBrackets.Replace(s))
}
