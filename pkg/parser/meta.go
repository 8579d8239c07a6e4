package parser

import (
	"net/url"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/go-shiori/go-readability"
)

// PageMeta extracts the title, site name and summary of a page with
// go-readability. Failures leave the metadata empty; they never fail a parse.
func PageMeta(rawURL, html string) models.PageMeta {
	pageURL, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		pageURL = &url.URL{}
	}

	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		return models.PageMeta{}
	}

	return models.PageMeta{
		Title:    normalizeText(article.Title),
		SiteName: normalizeText(article.SiteName),
		Excerpt:  normalizeText(article.Excerpt),
		Length:   article.Length,
	}
}
