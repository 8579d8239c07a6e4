package lookup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/internal/config"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/artifact_manager"
	"github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/dtnitsch/lexicon-scraper/pkg/fetcher"
	"github.com/dtnitsch/lexicon-scraper/pkg/parser"
	"github.com/urfave/cli/v2"
)

// Output is what lookup and parse print.
type Output struct {
	Word        string      `json:"word" yaml:"word"`
	URL         string      `json:"url,omitempty" yaml:"url,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Discarded   int         `json:"discarded,omitempty" yaml:"discarded,omitempty"`
	Definitions interface{} `json:"definitions" yaml:"definitions"`
}

// BuildOutput renders page, keeping only fields of each definition when set.
func BuildOutput(page *models.LexiconPage, fields string) *Output {
	out := &Output{
		Word:        page.Word,
		URL:         page.URL,
		Title:       page.Meta.Title,
		Discarded:   page.Discarded,
		Definitions: page.Entries,
	}
	if fields == "" {
		return out
	}

	filtered := make([]map[string]interface{}, len(page.Entries))
	for i, e := range page.Entries {
		filtered[i] = common.FilterFields(e, fields)
	}
	out.Definitions = filtered
	return out
}

// LookupAction fetches and parses the page of one word.
func LookupAction(c *cli.Context) error {
	word := common.NormalizeWord(strings.Join(c.Args().Slice(), " "))
	if word == "" {
		return cli.Exit("Error: No word provided\n\nUsage:\n  lxs lookup cad", 1)
	}

	cfg, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	mode, err := models.ResolveParseMode(cfg.Scrape.Mode)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	url := common.ResolveWordURL(cfg.Scrape.BaseURL, word, c.String("link"))
	f := fetcher.NewFetcher(fetcher.Options{
		UserAgent:    cfg.Scrape.UserAgent,
		Timeout:      cfg.Scrape.Timeout,
		IgnoreRobots: cfg.Scrape.IgnoreRobots,
	})

	logger.Info("Fetching page", "word", word, "url", url)
	doc, err := f.GetHtml(c.Context, url)
	if err != nil {
		logger.Error("Error fetching HTML", "word", word, "url", url, "error", err)
		return cli.Exit("", 2)
	}

	p := &parser.Parser{}
	page := p.ParseFetched(doc, models.ParseRequest{
		Word:     word,
		URL:      url,
		Mode:     mode,
		SkipMeta: c.Bool("no-meta"),
	})
	return printPage(c, page)
}

// ParseAction parses a saved page: --file PATH ("-" for stdin) or --cached WORD
// for the raw page stored by an earlier scrape.
func ParseAction(c *cli.Context) error {
	cfg, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	mode, err := models.ResolveParseMode(cfg.Scrape.Mode)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	word := common.NormalizeWord(c.String("word"))
	url := c.String("url")
	var rawHTML []byte

	switch {
	case c.IsSet("cached"):
		word = common.NormalizeWord(c.String("cached"))
		rawHTML, url, err = readCached(cfg, word)
	case c.String("file") == "-":
		rawHTML, err = io.ReadAll(os.Stdin)
	case c.String("file") != "":
		path := c.String("file")
		rawHTML, err = os.ReadFile(filepath.Clean(path))
		if word == "" {
			word = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	default:
		return cli.Exit("Error: one of --file or --cached is required", 1)
	}
	if err != nil {
		logger.Error("failed to read page", "word", word, "error", err)
		return cli.Exit("", 2)
	}

	return parseAndPrint(c, word, url, rawHTML, mode)
}

func readCached(cfg *config.Config, word string) ([]byte, string, error) {
	database, err := db.OpenPath(cfg.DB.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	info, err := database.GetWord(word)
	if err != nil {
		return nil, "", err
	}

	// Any stored copy will do here, however old.
	manager, err := artifact_manager.NewManager(cfg.Scrape.OutputDir, 0)
	if err != nil {
		return nil, "", err
	}
	rawHTML, found, err := manager.GetRawHTML(info.WordID)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", fmt.Errorf("no stored page for %q under %s", word, cfg.Scrape.OutputDir)
	}
	return rawHTML, info.URL, nil
}

func parseAndPrint(c *cli.Context, word, url string, rawHTML []byte, mode models.ParseMode) error {
	p := &parser.Parser{}
	page, err := p.Parse(models.ParseRequest{
		Word:     word,
		URL:      url,
		HTML:     string(rawHTML),
		Mode:     mode,
		SkipMeta: c.Bool("no-meta"),
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error parsing HTML: %v", err), 2)
	}
	return printPage(c, page)
}

// printPage prints page and exits 1 when it has no entries.
func printPage(c *cli.Context, page *models.LexiconPage) error {
	if err := common.PrintOutput(os.Stdout, BuildOutput(page, c.String("fields")), c.String("format")); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(page.Entries) == 0 {
		return cli.Exit("", 1)
	}
	return nil
}
