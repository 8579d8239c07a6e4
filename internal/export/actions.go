package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/internal/config"
	"github.com/dtnitsch/lexicon-scraper/models"
	"github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/dtnitsch/lexicon-scraper/pkg/lexicon"
	"github.com/dtnitsch/lexicon-scraper/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// Output reports one written file.
type Output struct {
	Path    string `json:"path" yaml:"path"`
	Format  string `json:"format" yaml:"format"`
	Words   int    `json:"words" yaml:"words"`
	Records int    `json:"records" yaml:"records"`
	Size    string `json:"size" yaml:"size"`
}

// ExportAction writes the lexicon, read from --lexicon or the database, as
// csv, json or xlsx.
func ExportAction(c *cli.Context) error {
	cfg, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	format := strings.ToLower(c.String("format"))
	outPath := c.String("out")
	if outPath == "" {
		outPath = "lexicon." + format
	}

	lex, err := loadLexicon(c, cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	records := 0
	for _, w := range lex {
		records += len(w.Definitions)
	}

	if err := WriteLexicon(lex, format, outPath); err != nil {
		logger.Error("export failed", "path", outPath, "error", err)
		return cli.Exit("", 2)
	}
	return printWritten(c, outPath, format, len(lex), records)
}

// WriteLexicon writes lex to path. JSON keeps the {word, definitions} shape
// that --lexicon reads back; csv and xlsx go through the output sinks.
func WriteLexicon(lex []models.WordEntries, format, path string) error {
	if format == storage.FormatJSON {
		return writeFile(path, func(f *os.File) error { return lexicon.WriteLexicon(f, lex) })
	}

	sink, err := storage.NewSink(format, path)
	if err != nil {
		return err
	}
	return storage.WriteAll(sink, storage.PagesFromLexicon(lex))
}

// InstancesAction writes the dated quotations of tagged definitions as CSV.
func InstancesAction(c *cli.Context) error {
	cfg, logger, err := config.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	lex, err := loadLexicon(c, cfg, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	outPath := c.String("out")
	if outPath == "" {
		outPath = "instances.csv"
	}

	instances := lexicon.Instances(lex)
	err = writeFile(outPath, func(f *os.File) error { return lexicon.WriteInstances(f, instances) })
	if err != nil {
		logger.Error("failed to write instances", "path", outPath, "error", err)
		return cli.Exit("", 2)
	}
	return printWritten(c, outPath, "csv", len(lex), len(instances))
}

func loadLexicon(c *cli.Context, cfg *config.Config, logger *slog.Logger) ([]models.WordEntries, error) {
	if path := c.String("lexicon"); path != "" {
		return lexicon.ReadLexicon(path)
	}

	database, err := db.OpenPath(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	logger.Info("Reading lexicon from database", "path", database.Path())
	return database.ExportLexicon()
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printWritten(c *cli.Context, path, format string, words, records int) error {
	out := Output{Path: path, Format: format, Words: words, Records: records}
	if stats, err := (&storage.Storage{}).GetFileStats(path); err == nil {
		out.Size = humanize.Bytes(uint64(stats.SizeBytes))
	}
	if err := common.PrintOutput(os.Stdout, out, c.String("output-format")); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	return nil
}
