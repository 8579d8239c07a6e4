package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/lexicon-scraper/internal/common"
	"github.com/dtnitsch/lexicon-scraper/pkg/artifact_manager"
	dbpkg "github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-8s %-8s %-30s\n",
		"ID", "Created", "Words", "Success", "Failed", "Entries", "Mode", "Output Dir")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-8d %-8s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.WordCount,
			r.SuccessCount,
			r.FailedCount,
			r.EntryCount,
			r.ParseMode,
			r.OutputDir,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'lxs db run <id>' to see details\n")
	return nil
}

// RunAction shows the per-word results of one run, the latest by default.
func RunAction(c *cli.Context) error {
	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	results, err := database.GetRunResults(runID)
	if err != nil {
		return fmt.Errorf("failed to get run results: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Key:         %s\n", run.RunKey)
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Output Dir:  %s\n", run.OutputDir)
	fmt.Printf("Words:       %d total (%d success, %d failed)\n",
		run.WordCount, run.SuccessCount, run.FailedCount)
	fmt.Printf("Entries:     %d\n", run.EntryCount)
	fmt.Printf("Parse Mode:  %s\n", run.ParseMode)

	if len(results) > 0 {
		fmt.Printf("\nResults (%d):\n", len(results))
		fmt.Println(strings.Repeat("-", 60))
		for i, r := range results {
			fmt.Printf("%2d. [%s] %s\n", i+1, r.Status, r.Word)
			if r.Status == dbpkg.StatusFailed {
				fmt.Printf("    Error: [%s] %s\n", r.ErrorType, r.ErrorMessage)
				continue
			}
			source := "network"
			if r.FromCache {
				source = "cache"
			}
			fmt.Printf("    Entries: %d | Discarded: %d | Source: %s\n", r.EntryCount, r.DiscardedCount, source)
		}
	}

	fmt.Printf("\nTip: Use 'lxs db show <word>' to see stored definitions\n")
	return nil
}

func WordsAction(c *cli.Context) error {
	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	words, err := database.ListWords()
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("No words found")
		return nil
	}

	fmt.Printf("%-6s %-24s %-8s %-20s %s\n", "ID", "Word", "Entries", "Updated", "URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, w := range words {
		fmt.Printf("%-6d %-24s %-8d %-20s %s\n",
			w.WordID, w.Word, w.EntryCount, w.UpdatedAt.Format("2006-01-02 15:04:05"), w.URL)
	}
	fmt.Printf("\nTotal: %d words\n", len(words))
	return nil
}

// ShowOutput is the stored state of one word.
type ShowOutput struct {
	Word        string         `json:"word" yaml:"word"`
	URL         string         `json:"url" yaml:"url"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	LastAccess  *AccessOutput  `json:"last_access,omitempty" yaml:"last_access,omitempty"`
	Artifacts   []ArtifactLine `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Definitions interface{}    `json:"definitions" yaml:"definitions"`
}

type AccessOutput struct {
	At         string `json:"at" yaml:"at"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Success    bool   `json:"success" yaml:"success"`
	FromCache  bool   `json:"from_cache" yaml:"from_cache"`
	ErrorType  string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

type ArtifactLine struct {
	Kind string `json:"kind" yaml:"kind"`
	Path string `json:"path" yaml:"path"`
	Size string `json:"size" yaml:"size"`
}

// ShowAction prints the stored definitions of a word.
func ShowAction(c *cli.Context) error {
	word := common.NormalizeWord(strings.Join(c.Args().Slice(), " "))
	if word == "" {
		return fmt.Errorf("word required\nUsage: lxs db show <word>\nExample: lxs db show cad")
	}

	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	info, err := database.GetWord(word)
	if err != nil {
		return fmt.Errorf("%w\n\nThis word may not have been scraped yet. Try:\n  lxs lookup %q", err, word)
	}
	entries, err := database.GetEntries(info.WordID)
	if err != nil {
		return err
	}

	out := ShowOutput{Word: info.Word, URL: info.URL, Title: info.Title.String, Definitions: entries}
	if fields := c.String("fields"); fields != "" {
		filtered := make([]map[string]interface{}, len(entries))
		for i, e := range entries {
			filtered[i] = common.FilterFields(e, fields)
		}
		out.Definitions = filtered
	}

	if last, err := database.GetLastAccess(info.WordID); err == nil && last != nil {
		out.LastAccess = &AccessOutput{
			At:         last.AccessedAt.Format("2006-01-02 15:04:05"),
			StatusCode: last.StatusCode,
			Success:    last.Success,
			FromCache:  last.FromCache,
			ErrorType:  last.ErrorType,
		}
	}
	if artifacts, err := database.ListArtifacts(info.WordID); err == nil {
		for _, a := range artifacts {
			out.Artifacts = append(out.Artifacts, ArtifactLine{
				Kind: a.Kind,
				Path: a.FilePath,
				Size: humanize.Bytes(uint64(a.SizeBytes)),
			})
		}
	}

	return common.PrintOutput(os.Stdout, out, c.String("format"))
}

// RawAction prints the stored page of a word.
func RawAction(c *cli.Context) error {
	word := common.NormalizeWord(strings.Join(c.Args().Slice(), " "))
	if word == "" {
		return fmt.Errorf("word required\nUsage: lxs db raw <word>")
	}

	database, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	wordID, err := database.GetWordID(word)
	if err != nil {
		return err
	}

	manager, err := artifact_manager.NewManager(cfg.Scrape.OutputDir, 0)
	if err != nil {
		return fmt.Errorf("failed to initialize artifact manager: %w", err)
	}
	data, found, err := manager.GetRawHTML(wordID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("raw HTML not found for %q under %s", word, manager.BaseDir())
	}

	fmt.Print(string(data))
	return nil
}

// InitAction creates the schema if the database is new.
func InitAction(c *cli.Context) error {
	database, _, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Printf("Database ready: %s\n", database.Path())
	return nil
}
