package db

import (
	"fmt"
	"strconv"

	"github.com/dtnitsch/lexicon-scraper/internal/config"
	dbpkg "github.com/dtnitsch/lexicon-scraper/pkg/db"
	"github.com/urfave/cli/v2"
)

// openDatabase opens the database named by the config and --db flag.
func openDatabase(c *cli.Context) (*dbpkg.DB, *config.Config, error) {
	cfg, _, err := config.FromContext(c)
	if err != nil {
		return nil, nil, err
	}
	database, err := dbpkg.OpenPath(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, cfg, nil
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided.
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'lxs scrape --words words.csv' first")
		}
		return runs[0].RunID, nil
	}

	runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID: %s", c.Args().First())
	}
	return runID, nil
}
