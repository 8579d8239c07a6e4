package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dtnitsch/lexicon-scraper/models"
)

// ReplaceEntries swaps the stored parse of a word for entries in one transaction.
func (db *DB) ReplaceEntries(wordID int64, entries []models.ParsedEntry) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		"DELETE FROM quotations WHERE entry_id IN (SELECT entry_id FROM entries WHERE word_id = ?)",
		"DELETE FROM entry_tags WHERE entry_id IN (SELECT entry_id FROM entries WHERE word_id = ?)",
		"DELETE FROM entries WHERE word_id = ?",
	} {
		if _, err = tx.Exec(stmt, wordID); err != nil {
			return fmt.Errorf("failed to clear entries: %w", err)
		}
	}

	for i, e := range entries {
		var labels sql.NullString
		if len(e.Labels) > 0 {
			data, jerr := json.Marshal(e.Labels)
			if jerr != nil {
				err = fmt.Errorf("failed to encode labels: %w", jerr)
				return err
			}
			labels = NewNullString(string(data))
		}

		var result sql.Result
		result, err = tx.Exec(`
			INSERT INTO entries (word_id, position, pos, description, labels)
			VALUES (?, ?, ?, ?, ?)
		`, wordID, i, string(e.PartOfSpeech), e.Description, labels)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		var entryID int64
		if entryID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get entry ID: %w", err)
		}

		for j, tag := range e.Tags {
			if _, err = tx.Exec("INSERT OR IGNORE INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)", entryID, j, string(tag)); err != nil {
				return fmt.Errorf("failed to insert tag: %w", err)
			}
		}
		for j, q := range e.Quotations {
			if _, err = tx.Exec("INSERT INTO quotations (entry_id, position, text) VALUES (?, ?, ?)", entryID, j, q); err != nil {
				return fmt.Errorf("failed to insert quotation: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// GetEntries returns the stored entries of a word in document order.
func (db *DB) GetEntries(wordID int64) ([]models.ParsedEntry, error) {
	byWord, err := db.loadEntries("WHERE e.word_id = ?", wordID)
	if err != nil {
		return nil, err
	}
	if entries, ok := byWord[wordID]; ok {
		return entries, nil
	}
	return []models.ParsedEntry{}, nil
}

// ExportLexicon returns every stored word with its entries, in insertion order.
func (db *DB) ExportLexicon() ([]models.WordEntries, error) {
	words, err := db.ListWords()
	if err != nil {
		return nil, err
	}
	byWord, err := db.loadEntries("")
	if err != nil {
		return nil, err
	}

	lexicon := make([]models.WordEntries, 0, len(words))
	for _, w := range words {
		defs := byWord[w.WordID]
		if defs == nil {
			defs = []models.ParsedEntry{}
		}
		lexicon = append(lexicon, models.WordEntries{Word: w.Word, Definitions: defs})
	}
	return lexicon, nil
}

// loadEntries reads entries, tags and quotations with three flat queries and
// stitches them together, keyed by word_id. where filters on entries e.
func (db *DB) loadEntries(where string, args ...any) (map[int64][]models.ParsedEntry, error) {
	type ref struct {
		wordID int64
		index  int
	}
	refs := make(map[int64]ref)
	byWord := make(map[int64][]models.ParsedEntry)

	rows, err := db.Query(`
		SELECT e.entry_id, e.word_id, e.pos, e.description, e.labels
		FROM entries e `+where+`
		ORDER BY e.word_id, e.position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	for rows.Next() {
		var (
			entryID, wordID int64
			pos             sql.NullString
			labels          sql.NullString
			entry           models.ParsedEntry
		)
		if err := rows.Scan(&entryID, &wordID, &pos, &entry.Description, &labels); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.PartOfSpeech = models.PartOfSpeech(pos.String)
		entry.Tags = []models.Tag{}
		entry.Quotations = []string{}
		if labels.Valid {
			if err := json.Unmarshal([]byte(labels.String), &entry.Labels); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to decode labels: %w", err)
			}
		}
		refs[entryID] = ref{wordID: wordID, index: len(byWord[wordID])}
		byWord[wordID] = append(byWord[wordID], entry)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	rows, err = db.Query(`
		SELECT t.entry_id, t.tag
		FROM entry_tags t JOIN entries e ON e.entry_id = t.entry_id `+where+`
		ORDER BY t.entry_id, t.position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	for rows.Next() {
		var entryID int64
		var tag string
		if err := rows.Scan(&entryID, &tag); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		if r, ok := refs[entryID]; ok {
			e := &byWord[r.wordID][r.index]
			e.Tags = append(e.Tags, models.Tag(tag))
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	rows, err = db.Query(`
		SELECT q.entry_id, q.text
		FROM quotations q JOIN entries e ON e.entry_id = q.entry_id `+where+`
		ORDER BY q.entry_id, q.position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var entryID int64
		var text string
		if err := rows.Scan(&entryID, &text); err != nil {
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		if r, ok := refs[entryID]; ok {
			e := &byWord[r.wordID][r.index]
			e.Quotations = append(e.Quotations, text)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quotations: %w", err)
	}
	return byWord, nil
}
