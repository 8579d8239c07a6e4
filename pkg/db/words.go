package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// WordInfo is a stored headword with a summary of its current parse.
type WordInfo struct {
	WordID     int64
	Word       string
	URL        string
	Title      sql.NullString
	EntryCount int
	UpdatedAt  time.Time
}

// AccessRecord represents a fetch attempt for a word.
type AccessRecord struct {
	AccessID   int64
	AccessedAt time.Time
	StatusCode int
	ErrorType  string
	Success    bool
	FromCache  bool
}

// InsertWord inserts a word, returning its word_id.
// If the word already exists its URL is refreshed and the existing id returned.
func (db *DB) InsertWord(word, url string) (int64, error) {
	var existingID int64
	err := db.QueryRow("SELECT word_id FROM words WHERE word = ?", word).Scan(&existingID)
	if err == nil {
		if _, err := db.Exec(`
			UPDATE words SET url = ?, updated_at = CURRENT_TIMESTAMP WHERE word_id = ?
		`, url, existingID); err != nil {
			return 0, fmt.Errorf("failed to update word: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing word: %w", err)
	}

	result, err := db.Exec("INSERT INTO words (word, url) VALUES (?, ?)", word, url)
	if err != nil {
		return 0, fmt.Errorf("failed to insert word: %w", err)
	}
	wordID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get word ID: %w", err)
	}
	return wordID, nil
}

// SetWordTitle stores the page title of a word.
func (db *DB) SetWordTitle(wordID int64, title string) error {
	_, err := db.Exec(`
		UPDATE words SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE word_id = ?
	`, NewNullString(title), wordID)
	if err != nil {
		return fmt.Errorf("failed to set word title: %w", err)
	}
	return nil
}

// GetWordID returns the word_id of word, or ErrNotFound.
func (db *DB) GetWordID(word string) (int64, error) {
	var wordID int64
	err := db.QueryRow("SELECT word_id FROM words WHERE word = ?", word).Scan(&wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("word %q: %w", word, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get word ID: %w", err)
	}
	return wordID, nil
}

const selectWordInfo = `
	SELECT w.word_id, w.word, w.url, w.title, w.updated_at,
		(SELECT COUNT(*) FROM entries e WHERE e.word_id = w.word_id)
	FROM words w
`

// GetWord returns one stored word, or ErrNotFound.
func (db *DB) GetWord(word string) (*WordInfo, error) {
	var info WordInfo
	err := db.QueryRow(selectWordInfo+" WHERE w.word = ?", word).
		Scan(&info.WordID, &info.Word, &info.URL, &info.Title, &info.UpdatedAt, &info.EntryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %q: %w", word, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &info, nil
}

// ListWords returns every stored word in insertion order.
func (db *DB) ListWords() ([]WordInfo, error) {
	rows, err := db.Query(selectWordInfo + " ORDER BY w.word_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer rows.Close()

	var words []WordInfo
	for rows.Next() {
		var info WordInfo
		if err := rows.Scan(&info.WordID, &info.Word, &info.URL, &info.Title, &info.UpdatedAt, &info.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, info)
	}
	return words, rows.Err()
}

// RecordAccess records a fetch attempt in word_accesses.
func (db *DB) RecordAccess(wordID int64, statusCode int, errorType string, success, fromCache bool) error {
	_, err := db.Exec(`
		INSERT INTO word_accesses (word_id, status_code, error_type, success, from_cache)
		VALUES (?, ?, ?, ?, ?)
	`, wordID, statusCode, errorType, success, fromCache)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	return nil
}

// GetLastAccess returns the most recent access record for a word, or nil.
func (db *DB) GetLastAccess(wordID int64) (*AccessRecord, error) {
	var record AccessRecord
	var errorType sql.NullString
	err := db.QueryRow(`
		SELECT access_id, accessed_at, status_code, error_type, success, from_cache
		FROM word_accesses
		WHERE word_id = ?
		ORDER BY access_id DESC
		LIMIT 1
	`, wordID).Scan(&record.AccessID, &record.AccessedAt, &record.StatusCode, &errorType, &record.Success, &record.FromCache)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last access: %w", err)
	}
	record.ErrorType = errorType.String
	return &record, nil
}

// NewNullString creates a sql.NullString from a string value.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
