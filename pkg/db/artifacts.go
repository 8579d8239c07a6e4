package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	ArtifactHTMLRaw    = "html_raw"
	ArtifactYAMLParsed = "yaml_parsed"
)

// ArtifactInfo represents artifact metadata.
type ArtifactInfo struct {
	ArtifactID  int64
	Kind        string
	ContentHash string
	FilePath    string
	SizeBytes   int64
	CreatedAt   time.Time
}

// InsertArtifact inserts or updates the artifact of one kind for a word.
func (db *DB) InsertArtifact(wordID int64, kind, contentHash, filePath string, sizeBytes int64) (int64, error) {
	_, err := db.Exec(`
		INSERT INTO artifacts (word_id, kind, content_hash, file_path, size_bytes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(word_id, kind) DO UPDATE SET
			content_hash = excluded.content_hash,
			file_path = excluded.file_path,
			size_bytes = excluded.size_bytes,
			created_at = CURRENT_TIMESTAMP
	`, wordID, kind, contentHash, filePath, sizeBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert artifact: %w", err)
	}

	var artifactID int64
	err = db.QueryRow("SELECT artifact_id FROM artifacts WHERE word_id = ? AND kind = ?", wordID, kind).Scan(&artifactID)
	if err != nil {
		return 0, fmt.Errorf("failed to get artifact ID: %w", err)
	}
	return artifactID, nil
}

// GetArtifact returns the artifact of one kind for a word, or ErrNotFound.
func (db *DB) GetArtifact(wordID int64, kind string) (*ArtifactInfo, error) {
	var a ArtifactInfo
	err := db.QueryRow(`
		SELECT artifact_id, kind, content_hash, file_path, size_bytes, created_at
		FROM artifacts
		WHERE word_id = ? AND kind = ?
	`, wordID, kind).Scan(&a.ArtifactID, &a.Kind, &a.ContentHash, &a.FilePath, &a.SizeBytes, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artifact %s for word %d: %w", kind, wordID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	return &a, nil
}

// ListArtifacts returns all artifacts for a word.
func (db *DB) ListArtifacts(wordID int64) ([]ArtifactInfo, error) {
	rows, err := db.Query(`
		SELECT artifact_id, kind, content_hash, file_path, size_bytes, created_at
		FROM artifacts
		WHERE word_id = ?
		ORDER BY kind
	`, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []ArtifactInfo
	for rows.Next() {
		var a ArtifactInfo
		if err := rows.Scan(&a.ArtifactID, &a.Kind, &a.ContentHash, &a.FilePath, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
