package db

import (
	"errors"
	"testing"
)

func TestInsertArtifact_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	wordID, _ := db.InsertWord("cad", "u")

	id1, err := db.InsertArtifact(wordID, ArtifactHTMLRaw, "hash1", "words/1/raw.html", 100)
	if err != nil {
		t.Fatalf("InsertArtifact() error = %v", err)
	}
	id2, err := db.InsertArtifact(wordID, ArtifactHTMLRaw, "hash2", "words/1/raw.html", 200)
	if err != nil {
		t.Fatalf("InsertArtifact() update error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert changed artifact id: %d -> %d", id1, id2)
	}

	a, err := db.GetArtifact(wordID, ArtifactHTMLRaw)
	if err != nil {
		t.Fatalf("GetArtifact() error = %v", err)
	}
	if a.ContentHash != "hash2" || a.SizeBytes != 200 {
		t.Errorf("GetArtifact() = %+v, want updated hash and size", a)
	}

	if _, err := db.InsertArtifact(wordID, ArtifactYAMLParsed, "hash3", "words/1/parsed.yaml", 50); err != nil {
		t.Fatalf("InsertArtifact() error = %v", err)
	}
	list, err := db.ListArtifacts(wordID)
	if err != nil {
		t.Fatalf("ListArtifacts() error = %v", err)
	}
	if len(list) != 2 || list[0].Kind != ArtifactHTMLRaw {
		t.Errorf("ListArtifacts() = %+v", list)
	}
}

func TestGetArtifact_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetArtifact(1, ArtifactHTMLRaw); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetArtifact() error = %v, want ErrNotFound", err)
	}
}
