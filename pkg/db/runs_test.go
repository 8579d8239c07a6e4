package db

import (
	"errors"
	"testing"
)

func TestCreateRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := db.CreateRun(3, "senses", "lxs-results")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if run.RunID == 0 || len(run.RunKey) != 36 {
		t.Errorf("CreateRun() = %+v, want id and uuid key", run)
	}
	if run.WordCount != 3 || run.ParseMode != "senses" {
		t.Errorf("CreateRun() = %+v", run)
	}

	other, err := db.CreateRun(1, "all", "out")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	if other.RunKey == run.RunKey {
		t.Error("run keys must be unique")
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != other.RunID {
		t.Errorf("ListRuns() = %+v, want newest first", runs)
	}

	runs, err = db.ListRuns(1)
	if err != nil {
		t.Fatalf("ListRuns(1) error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns(1) returned %d runs", len(runs))
	}
}

func TestRunResultsAndStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	run, err := db.CreateRun(2, "senses", "out")
	if err != nil {
		t.Fatalf("CreateRun() error = %v", err)
	}
	cad, _ := db.InsertWord("cad", "u1")
	oaf, _ := db.InsertWord("oaf", "u2")

	results := []RunResult{
		{WordID: cad, Status: StatusSuccess, StatusCode: 200, EntryCount: 2, DiscardedCount: 1},
		{WordID: oaf, Status: StatusFailed, StatusCode: 404, ErrorType: "http_error", ErrorMessage: "not found"},
	}
	for _, r := range results {
		if err := db.InsertRunResult(run.RunID, r); err != nil {
			t.Fatalf("InsertRunResult() error = %v", err)
		}
	}
	// A retry of the same word replaces its result.
	results[1].Status = StatusSuccess
	results[1].ErrorType = ""
	results[1].ErrorMessage = ""
	results[1].FromCache = true
	if err := db.InsertRunResult(run.RunID, results[1]); err != nil {
		t.Fatalf("InsertRunResult() retry error = %v", err)
	}

	got, err := db.GetRunResults(run.RunID)
	if err != nil {
		t.Fatalf("GetRunResults() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetRunResults() returned %d results, want 2", len(got))
	}
	if got[0].Word != "cad" || got[0].EntryCount != 2 || got[0].DiscardedCount != 1 {
		t.Errorf("first result = %+v", got[0])
	}
	if got[1].Status != StatusSuccess || got[1].ErrorType != "" || !got[1].FromCache {
		t.Errorf("retried result = %+v", got[1])
	}

	if err := db.UpdateRunStats(run.RunID, 2, 0, 2); err != nil {
		t.Fatalf("UpdateRunStats() error = %v", err)
	}
	updated, err := db.GetRun(run.RunID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if updated.SuccessCount != 2 || updated.FailedCount != 0 || updated.EntryCount != 2 {
		t.Errorf("GetRun() = %+v", updated)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRun(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRun() error = %v, want ErrNotFound", err)
	}
}
