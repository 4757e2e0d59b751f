package history_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"romshelf/internal/history"
	"romshelf/internal/testsupport"
)

func sampleRun(started time.Time) history.Run {
	return history.Run{
		ID:          uuid.NewString(),
		Root:        "/roms/nes",
		SystemName:  "Nintendo Entertainment System",
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
		RenameFiles: true,
		Matched:     3,
		Mismatched:  1,
		Renamed:     1,
	}
}

func TestRecordAndGetRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	run := sampleRun(time.Now())
	results := []history.FileResult{
		{RunID: run.ID, Path: "/roms/nes/mario.nes", Outcome: "mismatched", Action: "renamed", Detail: "Super Mario Bros. (USA).nes"},
		{RunID: run.ID, Path: "/roms/nes/Contra (USA).nes", Outcome: "matched", Action: "none"},
	}
	if err := store.RecordRun(ctx, run, results); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	fetched, fetchedResults, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if fetched.Root != run.Root || fetched.SystemName != run.SystemName {
		t.Fatalf("unexpected run: %#v", fetched)
	}
	if !fetched.RenameFiles || fetched.RemoveInvalid {
		t.Fatalf("flags not round-tripped: %#v", fetched)
	}
	if fetched.Matched != 3 || fetched.Renamed != 1 {
		t.Fatalf("counts not round-tripped: %#v", fetched)
	}
	if len(fetchedResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(fetchedResults))
	}
	// Results come back ordered by path.
	if fetchedResults[0].Path != "/roms/nes/Contra (USA).nes" {
		t.Fatalf("unexpected result order: %#v", fetchedResults)
	}
}

func TestGetRunUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, _, err := store.GetRun(context.Background(), uuid.NewString()); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Minute))
		run.Root = fmt.Sprintf("/roms/run-%d", i)
		ids = append(ids, run.ID)
		if err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected order: %#v", runs)
	}
}

func TestPruneKeepsNewestRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := sampleRun(base.Add(time.Duration(i) * time.Minute))
		results := []history.FileResult{{RunID: run.ID, Path: "/roms/x.nes", Outcome: "matched", Action: "none"}}
		if err := store.RecordRun(ctx, run, results); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	if err := store.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs after prune, got %d", len(runs))
	}
	for _, run := range runs {
		if _, results, err := store.GetRun(ctx, run.ID); err != nil || len(results) != 1 {
			t.Fatalf("surviving run lost results: %v %d", err, len(results))
		}
	}
}
