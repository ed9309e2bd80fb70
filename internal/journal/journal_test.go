package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"refscribe/internal/journal"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "/data/models.json", 5)
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected run id")
	}

	if err := store.RecordOutcome(ctx, runID, "alpha", "models/a.wav", journal.OutcomeUpdated, ""); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	if err := store.RecordOutcome(ctx, runID, "beta", "models/b.wav", journal.OutcomeSkipped, "audio file not found"); err != nil {
		t.Fatalf("RecordOutcome failed: %v", err)
	}
	if err := store.FinishRun(ctx, runID, 1, 1, false); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.Pending != 5 || run.Updated != 1 || run.Skipped != 1 {
		t.Fatalf("unexpected run record: %+v", run)
	}
	if run.FinishedAt == nil {
		t.Fatal("expected finished timestamp")
	}
	if run.Interrupted {
		t.Fatal("run should not be marked interrupted")
	}

	outcomes, err := store.Outcomes(ctx, runID)
	if err != nil {
		t.Fatalf("Outcomes failed: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].EntryName != "alpha" || outcomes[0].Outcome != journal.OutcomeUpdated {
		t.Fatalf("unexpected first outcome: %+v", outcomes[0])
	}
	if outcomes[1].Detail != "audio file not found" {
		t.Fatalf("expected skip detail, got %+v", outcomes[1])
	}
}

func TestFinishRunUnknownID(t *testing.T) {
	store := openStore(t)
	if err := store.FinishRun(context.Background(), "no-such-run", 0, 0, false); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestInterruptedFlagRoundTrips(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	runID, err := store.BeginRun(ctx, "/data/models.json", 2)
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := store.FinishRun(ctx, runID, 1, 0, true); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Interrupted {
		t.Fatalf("expected interrupted run, got %+v", runs)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.BeginRun(context.Background(), "/data/models.json", 1); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run after reopen, got %d", len(runs))
	}
}
