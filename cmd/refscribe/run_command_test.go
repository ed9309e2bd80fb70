package main

import (
	"context"
	"os"
	"testing"

	"refscribe/internal/journal"
	"refscribe/internal/testsupport"
)

func TestRunCommandWithEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Pending: 0")
}

func TestRunCommandFailsWithoutCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Paths.CatalogPath); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}

	if _, _, err := runCLI(t, []string{"run"}, env.configPath); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestStatusCommandReportsCatalogProgress(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteCatalog(t, env.cfg.Paths.CatalogPath, `{
		"models": [
			{"models": [
				{"name": "alpha", "file": "models/a.wav", "ref_text": "done"},
				{"name": "beta", "file": "models/b.wav"}
			]}
		]
	}`)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Environment")
	requireContains(t, out, "entries")
	requireContains(t, out, "2")
	requireContains(t, out, "pending")
}

func TestStatusCommandListsJournaledRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	store, err := journal.Open(env.cfg.JournalPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	runID, err := store.BeginRun(context.Background(), env.cfg.Paths.CatalogPath, 3)
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := store.FinishRun(context.Background(), runID, 2, 1, false); err != nil {
		t.Fatalf("finish run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Recent runs")
	requireContains(t, out, "Updated")
	requireContains(t, out, "completed")
	requireContains(t, out, shortRunID(runID))
}
