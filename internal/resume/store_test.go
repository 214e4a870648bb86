package resume

import (
	"os"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMarkDoneAndLoad(t *testing.T) {
	ctx := t.Context()
	store := openStore(t, filepath.Join(t.TempDir(), "resume.db"))

	if err := store.MarkDone(ctx, "/media/a.mkv", "run-1"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if err := store.MarkDone(ctx, "/media/b.mkv", "run-1"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	done := store.Load(ctx)
	if len(done) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(done))
	}
	if _, ok := done["/media/a.mkv"]; !ok {
		t.Fatal("missing /media/a.mkv")
	}
}

func TestMarkDoneIdempotent(t *testing.T) {
	ctx := t.Context()
	store := openStore(t, filepath.Join(t.TempDir(), "resume.db"))

	for range 3 {
		if err := store.MarkDone(ctx, "/media/a.mkv", "run-2"); err != nil {
			t.Fatalf("MarkDone: %v", err)
		}
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry, got %d", count)
	}
}

func TestClear(t *testing.T) {
	ctx := t.Context()
	store := openStore(t, filepath.Join(t.TempDir(), "resume.db"))

	if err := store.MarkDone(ctx, "/media/a.mkv", "run-1"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	cleared, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared, got %d", cleared)
	}
	if done := store.Load(ctx); len(done) != 0 {
		t.Fatalf("expected empty journal, got %d entries", len(done))
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "resume.db")

	store, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.MarkDone(ctx, "/media/a.mkv", "run-1"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openStore(t, path)
	if done := reopened.Load(ctx); len(done) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(done))
	}
}

func TestCorruptJournalStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.db")
	if err := os.WriteFile(path, []byte("this is not sqlite"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := openStore(t, path)
	if done := store.Load(t.Context()); len(done) != 0 {
		t.Fatalf("expected empty set from corrupt journal, got %d entries", len(done))
	}
}

func TestLockRejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.db")
	openStore(t, path)

	if _, err := Open(path, nil); err == nil {
		t.Fatal("expected second open to fail while locked")
	}
}
