package history

import (
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("OpenSQLite err: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreContract(t *testing.T) {
	runStoreContract(t, openTestStore(t))
}

func TestSQLiteStoreCorruptValueLoadsEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.db.Exec(
		`INSERT INTO store (key, value, updated_at) VALUES (?, ?, 0)`,
		transcriptKey("user_ana"), "{not json",
	)
	if err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	turns, err := store.Load("user_ana")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected corrupt value to load as empty, got %d turns", len(turns))
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite err: %v", err)
	}
	if err := store.Save("user_ana", sampleTurns()); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	turns, err := reopened.Load("user_ana")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns after reopen, got %d", len(turns))
	}
}
