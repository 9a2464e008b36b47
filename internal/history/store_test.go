package history

import (
	"reflect"
	"testing"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
)

func sampleTurns() []dialogue.Turn {
	return []dialogue.Turn{
		dialogue.StudentTurn(dialogue.OpeningProbe),
		dialogue.TutorTurn("Welcome. What did you make of the article?"),
	}
}

func runStoreContract(t *testing.T, store Store) {
	t.Helper()

	// Absent transcript loads as empty.
	turns, err := store.Load("user_ana")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty transcript, got %d turns", len(turns))
	}

	if err := store.Save("user_ana", sampleTurns()); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	loaded, err := store.Load("user_ana")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !reflect.DeepEqual(loaded, sampleTurns()) {
		t.Fatalf("round trip mismatch: %#v", loaded)
	}

	// Save is a whole-value overwrite.
	if err := store.Save("user_ana", sampleTurns()[:1]); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	loaded, _ = store.Load("user_ana")
	if len(loaded) != 1 {
		t.Fatalf("expected overwrite to 1 turn, got %d", len(loaded))
	}

	if err := store.Delete("user_ana"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	loaded, _ = store.Load("user_ana")
	if len(loaded) != 0 {
		t.Fatalf("expected empty transcript after delete, got %d", len(loaded))
	}

	// Current selection round trip.
	if _, ok, _ := store.LoadCurrent(); ok {
		t.Fatal("expected no current selection")
	}
	sel := Selection{
		Identity:  identity.FromName("Ana"),
		PersonaID: "ai_tutor",
		ArticleID: "rational-analysis",
	}
	if err := store.SaveCurrent(sel); err != nil {
		t.Fatalf("SaveCurrent err: %v", err)
	}
	got, ok, err := store.LoadCurrent()
	if err != nil || !ok {
		t.Fatalf("LoadCurrent err=%v ok=%v", err, ok)
	}
	if got != sel {
		t.Fatalf("selection mismatch: %#v", got)
	}
	if err := store.ClearCurrent(); err != nil {
		t.Fatalf("ClearCurrent err: %v", err)
	}
	if _, ok, _ := store.LoadCurrent(); ok {
		t.Fatal("expected selection cleared")
	}
}

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreCorruptValueLoadsEmpty(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save("user_ana", sampleTurns()); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	store.Corrupt("user_ana")

	turns, err := store.Load("user_ana")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected corrupt value to load as empty, got %d turns", len(turns))
	}
}
