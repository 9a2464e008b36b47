package dialogue

import "testing"

func TestVisibleFiltersProbeAndEmptyTurns(t *testing.T) {
	turns := []Turn{
		StudentTurn(OpeningProbe),
		TutorTurn("What struck you most about the article?"),
		StudentTurn(""),
		TutorTurn("   "),
		StudentTurn("The memory model seems circular."),
	}

	visible := Visible(turns)
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible turns, got %d", len(visible))
	}
	if visible[0].Speaker != SpeakerTutor {
		t.Fatalf("unexpected first visible speaker: %s", visible[0].Speaker)
	}
	if visible[1].Text != "The memory model seems circular." {
		t.Fatalf("unexpected second visible turn: %q", visible[1].Text)
	}
}

func TestVisibleKeepsOrdinaryTurns(t *testing.T) {
	turns := []Turn{
		StudentTurn("hello"),
		TutorTurn("why hello?"),
	}
	visible := Visible(turns)
	if len(visible) != 2 {
		t.Fatalf("expected all turns visible, got %d", len(visible))
	}
}
