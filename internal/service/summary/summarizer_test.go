package summary

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
)

type scriptedGateway struct {
	result string
	err    error
	calls  int
}

func (g *scriptedGateway) CreateSession(context.Context, []dialogue.Turn, string) (ai.Session, error) {
	return nil, errors.New("not implemented")
}

func (g *scriptedGateway) GenerateOnce(context.Context, string) (string, error) {
	g.calls++
	return g.result, g.err
}

func TestSummarizeShortTranscriptSkipsModel(t *testing.T) {
	gw := &scriptedGateway{result: "- should not be used"}
	s := New(gw)

	got, err := s.Summarize(context.Background(), []dialogue.Turn{dialogue.StudentTurn("hi")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no model call, got %d", gw.calls)
	}
}

func TestSummarizeTrimsResult(t *testing.T) {
	gw := &scriptedGateway{result: "\n- point one\n- point two\n"}
	s := New(gw)

	turns := []dialogue.Turn{
		dialogue.StudentTurn("what is rationality?"),
		dialogue.TutorTurn("what do you think it is?"),
	}
	got, err := s.Summarize(context.Background(), turns)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "- point one\n- point two" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if gw.calls != 1 {
		t.Fatalf("expected one model call, got %d", gw.calls)
	}
}

func TestSummarizeErrorDegradesToEmpty(t *testing.T) {
	gw := &scriptedGateway{err: errors.New("model down")}
	s := New(gw)

	turns := []dialogue.Turn{
		dialogue.StudentTurn("a"),
		dialogue.TutorTurn("b"),
	}
	got, err := s.Summarize(context.Background(), turns)
	if err == nil {
		t.Fatal("expected an error")
	}
	if got != "" {
		t.Fatalf("expected empty summary on failure, got %q", got)
	}
}

func TestFormatDialogue(t *testing.T) {
	turns := []dialogue.Turn{
		dialogue.StudentTurn("Hello"),
		dialogue.TutorTurn(""),
		dialogue.TutorTurn("What brings you here?"),
	}
	got := FormatDialogue(turns)
	want := "Student: Hello\nTutor: What brings you here?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseBullets(t *testing.T) {
	got := ParseBullets("- first\n\n- second\nunmarked line\n")
	want := []string{"first", "second", "unmarked line"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if bullets := ParseBullets("  \n"); bullets != nil {
		t.Fatalf("expected nil for blank digest, got %v", bullets)
	}
}
