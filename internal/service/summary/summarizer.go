// Package summary derives a rolling bullet-point digest of the dialogue.
// The digest is display text only; the transcript stays authoritative.
package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
)

// Summarizer recomputes the digest from the full turn sequence after each
// completed exchange. It never blocks the orchestrator: callers run it
// asynchronously and any failure degrades to an empty summary.
type Summarizer struct {
	gateway ai.Gateway
}

// New returns a summarizer backed by the given gateway.
func New(gateway ai.Gateway) *Summarizer {
	return &Summarizer{gateway: gateway}
}

// Summarize produces the hyphen-bulleted digest. Fewer than two turns means
// there is nothing worth digesting yet and the result is the empty string
// with no model call.
func (s *Summarizer) Summarize(ctx context.Context, turns []dialogue.Turn) (string, error) {
	if len(turns) < 2 {
		return "", nil
	}

	prompt := fmt.Sprintf(`Summarize the key points of the following Socratic dialogue as a bullet list of 3-5 items. Each item must be a single line starting with "- ". Output only the bullet list.

DIALOGUE:
%s`, FormatDialogue(turns))

	result, err := s.gateway.GenerateOnce(ctx, prompt)
	if err != nil {
		log.Printf("[summary] generation failed, keeping empty summary: %v", err)
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// FormatDialogue renders turns as alternating "Student:"/"Tutor:" lines.
// Empty-text turns are skipped.
func FormatDialogue(turns []dialogue.Turn) string {
	var builder strings.Builder
	for _, turn := range turns {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		label := "Student"
		if turn.Speaker == dialogue.SpeakerTutor {
			label = "Tutor"
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(label)
		builder.WriteString(": ")
		builder.WriteString(text)
	}
	return builder.String()
}

// ParseBullets splits a digest into rendered lines, stripping the leading
// hyphen-space marker per line.
func ParseBullets(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimPrefix(line, "- ")
		bullets = append(bullets, line)
	}
	return bullets
}
