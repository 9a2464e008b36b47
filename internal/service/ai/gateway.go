// Package ai is the model gateway: the only place that talks to the
// language model. The orchestrator, summarizer, and discussion-point
// extraction all go through the Gateway contract so tests can substitute a
// scripted model.
package ai

import (
	"context"
	"errors"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
)

var (
	// ErrConfiguration means required model credentials are absent. Fatal,
	// surfaced once at startup; no model call can succeed without them.
	ErrConfiguration = errors.New("model credentials not configured")

	// ErrMalformedResponse means a structured response failed validation.
	// Callers must substitute a deterministic fallback rather than
	// propagate it to the UI.
	ErrMalformedResponse = errors.New("malformed model response")
)

// Gateway exposes the three operations the core consumes.
type Gateway interface {
	// CreateSession builds a stateful conversational handle seeded with the
	// prior transcript and system instruction. No model call is made; the
	// handle exists only in memory and is rebuilt from the stored
	// transcript on every page load.
	CreateSession(ctx context.Context, prior []dialogue.Turn, systemInstruction string) (Session, error)

	// GenerateOnce performs a one-shot generation outside any session.
	GenerateOnce(ctx context.Context, prompt string) (string, error)
}

// Session is an opaque per-identity conversational context. It is owned
// exclusively by one orchestrator and never shared.
type Session interface {
	// SendStream sends one student message and returns the lazy, finite,
	// non-restartable sequence of reply fragments. Once the stream is fully
	// consumed the exchange is folded into the handle's history.
	SendStream(ctx context.Context, text string) (Stream, error)
}

// Stream yields reply fragments. Recv returns io.EOF after the final
// fragment; Close releases the underlying reader.
type Stream interface {
	Recv() (string, error)
	Close()
}
