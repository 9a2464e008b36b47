// Package session owns the conversation-session orchestration engine: the
// state machine that starts or resumes a dialogue, drives each streaming
// exchange to completion, and keeps the authoritative transcript for the
// active identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/internal/service/summary"
)

// State names the orchestrator's position in the exchange lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateOpening       State = "opening"
	StateReady         State = "ready"
	StateAwaitingReply State = "awaiting_reply"
)

// ApologyText replaces a tutor turn when an exchange fails. It is shown on
// screen but never persisted.
const ApologyText = "I seem to have encountered an error. Please try again."

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNotReady     = errors.New("orchestrator is not ready for a submission")
)

// ChunkSink receives each streamed fragment as it arrives, letting the
// transport push partial output to the UI. May be nil.
type ChunkSink func(chunk string)

// Snapshot is the read-only view the UI renders from.
type Snapshot struct {
	State     State           `json:"state"`
	Turns     []dialogue.Turn `json:"turns"`
	Summary   string          `json:"summary"`
	LastError string          `json:"lastError,omitempty"`
}

// Orchestrator drives the dialogue for one identity. One instance exists per
// active identity; exchanges run strictly sequentially, so the mutex only
// guards snapshot reads against the single in-flight exchange.
type Orchestrator struct {
	identity   identity.Identity
	persona    persona.Persona
	article    article.Article
	gateway    ai.Gateway
	store      history.Store
	summarizer *summary.Summarizer
	timeout    time.Duration

	mu      sync.Mutex
	state   State
	turns   []dialogue.Turn // in-memory transcript, including apology turns
	pending []dialogue.Turn // sealed turns awaiting their first successful save
	session ai.Session
	summary string
	lastErr string
}

// New constructs an orchestrator in the uninitialized state.
func New(id identity.Identity, p persona.Persona, a article.Article, gw ai.Gateway, store history.Store, summarizer *summary.Summarizer, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		identity:   id,
		persona:    p,
		article:    a,
		gateway:    gw,
		store:      store,
		summarizer: summarizer,
		timeout:    timeout,
		state:      StateUninitialized,
	}
}

// Start establishes or resumes the dialogue. An empty (or malformed, which
// loads as empty) stored transcript triggers the opening flow: a hidden
// probe message is streamed to the model, the reply is sealed, and
// [probe, reply] is persisted while only the reply is exposed. A non-empty
// transcript is resumed by rebuilding the session handle locally; no model
// call is made. Calling Start on an already-started orchestrator is a no-op.
func (o *Orchestrator) Start(ctx context.Context, sink ChunkSink) error {
	o.mu.Lock()
	if o.state != StateUninitialized {
		o.mu.Unlock()
		return nil
	}
	o.state = StateOpening
	o.mu.Unlock()

	instruction := o.persona.Instruction(o.article.FullText)

	stored, err := o.store.Load(o.identity.ID)
	if err != nil {
		// Contract says Load degrades instead of failing, but be safe.
		log.Printf("[session] load failed for %s, starting fresh: %v", o.identity.ID, err)
		stored = nil
	}

	if len(stored) > 0 {
		sess, err := o.gateway.CreateSession(ctx, stored, instruction)
		o.mu.Lock()
		o.turns = append([]dialogue.Turn(nil), stored...)
		o.session = sess
		o.state = StateReady
		if err != nil {
			o.lastErr = err.Error()
		}
		o.mu.Unlock()
		return err
	}

	return o.open(ctx, instruction, sink)
}

// open runs the fresh-dialogue flow: new session, hidden probe, streamed
// opening reply.
func (o *Orchestrator) open(ctx context.Context, instruction string, sink ChunkSink) error {
	sess, err := o.gateway.CreateSession(ctx, nil, instruction)
	if err != nil {
		o.failOpening(err)
		return err
	}

	probe := dialogue.StudentTurn(dialogue.OpeningProbe)
	o.mu.Lock()
	o.session = sess
	o.turns = []dialogue.Turn{probe, dialogue.TutorTurn("")}
	o.mu.Unlock()

	reply, err := o.streamExchange(ctx, sess, dialogue.OpeningProbe, sink)
	if err != nil {
		o.failOpening(err)
		return err
	}

	tutorTurn := dialogue.TutorTurn(reply)
	o.persistExchange(probe, tutorTurn)

	o.mu.Lock()
	o.turns[len(o.turns)-1] = tutorTurn
	o.state = StateReady
	o.lastErr = ""
	o.mu.Unlock()
	return nil
}

// Submit runs one student exchange. Empty or whitespace-only messages and
// submissions outside the ready state are rejected as no-ops. The student
// turn is appended optimistically before any model traffic; the tutor reply
// streams into a placeholder turn that is sealed on completion.
func (o *Orchestrator) Submit(ctx context.Context, text string, sink ChunkSink) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	o.mu.Lock()
	if o.state != StateReady {
		o.mu.Unlock()
		return fmt.Errorf("%w: state=%s", ErrNotReady, o.state)
	}
	studentTurn := dialogue.StudentTurn(text)
	o.turns = append(o.turns, studentTurn, dialogue.TutorTurn(""))
	o.state = StateAwaitingReply
	sess := o.session
	o.mu.Unlock()

	if sess == nil {
		// Recoverable: the handle was lost (failed opening). Rebuild it from
		// the durable transcript before sending.
		stored, _ := o.store.Load(o.identity.ID)
		rebuilt, err := o.gateway.CreateSession(ctx, stored, o.persona.Instruction(o.article.FullText))
		if err != nil {
			o.failSubmit(studentTurn, err)
			return err
		}
		o.mu.Lock()
		o.session = rebuilt
		o.mu.Unlock()
		sess = rebuilt
	}

	reply, err := o.streamExchange(ctx, sess, text, sink)
	if err != nil {
		o.failSubmit(studentTurn, err)
		return err
	}

	tutorTurn := dialogue.TutorTurn(reply)
	o.persistExchange(studentTurn, tutorTurn)

	o.mu.Lock()
	o.turns[len(o.turns)-1] = tutorTurn
	o.state = StateReady
	o.lastErr = ""
	o.mu.Unlock()
	return nil
}

// Snapshot returns the UI-visible view: state, filtered transcript, summary.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		State:     o.state,
		Turns:     dialogue.Visible(o.turns),
		Summary:   o.summary,
		LastError: o.lastErr,
	}
}

// Summary returns the current digest slot.
func (o *Orchestrator) Summary() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.summary
}

// Identity returns the owning identity.
func (o *Orchestrator) Identity() identity.Identity {
	return o.identity
}

// streamExchange consumes a full streaming reply, mutating the in-progress
// tutor turn per chunk and forwarding each fragment to the sink. The
// exchange runs under the configured timeout so a hung stream degrades to
// the error path instead of pinning the machine in awaiting_reply.
func (o *Orchestrator) streamExchange(ctx context.Context, sess ai.Session, text string, sink ChunkSink) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	stream, err := sess.SendStream(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to start reply stream: %w", err)
	}
	defer stream.Close()

	var acc strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reply stream failed: %w", err)
		}
		acc.WriteString(chunk)

		o.mu.Lock()
		o.turns[len(o.turns)-1].Text = acc.String()
		o.mu.Unlock()

		if sink != nil {
			sink(chunk)
		}
	}
	return acc.String(), nil
}

// persistExchange appends the sealed exchange, plus any turns left pending
// by earlier failed saves, to the latest stored transcript. Reading back the
// stored value instead of trusting the in-memory snapshot tolerates
// concurrent tabs best-effort. A failed save is silently retried on the next
// exchange by rolling the turns into pending. Summary recomputation is fired
// afterwards and never blocks the exchange.
func (o *Orchestrator) persistExchange(turns ...dialogue.Turn) {
	stored, _ := o.store.Load(o.identity.ID)

	o.mu.Lock()
	toSave := append(append([]dialogue.Turn(nil), o.pending...), turns...)
	o.mu.Unlock()

	merged := append(append([]dialogue.Turn(nil), stored...), toSave...)
	if err := o.store.Save(o.identity.ID, merged); err != nil {
		log.Printf("[session] save failed for %s, will retry next exchange: %v", o.identity.ID, err)
		o.mu.Lock()
		o.pending = toSave
		o.mu.Unlock()
	} else {
		o.mu.Lock()
		o.pending = nil
		o.mu.Unlock()
	}

	o.recomputeSummary(merged)
}

// recomputeSummary refreshes the digest slot in the background.
func (o *Orchestrator) recomputeSummary(turns []dialogue.Turn) {
	if o.summarizer == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[session] summary recompute panicked: %v", r)
			}
		}()

		ctx := context.Background()
		if o.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, o.timeout)
			defer cancel()
		}

		digest, err := o.summarizer.Summarize(ctx, turns)
		if err != nil {
			return
		}
		o.mu.Lock()
		o.summary = digest
		o.mu.Unlock()
	}()
}

// failOpening recovers from a failed opening flow: the placeholder reply
// becomes the apology turn, the hidden probe stays pending so continuity is
// preserved by the next successful save, and the machine lands in ready so
// the student can retry by submitting.
func (o *Orchestrator) failOpening(cause error) {
	log.Printf("[session] opening failed for %s: %v", o.identity.ID, cause)
	o.mu.Lock()
	if n := len(o.turns); n > 0 && o.turns[n-1].Speaker == dialogue.SpeakerTutor {
		o.turns[n-1] = dialogue.TutorTurn(ApologyText)
		o.pending = append(o.pending, dialogue.StudentTurn(dialogue.OpeningProbe))
	} else {
		o.turns = append(o.turns, dialogue.TutorTurn(ApologyText))
	}
	o.state = StateReady
	o.lastErr = cause.Error()
	o.mu.Unlock()
}

// failSubmit recovers from a failed exchange: the placeholder reply becomes
// the apology turn and the student's turn is retained as persisted-pending,
// re-sent as part of the next successful save.
func (o *Orchestrator) failSubmit(studentTurn dialogue.Turn, cause error) {
	log.Printf("[session] exchange failed for %s: %v", o.identity.ID, cause)
	o.mu.Lock()
	o.turns[len(o.turns)-1] = dialogue.TutorTurn(ApologyText)
	o.pending = append(o.pending, studentTurn)
	o.state = StateReady
	o.lastErr = cause.Error()
	o.mu.Unlock()
}
