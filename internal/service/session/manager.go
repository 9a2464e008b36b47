package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/internal/service/summary"
)

var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrNoActiveSession = errors.New("no active session for identity")
)

// Manager keeps one orchestrator per active identity and owns the logout
// cascade. Orchestrator instances hold the live session handle and are
// dropped (never persisted) when the identity logs out.
type Manager struct {
	gateway    ai.Gateway
	store      history.Store
	summarizer *summary.Summarizer
	personas   persona.Store
	articles   article.Store
	timeout    time.Duration

	mu     sync.RWMutex
	active map[string]*Orchestrator
}

// NewManager wires the manager with its collaborators.
func NewManager(gw ai.Gateway, store history.Store, summarizer *summary.Summarizer, personas persona.Store, articles article.Store, timeout time.Duration) *Manager {
	return &Manager{
		gateway:    gw,
		store:      store,
		summarizer: summarizer,
		personas:   personas,
		articles:   articles,
		timeout:    timeout,
		active:     make(map[string]*Orchestrator),
	}
}

// Open resolves the selection and returns the identity's orchestrator,
// creating it when absent. Reopening an existing identity returns the same
// instance so a reconnecting tab resumes the live state.
func (m *Manager) Open(sel history.Selection) (*Orchestrator, error) {
	if !sel.Identity.Valid() {
		return nil, fmt.Errorf("invalid identity")
	}
	p, ok := m.personas.FindByID(sel.PersonaID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPersonaNotFound, sel.PersonaID)
	}
	a, ok := m.articles.FindByID(sel.ArticleID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, sel.ArticleID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if orch, ok := m.active[sel.Identity.ID]; ok {
		return orch, nil
	}
	orch := New(sel.Identity, p, a, m.gateway, m.store, m.summarizer, m.timeout)
	m.active[sel.Identity.ID] = orch
	return orch, nil
}

// Get returns the live orchestrator for an identity, if any.
func (m *Manager) Get(identityID string) (*Orchestrator, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orch, ok := m.active[identityID]
	return orch, ok
}

// Close is the logout cascade: the orchestrator instance is dropped and the
// identity's stored transcript deleted, so the next login starts a fresh
// opening flow.
func (m *Manager) Close(identityID string) error {
	m.mu.Lock()
	delete(m.active, identityID)
	m.mu.Unlock()
	return m.store.Delete(identityID)
}
