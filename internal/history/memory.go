package history

import (
	"encoding/json"
	"sync"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
)

// MemoryStore implements Store with an in-memory map. It round-trips values
// through JSON so corrupt-value behavior can be exercised the same way as in
// the durable store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Load returns the stored transcript, or an empty one for absent or corrupt
// values.
func (s *MemoryStore) Load(identityID string) ([]dialogue.Turn, error) {
	s.mu.RLock()
	raw, ok := s.values[transcriptKey(identityID)]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeTurns(raw), nil
}

// Save overwrites the stored transcript for the identity.
func (s *MemoryStore) Save(identityID string, turns []dialogue.Turn) error {
	raw, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[transcriptKey(identityID)] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes the identity's transcript.
func (s *MemoryStore) Delete(identityID string) error {
	s.mu.Lock()
	delete(s.values, transcriptKey(identityID))
	s.mu.Unlock()
	return nil
}

// LoadCurrent returns the persisted login selection, if any.
func (s *MemoryStore) LoadCurrent() (Selection, bool, error) {
	s.mu.RLock()
	raw, ok := s.values[currentIdentityKey]
	s.mu.RUnlock()
	if !ok {
		return Selection{}, false, nil
	}
	var sel Selection
	if err := json.Unmarshal(raw, &sel); err != nil || !sel.Identity.Valid() {
		return Selection{}, false, nil
	}
	return sel, true, nil
}

// SaveCurrent persists the login selection.
func (s *MemoryStore) SaveCurrent(sel Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[currentIdentityKey] = raw
	s.mu.Unlock()
	return nil
}

// ClearCurrent removes the login selection.
func (s *MemoryStore) ClearCurrent() error {
	s.mu.Lock()
	delete(s.values, currentIdentityKey)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a transcript with an unparseable value. Test helper.
func (s *MemoryStore) Corrupt(identityID string) {
	s.mu.Lock()
	s.values[transcriptKey(identityID)] = []byte("{not json")
	s.mu.Unlock()
}

// decodeTurns tolerates malformed stored history: it is treated identically
// to empty so a fresh opening flow can begin.
func decodeTurns(raw []byte) []dialogue.Turn {
	var turns []dialogue.Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil
	}
	return turns
}
