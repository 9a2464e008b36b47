// Package history persists transcripts and the active login selection in a
// key-value store scoped by identity id. The store is shared, unsynchronized
// state across tabs and reloads: last writer wins, and a corrupt or missing
// value always degrades to "no history" rather than an error that would
// break session start.
package history

import (
	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
)

// Keys mirror the persisted-state contract: the login selection lives under
// currentIdentity, each transcript under transcript:<identityID>.
const (
	currentIdentityKey = "currentIdentity"
	transcriptPrefix   = "transcript:"
)

// Selection is what login records: who the student is and which persona and
// article they picked.
type Selection struct {
	Identity  identity.Identity `json:"identity"`
	PersonaID string            `json:"personaId"`
	ArticleID string            `json:"articleId"`
}

// Store is the History Store contract. Load returns an empty transcript for
// absent or corrupt values; Save is a whole-value overwrite; Delete is the
// logout cascade for one identity.
type Store interface {
	Load(identityID string) ([]dialogue.Turn, error)
	Save(identityID string, turns []dialogue.Turn) error
	Delete(identityID string) error

	LoadCurrent() (Selection, bool, error)
	SaveCurrent(sel Selection) error
	ClearCurrent() error
}

func transcriptKey(identityID string) string {
	return transcriptPrefix + identityID
}
