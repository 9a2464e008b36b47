package ai

import (
	"context"

	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
)

// Disabled returns a Gateway whose every operation fails with
// ErrConfiguration. Used when credentials are absent so the rest of the
// system still constructs and each caller hits its defined fallback path.
func Disabled() Gateway {
	return disabledGateway{}
}

type disabledGateway struct{}

func (disabledGateway) CreateSession(context.Context, []dialogue.Turn, string) (Session, error) {
	return nil, ErrConfiguration
}

func (disabledGateway) GenerateOnce(context.Context, string) (string, error) {
	return "", ErrConfiguration
}
