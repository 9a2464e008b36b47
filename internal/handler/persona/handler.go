package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/pkg/utils"
)

// Handler serves the persona registry.
type Handler struct {
	personas persona.Store
}

// New creates the persona handler.
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes registers the persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
