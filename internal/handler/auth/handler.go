package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/session"
	"github.com/elenchus/socratic-tutor/backend/pkg/utils"
)

// Handler implements the mock login flow: an identity is derived from the
// entered name, the persona/article selection is persisted, and logout
// cascades to deleting the identity's transcript.
type Handler struct {
	manager  *session.Manager
	store    history.Store
	personas persona.Store
	articles article.Store
}

// New creates the auth handler.
func New(manager *session.Manager, store history.Store, personas persona.Store, articles article.Store) *Handler {
	return &Handler{
		manager:  manager,
		store:    store,
		personas: personas,
		articles: articles,
	}
}

// RegisterRoutes registers the auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/session", h.handleSession)
	r.Post("/auth/logout", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		PersonaID string `json:"personaId"`
		ArticleID string `json:"articleId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Name) == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, ok := h.personas.FindByID(payload.PersonaID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "persona not found")
		return
	}
	if _, ok := h.articles.FindByID(payload.ArticleID); !ok {
		utils.RespondError(w, http.StatusBadRequest, "article not found")
		return
	}

	sel := history.Selection{
		Identity:  identity.FromName(payload.Name),
		PersonaID: payload.PersonaID,
		ArticleID: payload.ArticleID,
	}

	if _, err := h.manager.Open(sel); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveCurrent(sel); err != nil {
		// Non-fatal: the in-memory session still works for this tab.
		log.Printf("[auth] failed to persist selection: %v", err)
	}

	utils.RespondJSON(w, http.StatusCreated, sel)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sel, ok, err := h.store.LoadCurrent()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "not logged in")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sel)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sel, ok, err := h.store.LoadCurrent()
	if err != nil || !ok {
		utils.RespondError(w, http.StatusNotFound, "not logged in")
		return
	}

	if err := h.manager.Close(sel.Identity.ID); err != nil {
		log.Printf("[auth] logout cascade failed for %s: %v", sel.Identity.ID, err)
	}
	if err := h.store.ClearCurrent(); err != nil {
		log.Printf("[auth] failed to clear selection: %v", err)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
