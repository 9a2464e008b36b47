package dialogue

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elenchus/socratic-tutor/backend/internal/export"
	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/session"
	"github.com/elenchus/socratic-tutor/backend/internal/service/summary"
	"github.com/elenchus/socratic-tutor/backend/pkg/utils"
)

// Handler exposes the dialogue surface: session start, streaming exchanges,
// snapshot, summary, and transcript export.
type Handler struct {
	manager  *session.Manager
	store    history.Store
	personas persona.Store
	articles article.Store
	exporter *export.Exporter
}

// New creates the dialogue handler.
func New(manager *session.Manager, store history.Store, personas persona.Store, articles article.Store, exporter *export.Exporter) *Handler {
	return &Handler{
		manager:  manager,
		store:    store,
		personas: personas,
		articles: articles,
		exporter: exporter,
	}
}

// RegisterRoutes registers the dialogue routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dialogue", h.handleSnapshot)
	r.Get("/dialogue/start", h.handleStart)
	r.Get("/dialogue/stream", h.handleStream)
	r.Get("/dialogue/summary", h.handleSummary)
	r.Get("/dialogue/export", h.handleExport)
	r.Get("/dialogue/ws", h.handleWebSocket)
}

// Event is one streaming frame pushed to the UI.
type Event struct {
	Event    string `json:"event"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
	Finished bool   `json:"finished,omitempty"`
}

// current resolves the logged-in identity's orchestrator, recreating the
// instance (and resuming from the durable transcript) after a restart.
func (h *Handler) current() (*session.Orchestrator, history.Selection, error) {
	sel, ok, err := h.store.LoadCurrent()
	if err != nil {
		return nil, history.Selection{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, history.Selection{}, fmt.Errorf("not logged in")
	}
	orch, err := h.manager.Open(sel)
	if err != nil {
		return nil, history.Selection{}, err
	}
	return orch, sel, nil
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	orch, _, err := h.current()
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, orch.Snapshot())
}

// handleStart runs Start over SSE: a fresh dialogue streams the opening
// reply chunk by chunk; a resumed one replays the stored transcript in the
// final snapshot event without any model traffic.
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	orch, _, err := h.current()
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	utils.SetupSSEHeaders(w)

	utils.SendSSEChunk(w, flusher, Event{Event: "start"})

	startErr := orch.Start(r.Context(), func(chunk string) {
		utils.SendSSEChunk(w, flusher, Event{Event: "delta", Content: chunk})
	})
	if startErr != nil {
		log.Printf("[dialogue] start failed: %v", startErr)
		utils.SendSSEChunk(w, flusher, Event{Event: "error", Error: startErr.Error()})
	}

	utils.SendSSEChunk(w, flusher, Event{Event: "snapshot"})
	utils.SendSSEChunk(w, flusher, orch.Snapshot())
	utils.SendSSEChunk(w, flusher, Event{Event: "end", Finished: true})
}

// handleStream runs one exchange over SSE.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	orch, _, err := h.current()
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	utils.SetupSSEHeaders(w)

	utils.SendSSEChunk(w, flusher, Event{Event: "start"})

	submitErr := orch.Submit(r.Context(), message, func(chunk string) {
		utils.SendSSEChunk(w, flusher, Event{Event: "delta", Content: chunk})
	})
	if submitErr != nil {
		utils.SendSSEChunk(w, flusher, Event{Event: "error", Error: submitErr.Error()})
	} else {
		snapshot := orch.Snapshot()
		if n := len(snapshot.Turns); n > 0 {
			utils.SendSSEChunk(w, flusher, Event{Event: "message", Content: snapshot.Turns[n-1].Text})
		}
	}

	utils.SendSSEChunk(w, flusher, Event{Event: "end", Finished: true})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	orch, _, err := h.current()
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	digest := orch.Summary()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"summary": digest,
		"bullets": summary.ParseBullets(digest),
	})
}

// handleExport serves the portable transcript document built from the
// durable store, so the download is only as fresh as the last persisted
// exchange.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	orch, sel, err := h.current()
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	p, ok := h.personas.FindByID(sel.PersonaID)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "persona not found")
		return
	}
	a, ok := h.articles.FindByID(sel.ArticleID)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "article not found")
		return
	}

	doc, err := h.exporter.Export(sel.Identity, a, p, orch.Summary())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="transcript.txt"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc.Text()))
	case "html":
		page, err := doc.HTML()
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="transcript.html"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	default:
		utils.RespondError(w, http.StatusBadRequest, "unsupported format")
	}
}
