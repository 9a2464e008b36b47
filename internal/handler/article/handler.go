package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/pkg/utils"
)

// Handler serves the article catalog and discussion-point extraction.
type Handler struct {
	articles article.Store
	gateway  ai.Gateway
}

// New creates the article handler. The gateway may be nil when the model is
// not configured; discussion points then fall back to the generic set.
func New(articles article.Store, gateway ai.Gateway) *Handler {
	return &Handler{articles: articles, gateway: gateway}
}

// RegisterRoutes registers the article routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/articles", h.handleListArticles)
	r.Get("/articles/{articleID}/discussion", h.handleDiscussionPoints)
}

func (h *Handler) handleListArticles(w http.ResponseWriter, r *http.Request) {
	items := h.articles.List()
	// Elide the full text from the listing; it is large and only the
	// orchestrator needs it.
	summaries := make([]article.Article, 0, len(items))
	for _, item := range items {
		item.FullText = ""
		summaries = append(summaries, item)
	}
	utils.RespondJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleDiscussionPoints(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")
	item, ok := h.articles.FindByID(articleID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "article not found")
		return
	}

	if h.gateway == nil {
		utils.RespondJSON(w, http.StatusOK, ai.FallbackDiscussionPoints())
		return
	}

	// The fallback value is always usable; extraction errors stay server-side.
	points, _ := ai.GenerateDiscussionPoints(r.Context(), h.gateway, item.FullText)
	utils.RespondJSON(w, http.StatusOK, points)
}
