package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/elenchus/socratic-tutor/backend/internal/export"
	articleHandler "github.com/elenchus/socratic-tutor/backend/internal/handler/article"
	authHandler "github.com/elenchus/socratic-tutor/backend/internal/handler/auth"
	dialogueHandler "github.com/elenchus/socratic-tutor/backend/internal/handler/dialogue"
	personaHandler "github.com/elenchus/socratic-tutor/backend/internal/handler/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/history"
	articleModel "github.com/elenchus/socratic-tutor/backend/internal/model/article"
	personaModel "github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/internal/service/session"
)

// NewRouter wires HTTP routes to the core services.
func NewRouter(personas personaModel.Store, articles articleModel.Store, manager *session.Manager, store history.Store, gateway ai.Gateway, exporter *export.Exporter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		articleHandler.New(articles, gateway).RegisterRoutes(api)
		authHandler.New(manager, store, personas, articles).RegisterRoutes(api)
		dialogueHandler.New(manager, store, personas, articles, exporter).RegisterRoutes(api)
	})

	return r
}
