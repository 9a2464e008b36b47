package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/elenchus/socratic-tutor/backend/internal/config"
	"github.com/elenchus/socratic-tutor/backend/internal/export"
	"github.com/elenchus/socratic-tutor/backend/internal/handler"
	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/internal/service/session"
	"github.com/elenchus/socratic-tutor/backend/internal/service/summary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	personaStore := persona.NewMemoryStore(persona.Seed())
	articleStore := article.NewMemoryStore(article.Seed())

	historyStore, err := history.OpenSQLite(cfg.History.Dir)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}
	defer historyStore.Close()

	// The gateway is the single place model credentials matter. Missing
	// credentials are reported once here; every dialogue operation then
	// degrades to its defined fallback instead of crashing.
	var gateway ai.Gateway
	if cfg.AI.Enabled() {
		svc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize model gateway: %v", err)
			gateway = ai.Disabled()
		} else {
			log.Println("model gateway initialized successfully")
			gateway = svc
		}
	} else {
		log.Println("warning: model credentials not configured, dialogue will be unavailable")
		gateway = ai.Disabled()
	}

	summarizer := summary.New(gateway)
	manager := session.NewManager(gateway, historyStore, summarizer, personaStore, articleStore, cfg.Dialogue.ExchangeTimeout)
	exporter := export.New(historyStore)

	router := handler.NewRouter(personaStore, articleStore, manager, historyStore, gateway, exporter)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Socratic tutor backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
