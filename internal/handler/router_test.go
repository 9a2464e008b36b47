package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elenchus/socratic-tutor/backend/internal/export"
	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/ai"
	"github.com/elenchus/socratic-tutor/backend/internal/service/session"
)

func newTestRouter(t *testing.T) (http.Handler, *history.MemoryStore) {
	t.Helper()

	store := history.NewMemoryStore()
	personas := persona.NewMemoryStore(persona.Seed())
	articles := article.NewMemoryStore(article.Seed())
	gateway := ai.Disabled()
	manager := session.NewManager(gateway, store, nil, personas, articles, time.Second)
	exporter := export.New(store)

	return NewRouter(personas, articles, manager, store, gateway, exporter), store
}

func loginBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"name":      "Ana",
		"personaId": persona.Seed()[0].ID,
		"articleId": article.Seed()[0].ID,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(body)
}

func TestListPersonas(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/personas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var items []persona.Persona
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != len(persona.Seed()) {
		t.Fatalf("expected %d personas, got %d", len(persona.Seed()), len(items))
	}
}

func TestListArticlesElidesFullText(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var items []article.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded articles")
	}
	for _, item := range items {
		if item.FullText != "" {
			t.Fatalf("listing must not carry full text for %s", item.ID)
		}
		if item.Title == "" {
			t.Fatalf("listing must carry the title for %s", item.ID)
		}
	}
}

func TestDiscussionPointsFallBackWhenModelUnavailable(t *testing.T) {
	router, _ := newTestRouter(t)

	url := fmt.Sprintf("/api/articles/%s/discussion", article.Seed()[0].ID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var points ai.DiscussionPoints
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if points.Title != ai.FallbackDiscussionPoints().Title {
		t.Fatalf("expected fallback title, got %q", points.Title)
	}
	if len(points.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(points.Questions))
	}
}

func TestDiscussionPointsUnknownArticle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/nope/discussion", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestLoginSessionLogoutRoundTrip(t *testing.T) {
	router, store := newTestRouter(t)

	// Not logged in yet.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before login, got %d", rec.Code)
	}

	// Login.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var sel history.Selection
	if err := json.Unmarshal(rec.Body.Bytes(), &sel); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sel.Identity.ID != "user_ana" {
		t.Fatalf("unexpected identity: %q", sel.Identity.ID)
	}

	// Session now resolves.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after login, got %d", rec.Code)
	}

	// Seed a transcript so logout has something to cascade over.
	if err := store.Save(sel.Identity.ID, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Logout clears the selection.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after logout, got %d", rec.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty name", fmt.Sprintf(`{"name":"  ","personaId":%q,"articleId":%q}`, persona.Seed()[0].ID, article.Seed()[0].ID)},
		{"unknown persona", fmt.Sprintf(`{"name":"Ana","personaId":"nope","articleId":%q}`, article.Seed()[0].ID)},
		{"unknown article", fmt.Sprintf(`{"name":"Ana","personaId":%q,"articleId":"nope"}`, persona.Seed()[0].ID)},
		{"bad json", `{not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDialogueRequiresLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/dialogue", "/api/dialogue/summary", "/api/dialogue/export"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestDialogueSnapshotAndExportAfterLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", loginBody(t)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("login failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dialogue", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot failed: %d", rec.Code)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != session.StateUninitialized {
		t.Fatalf("unexpected state before start: %s", snap.State)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dialogue/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "transcript.txt") {
		t.Fatalf("unexpected disposition: %q", rec.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(rec.Body.String(), "Socratic Dialogue Transcript") {
		t.Fatalf("unexpected document body:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dialogue/export?format=html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("html export failed: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type: %q", ct)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dialogue/export?format=docx", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format must 400, got %d", rec.Code)
	}
}
