// Package export renders a transcript and its summary into a portable,
// paginated document. It is a pure consumer of the history store and the
// summary slot: no network access, no state of its own.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-wordwrap"

	"github.com/elenchus/socratic-tutor/backend/internal/history"
	"github.com/elenchus/socratic-tutor/backend/internal/model/article"
	"github.com/elenchus/socratic-tutor/backend/internal/model/dialogue"
	"github.com/elenchus/socratic-tutor/backend/internal/model/identity"
	"github.com/elenchus/socratic-tutor/backend/internal/model/persona"
	"github.com/elenchus/socratic-tutor/backend/internal/service/summary"
)

const (
	lineWidth    = 78
	linesPerPage = 44
)

// Input carries everything the document needs. Turns must be the durable
// transcript loaded fresh from the history store, so exports are only as
// fresh as the last persisted exchange.
type Input struct {
	Identity   identity.Identity
	Article    article.Article
	Persona    persona.Persona
	Summary    string
	Turns      []dialogue.Turn
	ExportedAt time.Time
}

// Document is a paginated rendering of one dialogue.
type Document struct {
	Title string
	Pages [][]string
}

// Exporter loads the durable transcript and builds documents.
type Exporter struct {
	store history.Store
}

// New returns an exporter over the given history store.
func New(store history.Store) *Exporter {
	return &Exporter{store: store}
}

// Export loads the identity's durable transcript and renders the document.
func (e *Exporter) Export(id identity.Identity, a article.Article, p persona.Persona, summaryText string) (*Document, error) {
	turns, err := e.store.Load(id.ID)
	if err != nil {
		return nil, fmt.Errorf("load transcript for export: %w", err)
	}
	return BuildDocument(Input{
		Identity:   id,
		Article:    a,
		Persona:    p,
		Summary:    summaryText,
		Turns:      turns,
		ExportedAt: time.Now(),
	}), nil
}

// BuildDocument lays the document out: header, metadata, summary section
// when non-empty, then the role-labeled transcript with word-wrapping and
// page-break-on-overflow. Pure formatting.
func BuildDocument(input Input) *Document {
	doc := &Document{Title: "Socratic Dialogue Transcript"}
	p := newPaginator(linesPerPage)

	p.add(doc.Title)
	p.add(strings.Repeat("=", len(doc.Title)))
	p.add("")

	p.add("Student: " + input.Identity.DisplayName)
	p.add("Tutor:   " + input.Persona.Name)
	p.add("Reading: " + input.Article.Title)
	if input.Article.SourceURL != "" {
		p.add("Source:  " + input.Article.SourceURL)
	}
	if !input.ExportedAt.IsZero() {
		p.add("Date:    " + input.ExportedAt.Format("2006-01-02 15:04"))
	}
	p.add("")

	if strings.TrimSpace(input.Summary) != "" {
		p.add("Summary")
		p.add("-------")
		for _, bullet := range summary.ParseBullets(input.Summary) {
			p.addWrapped("  - "+bullet, "    ")
		}
		p.add("")
	}

	p.add("Dialogue")
	p.add("--------")
	for _, turn := range dialogue.Visible(input.Turns) {
		label := "Student"
		if turn.Speaker == dialogue.SpeakerTutor {
			label = input.Persona.Name
		}
		p.addWrapped(label+": "+turn.Text, "  ")
		p.add("")
	}

	doc.Pages = p.pages()
	return doc
}

// Text renders the document as plain text with page separators.
func (d *Document) Text() string {
	var builder strings.Builder
	for i, page := range d.Pages {
		if i > 0 {
			builder.WriteString(fmt.Sprintf("\n%s page %d %s\n\n",
				strings.Repeat("-", 34), i+1, strings.Repeat("-", 34)))
		}
		builder.WriteString(strings.Join(page, "\n"))
		builder.WriteString("\n")
	}
	return builder.String()
}

// paginator accumulates lines and breaks pages on overflow.
type paginator struct {
	limit   int
	current []string
	done    [][]string
}

func newPaginator(limit int) *paginator {
	return &paginator{limit: limit}
}

func (p *paginator) add(line string) {
	if len(p.current) >= p.limit {
		p.done = append(p.done, p.current)
		p.current = nil
		// no leading blank line at the top of a page
		if strings.TrimSpace(line) == "" {
			return
		}
	}
	p.current = append(p.current, line)
}

// addWrapped word-wraps a long line, indenting continuation lines.
func (p *paginator) addWrapped(line, indent string) {
	wrapped := wordwrap.WrapString(line, uint(lineWidth-len(indent)))
	for i, part := range strings.Split(wrapped, "\n") {
		if i == 0 {
			p.add(part)
			continue
		}
		p.add(indent + part)
	}
}

func (p *paginator) pages() [][]string {
	if len(p.current) > 0 || len(p.done) == 0 {
		p.done = append(p.done, p.current)
	}
	return p.done
}
