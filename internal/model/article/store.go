package article

// Store exposes article retrieval for HTTP handlers and the orchestrator.
type Store interface {
	List() []Article
	FindByID(id string) (Article, bool)
}

// MemoryStore implements Store with an in-memory slice, suitable for a
// static catalog.
type MemoryStore struct {
	items []Article
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied articles.
func NewMemoryStore(items []Article) *MemoryStore {
	return &MemoryStore{items: append([]Article(nil), items...)}
}

// List returns the catalog. FullText is included; handlers may elide it.
func (s *MemoryStore) List() []Article {
	return append([]Article(nil), s.items...)
}

// FindByID looks up an article by identifier.
func (s *MemoryStore) FindByID(id string) (Article, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Article{}, false
}
