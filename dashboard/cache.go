package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bank-site/models"
	"bank-site/repositories"
)

// The dashboard holds a session-scoped, best-effort mirror of the article
// list: loaded once when the session opens, then patched in place from each
// mutation's response instead of re-fetching the whole list. It assumes a
// single operator per session; concurrent external writers make it diverge
// from server truth until the next session open, which is accepted.

// State is the lifecycle of a session's article list.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Session is one operator's article list cache, keyed by article object id.
type Session struct {
	ID string

	repo *repositories.ArticleRepository

	mu       sync.Mutex
	state    State
	errMsg   string
	articles []models.Article
	lastUsed time.Time
}

// Snapshot returns the session state and a copy of the list. The copy keeps
// callers from observing in-place patches mid-read.
func (s *Session) Snapshot() (State, string, []models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return s.state, s.errMsg, out
}

// Create submits a new article and appends the store-assigned record on
// success. On failure the list is left untouched.
func (s *Session) Create(ctx context.Context, payload models.ArticlePayload) (*models.Article, error) {
	created, err := s.repo.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.articles = append(s.articles, *created)
	return created, nil
}

// Update submits a partial update and replaces the matching cache entry by
// id on success. On failure the list is left untouched.
func (s *Session) Update(ctx context.Context, objectID string, update models.ArticleUpdate) (*models.Article, error) {
	updated, err := s.repo.Update(ctx, objectID, update)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	for i := range s.articles {
		if s.articles[i].ObjectID == updated.ObjectID {
			s.articles[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete removes the article remotely and filters it out of the cache on
// success. The caller has already confirmed with the operator; the delete is
// destructive and not reversible. On failure the list is left untouched.
func (s *Session) Delete(ctx context.Context, objectID string) error {
	if err := s.repo.Remove(ctx, objectID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	filtered := s.articles[:0]
	for _, a := range s.articles {
		if a.ObjectID != objectID {
			filtered = append(filtered, a)
		}
	}
	s.articles = filtered
	return nil
}

// touch must be called with the mutex held.
func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// Manager owns the live dashboard sessions. Sessions are disposable: idle
// ones are pruned, and a pruned session simply forces the client to open a
// fresh one (one full list load).
type Manager struct {
	repo    *repositories.ArticleRepository
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(repo *repositories.ArticleRepository, idleTTL time.Duration) *Manager {
	return &Manager{
		repo:     repo,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session and performs its single full list load. The session
// is returned in StateReady on success; on failure it is returned in
// StateError with the failure message, so the client can show a retry-able
// error without losing the session id.
func (m *Manager) Open(ctx context.Context) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		repo:  m.repo,
		state: StateLoading,
	}
	s.touch()

	m.mu.Lock()
	m.pruneIdleLocked()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	items, err := m.repo.ListAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.errMsg = err.Error()
		return s
	}
	s.state = StateReady
	s.articles = items
	return s
}

// Get looks up a live session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close drops a session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// pruneIdleLocked must be called with the manager mutex held.
func (m *Manager) pruneIdleLocked() {
	if m.idleTTL <= 0 {
		return
	}
	now := time.Now()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastUsed)
		s.mu.Unlock()
		if idle > m.idleTTL {
			delete(m.sessions, id)
		}
	}
}
