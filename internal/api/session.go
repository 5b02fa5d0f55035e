package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sleekshopper/storefront/internal/catalog"
	"github.com/sleekshopper/storefront/internal/store"
)

// sessionHeader carries the shopping session identifier. Requests without it
// get a fresh session; the assigned id is echoed on the response so the client
// can stick to it.
const sessionHeader = "X-Session-ID"

// session pairs one engine with the mutex that serializes requests to it. The
// engine itself assumes a single caller; this mutex is the external
// mutual-exclusion discipline a multi-request deployment requires.
type session struct {
	mu     sync.Mutex
	engine *store.Engine
}

// sessionRegistry hands out one engine per session id.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session

	catalog *catalog.Catalog
	lg      *zap.Logger
}

func newSessionRegistry(cat *catalog.Catalog, lg *zap.Logger) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*session),
		catalog:  cat,
		lg:       lg,
	}
}

// get returns the session for id, creating it on first use.
func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = &session{engine: store.New(r.catalog, r.lg.With(zap.String("session", id)))}
		r.sessions[id] = s
	}
	return s
}

// session resolves the request's session, assigning a new id when the header
// is missing, and echoes the id on the response.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(sessionHeader, id)
	return h.sessions.get(id)
}
