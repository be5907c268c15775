package wizard

import (
	"sync"

	"course-studio/internal/course"
)

// Registry owns the live wizard sessions, keyed by session id. Sessions are
// volatile; a service restart drops every draft.
type Registry struct {
	mu       sync.RWMutex
	cfg      Config
	sessions map[string]*Session
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Create starts a fresh session.
func (r *Registry) Create() *Session {
	session := NewSession(course.NewID(), r.cfg)

	r.mu.Lock()
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	return session
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// GetOrCreate resolves an existing session or starts a new one when the id
// is unknown (an expired cookie after a restart, for instance).
func (r *Registry) GetOrCreate(id string) *Session {
	if id != "" {
		if session, ok := r.Get(id); ok {
			return session
		}
	}
	return r.Create()
}

// Close tears a session down and forgets it.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		session.Close()
	}
}

// Len reports how many sessions are live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
