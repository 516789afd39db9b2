package handlers

import (
	"sync"

	"gardenquote/services"
)

// SessionStore keeps active quote builder sessions in memory, keyed by
// session id. Sessions never outlive the process; a finalized quote is the
// only durable artifact.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*services.QuoteBuilderSession
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*services.QuoteBuilderSession),
	}
}

// Open creates a new composing session and registers it.
func (st *SessionStore) Open() *services.QuoteBuilderSession {
	s := services.NewSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given id, if it exists.
func (st *SessionStore) Get(id string) (*services.QuoteBuilderSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session from the store.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
