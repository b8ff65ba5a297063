package session

import (
	"fmt"
	"sync"
)

// Store hands out live sessions keyed by (exam, user). Exactly one live
// session exists per in-progress exam for a given user; Reset swaps it for a
// fresh one. The store is shared across request handlers, hence the lock —
// individual sessions stay single-writer.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

func key(examID uint, userID string) string {
	return fmt.Sprintf("%d/%s", examID, userID)
}

// Get returns the live session for (exam, user), if one exists.
func (st *Store) Get(examID uint, userID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[key(examID, userID)]
	return s, ok
}

// GetOrCreate returns the existing live session or creates a fresh one.
func (st *Store) GetOrCreate(examID uint, userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	k := key(examID, userID)
	if s, ok := st.sessions[k]; ok {
		return s
	}
	s := New(examID, userID)
	st.sessions[k] = s
	return s
}

// Reset discards the current session and installs a fresh editable one for
// the same exam.
func (st *Store) Reset(examID uint, userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := New(examID, userID)
	st.sessions[key(examID, userID)] = s
	return s
}

// Remove drops the session, typically after its attempt has been persisted.
func (st *Store) Remove(examID uint, userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, key(examID, userID))
}
