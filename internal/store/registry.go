package store

import (
	"sort"
	"sync"

	"github.com/quizpractice/backend/internal/domain"
	practicesession "github.com/quizpractice/backend/internal/domain/practice_session"
)

// SessionRegistry holds live sessions in memory. The map lock only guards
// membership; each session has its own mutex so operations on different
// sessions never block each other while operations on one session are
// strictly serialized.
type SessionRegistry struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *practicesession.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{entries: make(map[string]*sessionEntry)}
}

// Put registers a new session. Registering an id twice is a session error.
func (r *SessionRegistry) Put(s *practicesession.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[s.ID]; exists {
		return &domain.SessionError{SessionID: s.ID, Reason: "session already registered"}
	}
	r.entries[s.ID] = &sessionEntry{session: s}
	return nil
}

func (r *SessionRegistry) lookup(id string) (*sessionEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.SessionNotFound(id)
	}
	return e, nil
}

// WithSession runs fn while holding the session's lock. fn must not retain
// the pointer after it returns.
func (r *SessionRegistry) WithSession(id string, fn func(*practicesession.Session) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Snapshot returns a deep copy of the session.
func (r *SessionRegistry) Snapshot(id string) (*practicesession.Session, error) {
	var snap *practicesession.Session
	err := r.WithSession(id, func(s *practicesession.Session) error {
		snap = s.Clone()
		return nil
	})
	return snap, err
}

// List returns snapshots of every session, oldest first.
func (r *SessionRegistry) List() []*practicesession.Session {
	r.mu.RLock()
	entries := make([]*sessionEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]*practicesession.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.session.Clone())
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
