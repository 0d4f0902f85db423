package session

import (
	"context"
	"sync"
	"time"
)

type userSession struct {
	mu           sync.Mutex
	createdAt    time.Time
	messageCount int
	turns        []Turn
}

// MemoryStore is the default in-process store: a map of per-user logs with a
// lock per session so appends for one user never interleave while different
// users proceed independently.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*userSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*userSession)}
}

func (s *MemoryStore) get(userID string, create bool) *userSession {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok || !create {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[userID]; ok {
		return sess
	}
	sess = &userSession{createdAt: time.Now()}
	s.sessions[userID] = sess
	return sess
}

func (s *MemoryStore) Record(ctx context.Context, userID string, t Turn) error {
	_ = ctx
	sess := s.get(userID, true)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.turns = append(sess.turns, t)
	if t.Role == RoleUser {
		sess.messageCount++
	}
	return nil
}

func (s *MemoryStore) History(ctx context.Context, userID string) ([]Turn, error) {
	_ = ctx
	sess := s.get(userID, false)
	if sess == nil {
		return []Turn{}, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryStore) Stats(ctx context.Context, userID string) (Stats, bool, error) {
	_ = ctx
	sess := s.get(userID, false)
	if sess == nil {
		return Stats{}, false, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Stats{CreatedAt: sess.createdAt, MessageCount: sess.messageCount}, true, nil
}
