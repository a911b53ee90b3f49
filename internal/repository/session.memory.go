package repository

import (
	"context"
	"sync"

	"portal-service/internal/domain"
	"portal-service/pkg/xerrors"
)

// MemorySessionStore keeps wizard sessions in a map. Test double for
// SessionRepo; copies sessions on the way in and out so callers cannot
// mutate stored state behind the store's back.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.WizardSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.WizardSession)}
}

func (s *MemorySessionStore) Create(_ context.Context, sess *domain.WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, xerrors.ErrSessionNotFound
	}
	out := sess
	return &out, nil
}

func (s *MemorySessionStore) GetActive(_ context.Context, userID string, line domain.InsuranceLine) (*domain.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *domain.WizardSession
	for id := range s.sessions {
		sess := s.sessions[id]
		if sess.UserID != userID || sess.Draft.Line != line || sess.Status != domain.WizardActive {
			continue
		}
		if latest == nil || sess.CreatedAt.After(latest.CreatedAt) {
			out := sess
			latest = &out
		}
	}
	if latest == nil {
		return nil, xerrors.ErrSessionNotFound
	}
	return latest, nil
}

func (s *MemorySessionStore) Update(_ context.Context, sess *domain.WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; !ok {
		return xerrors.ErrSessionNotFound
	}
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
