package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/session"
)

// Store keeps the mounted viewers by ID.
type Store struct {
	deps Deps
	log  zerolog.Logger

	mu      sync.RWMutex
	viewers map[uuid.UUID]*Viewer
}

// NewStore creates an empty store whose viewers share deps.
func NewStore(deps Deps) *Store {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Store{
		deps:    deps,
		log:     deps.Log.With().Str("component", "viewer_store").Logger(),
		viewers: make(map[uuid.UUID]*Viewer),
	}
}

// Mount creates, registers and mounts a new viewer for sess. The returned
// error reports a degraded mount (empty list or unknown usage); the viewer
// is registered and usable either way.
func (s *Store) Mount(ctx context.Context, sess *session.Session) (*Viewer, error) {
	v := New(uuid.New(), sess, s.deps)

	s.mu.Lock()
	s.viewers[v.ID()] = v
	s.mu.Unlock()

	err := v.Mount(ctx)
	return v, err
}

// Get returns the viewer with id. Viewers mounted by a logged-in user are
// only visible to that same user.
func (s *Store) Get(id uuid.UUID, sess *session.Session) (*Viewer, error) {
	s.mu.RLock()
	v, ok := s.viewers[id]
	s.mu.RUnlock()

	if !ok || !sameOwner(v.Session(), sess) {
		return nil, apperrors.ErrViewerNotFound
	}
	v.Touch()
	return v, nil
}

func sameOwner(owner, caller *session.Session) bool {
	if !owner.LoggedIn() {
		return true
	}
	return caller.LoggedIn() && caller.UserID == owner.UserID
}

// Remove closes and forgets the viewer with id.
func (s *Store) Remove(id uuid.UUID, sess *session.Session) error {
	v, err := s.Get(id, sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.viewers, id)
	s.mu.Unlock()

	v.Close()
	return nil
}

// Prune closes viewers unused for longer than idle and returns how many
// were removed.
func (s *Store) Prune(idle time.Duration) int {
	cutoff := s.deps.Now().Add(-idle)

	var stale []*Viewer
	s.mu.Lock()
	for id, v := range s.viewers {
		if v.LastSeen().Before(cutoff) {
			stale = append(stale, v)
			delete(s.viewers, id)
		}
	}
	s.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		s.log.Info().Int("count", len(stale)).Msg("Pruned idle viewers")
	}
	return len(stale)
}

// DailyLimit returns the per-user screener limit shown alongside usage.
func (s *Store) DailyLimit() int {
	return s.deps.DailyLimit
}

// Len returns the number of mounted viewers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.viewers)
}

// Close closes every viewer and waits for their chart requests to finish.
func (s *Store) Close() {
	s.mu.Lock()
	viewers := make([]*Viewer, 0, len(s.viewers))
	for id, v := range s.viewers {
		viewers = append(viewers, v)
		delete(s.viewers, id)
	}
	s.mu.Unlock()

	for _, v := range viewers {
		v.Close()
	}
	for _, v := range viewers {
		v.Wait()
	}
}
