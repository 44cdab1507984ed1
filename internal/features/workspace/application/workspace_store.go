package application

import (
	"sync"
	"time"

	"promptgen/backend/internal/features/workspace/domain"
)

// entry guards one workspace. Operations on different workspaces never
// contend on the same lock.
type entry struct {
	mu sync.Mutex
	ws domain.Workspace
}

func (e *entry) snapshot() domain.Workspace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws
}

// workspaceStore is an in-memory map of workspaces; nothing is persisted.
type workspaceStore struct {
	mu         sync.RWMutex
	workspaces map[string]*entry
}

func newWorkspaceStore() *workspaceStore {
	return &workspaceStore{workspaces: make(map[string]*entry)}
}

func (s *workspaceStore) put(ws domain.Workspace) *entry {
	e := &entry{ws: ws}
	s.mu.Lock()
	s.workspaces[ws.ID] = e
	s.mu.Unlock()
	return e
}

func (s *workspaceStore) get(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	return e, nil
}

func (s *workspaceStore) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	delete(s.workspaces, id)
	return nil
}

// prune drops workspaces not touched since cutoff and reports how many went.
// Workspaces with a generation or chat turn in flight are kept.
func (s *workspaceStore) prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, e := range s.workspaces {
		e.mu.Lock()
		busy := e.ws.Status == domain.StatusGenerating || (e.ws.Session != nil && e.ws.Session.Pending())
		stale := e.ws.UpdatedAt.Before(cutoff) && !busy
		e.mu.Unlock()
		if stale {
			delete(s.workspaces, id)
			n++
		}
	}
	return n
}

func (s *workspaceStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}
