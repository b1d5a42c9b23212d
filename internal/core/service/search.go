package service

import (
	"sync"

	"github.com/niksmo/pharmacy/internal/core/domain"
	"github.com/niksmo/pharmacy/internal/core/port"
)

// A Search holds the current free-text query. Each new query is reported to
// the emitter when one is set.
type Search struct {
	mu        sync.RWMutex
	state     domain.SearchState
	sessionID string
	emitter   port.SearchQueryEmitter
}

func NewSearch(sessionID string, emitter port.SearchQueryEmitter) *Search {
	return &Search{sessionID: sessionID, emitter: emitter}
}

func (s *Search) Dispatch(cmd domain.SearchCommand) domain.SearchState {
	s.mu.Lock()
	s.state = domain.ReduceSearch(s.state, cmd)
	state := s.state
	s.mu.Unlock()

	if _, ok := cmd.(domain.SetSearchQuery); ok && s.emitter != nil {
		s.emitter.EmitQuery(s.sessionID, state)
	}
	return state
}

func (s *Search) State() domain.SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Search) SetQuery(query string) domain.SearchState {
	return s.Dispatch(domain.SetSearchQuery{Query: query})
}

func (s *Search) Clear() domain.SearchState {
	return s.Dispatch(domain.ClearSearch{})
}
