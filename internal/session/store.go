// Package session holds per-session application state: the journey graph
// and the last negotiation result. State lives for the process lifetime
// only; nothing is persisted.
package session

import (
	"sync"

	"github.com/tjfontaine/neo-nomad/internal/domain"
	"github.com/tjfontaine/neo-nomad/internal/journey"
)

// State is the mutable state of one interactive session. Access is
// serialized internally; the interactive flow is single-writer but the HTTP
// surface does not guarantee it.
type State struct {
	mu          sync.Mutex
	graph       *journey.Graph
	lastResult  domain.NegotiationResult
	lastCountry domain.CountryContext
}

func newState() *State {
	return &State{graph: journey.New()}
}

// SetAnalysis stores the latest negotiation result and the country context
// it was produced under, overwriting the previous one.
func (s *State) SetAnalysis(res domain.NegotiationResult, country domain.CountryContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResult = res
	s.lastCountry = country
}

// Analysis returns the last stored negotiation result and its country.
func (s *State) Analysis() (domain.NegotiationResult, domain.CountryContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult, s.lastCountry
}

// RecordPurchase appends a purchase to the session's journey graph.
func (s *State) RecordPurchase(item, location string, price float64, currency string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.RecordPurchase(item, location, price, currency)
}

// Journey snapshots the session's journey graph.
func (s *State) Journey() journey.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Export()
}

// Store is an in-memory map of session states keyed by session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*State)}
}

// Get returns the state for a session id, creating it on first use.
func (s *Store) Get(id string) *State {
	s.mu.RLock()
	state, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return state
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[id]; ok {
		return state
	}
	state = newState()
	s.sessions[id] = state
	return state
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
