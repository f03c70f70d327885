// Package session owns per-session presentation state keyed by order id:
// expanded table rows and draft internal notes. It is deliberately separate
// from the reconciled order list, which is rebuilt wholesale on every pass.
package session

import "sync"

type State struct {
	mu       sync.Mutex
	expanded map[string]bool
	notes    map[string]string
}

func NewState() *State {
	return &State{
		expanded: make(map[string]bool),
		notes:    make(map[string]string),
	}
}

// ToggleExpanded flips the row-expansion flag for one order and returns the
// new value.
func (s *State) ToggleExpanded(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[orderID] = !s.expanded[orderID]
	return s.expanded[orderID]
}

func (s *State) IsExpanded(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[orderID]
}

// SaveNote stores a draft internal note. Notes are a local-only buffer; they
// are never written to the remote system.
func (s *State) SaveNote(orderID, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note == "" {
		delete(s.notes, orderID)
		return
	}
	s.notes[orderID] = note
}

func (s *State) Note(orderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes[orderID]
}
