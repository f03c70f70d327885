package order

import "sync"

// Store holds the reconciled order list. A pass computes its full result
// before publishing, so readers never observe a partially built list.
// Overlapping passes resolve last-write-wins.
type Store struct {
	mu     sync.RWMutex
	orders []*View
}

func NewStore() *Store {
	return &Store{}
}

// Replace publishes a fully built list, discarding the previous one.
func (s *Store) Replace(orders []*View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

// List returns the current unified list. The returned slice is a copy;
// the views themselves are shared and treated as immutable.
func (s *Store) List() []*View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*View, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) Get(id string) (*View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// PatchStatus optimistically updates the single matching view after a
// successful remote transition. The view is cloned rather than mutated so
// readers holding an older list snapshot stay consistent.
func (s *Store) PatchStatus(id string, status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			patched := o.Clone()
			patched.Status = status
			s.orders[i] = patched
			return true
		}
	}
	return false
}
