package session

import (
	"sort"
	"strings"
	"sync"
)

// Store is the session-scoped answer store: a mapping from namespaced field
// key to raw value, mutated as the user moves through the form and discarded
// when the session ends. Values are strings; multiselect answers keep their
// selections as a slice.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	lists  map[string][]string
}

// NewStore returns an empty answer store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Set stores the raw value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	if s == nil || key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	delete(s.lists, key)
}

// SetList stores a multi-valued answer under key.
func (s *Store) SetList(key string, values []string) {
	if s == nil || key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append([]string(nil), values...)
	delete(s.values, key)
}

// Get returns the stored value for key, or "" when absent. Multi-valued
// answers come back joined with "; " so single-value consumers keep working.
func (s *Store) Get(key string) string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	if vs, ok := s.lists[key]; ok {
		return strings.Join(vs, "; ")
	}
	return ""
}

// GetList returns the stored selections for key. Single values come back as
// a one-element slice; absent keys return nil.
func (s *Store) GetList(key string) []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if vs, ok := s.lists[key]; ok {
		return append([]string(nil), vs...)
	}
	if v, ok := s.values[key]; ok && v != "" {
		return []string{v}
	}
	return nil
}

// Has reports whether any value is stored under key.
func (s *Store) Has(key string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	if !ok {
		_, ok = s.lists[key]
	}
	return ok
}

// Delete removes the value stored under key.
func (s *Store) Delete(key string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.lists, key)
}

// ResetNamespace drops every value whose key belongs to the namespace. Used
// by the explicit "start over" action.
func (s *Store) ResetNamespace(ns string) {
	if s == nil {
		return
	}
	prefix := ns + "__"
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
	for key := range s.lists {
		if strings.HasPrefix(key, prefix) {
			delete(s.lists, key)
		}
	}
}

// Keys returns every stored key in sorted order. Primarily for diagnostics
// and tests.
func (s *Store) Keys() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values)+len(s.lists))
	for key := range s.values {
		keys = append(keys, key)
	}
	for key := range s.lists {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
