// Package prefs is the client's persistent key-value store for UI
// preferences such as the theme and the sidebar state.
package prefs

import (
	"errors"
	"sync"
)

// Keys used by the shell.
const (
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebar-collapsed"
	KeyUser             = "user"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("prefs: store closed")

// Store persists string preferences.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	All() (map[string]string, error)
	Close() error
}

// MemoryStore keeps preferences in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// All implements Store.
func (m *MemoryStore) All() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetBool reads a "true"/"false" preference. Missing keys and read errors
// yield false.
func GetBool(s Store, key string) bool {
	v, ok, err := s.Get(key)
	return err == nil && ok && v == "true"
}

// SetBool writes a "true"/"false" preference.
func SetBool(s Store, key string, value bool) error {
	if value {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}
