// Package config holds the process-wide preferences the font and detection
// code reads, and loads them from YAML settings files and game INI files.
package config

import "sync"

const (
	KeyFontAntialiasing = "font_antialiasing"
	KeyFontHighRes      = "font_highres"
)

// Store is a set of boolean preferences with registered defaults.  A value
// set explicitly wins over the default; unknown keys read as false.
type Store struct {
	mu       sync.RWMutex
	defaults map[string]bool
	values   map[string]bool
}

func NewStore() *Store {
	return &Store{
		defaults: map[string]bool{},
		values:   map[string]bool{},
	}
}

func (s *Store) RegisterDefault(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[key] = value
}

func (s *Store) Set(key string, value bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Unset removes an explicit value so the default applies again.
func (s *Store) Unset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Store) Bool(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return s.defaults[key]
}

// Apply copies the preferences present in settings into the store.
func (s *Store) Apply(settings Settings) {
	if settings.FontAntialiasing != nil {
		s.Set(KeyFontAntialiasing, *settings.FontAntialiasing)
	}
	if settings.FontHighRes != nil {
		s.Set(KeyFontHighRes, *settings.FontHighRes)
	}
}
