// Package prefs is the key-value preference store: recent search terms and
// theme choice, persisted to a small YAML file. It backs UI affordances only;
// filtering is correct without it.
package prefs

import (
	"errors"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const maxRecentSearches = 5

type fileData struct {
	RecentSearches []string `yaml:"recentSearches"`
	Theme          string   `yaml:"theme"`
}

type FileStore struct {
	mu   sync.Mutex
	path string
	data fileData
}

// Open loads the preference file if it exists; a missing file starts empty.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	if len(s.data.RecentSearches) > maxRecentSearches {
		s.data.RecentSearches = s.data.RecentSearches[:maxRecentSearches]
	}
	return s, nil
}

// RememberSearch puts the term at the front of the recent list, removing any
// earlier occurrence and capping the list at five entries.
func (s *FileStore) RememberSearch(q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]string, 0, maxRecentSearches)
	next = append(next, q)
	for _, prev := range s.data.RecentSearches {
		if prev == q {
			continue
		}
		next = append(next, prev)
		if len(next) == maxRecentSearches {
			break
		}
	}
	s.data.RecentSearches = next
	return s.save()
}

func (s *FileStore) RecentSearches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.data.RecentSearches...)
}

func (s *FileStore) ClearRecentSearches() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RecentSearches = nil
	return s.save()
}

func (s *FileStore) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Theme
}

func (s *FileStore) SetTheme(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = t
	return s.save()
}

func (s *FileStore) save() error {
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0644)
}
