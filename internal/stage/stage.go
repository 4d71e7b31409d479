// Package stage holds the at-most-one pending edit per session between a
// preview_edit call and the matching persist_edit, grounded on staging.rs.
package stage

import (
	"sync"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/planner"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/selector"
)

// Operation is a previewed edit waiting to be committed or retargeted.
type Operation struct {
	Selector     selector.Selector
	Content      string
	FilePath     string
	LanguageName string
	Position     planner.Position
}

// Store is a thread-safe single-slot staging area.
type Store struct {
	mu     sync.Mutex
	staged *Operation
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Stage records op, replacing whatever was previously staged. Per spec
// §4.8, a session holds at most one pending edit at a time.
func (s *Store) Stage(op Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := op
	s.staged = &staged
}

// Peek returns the staged operation without removing it.
func (s *Store) Peek() (Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return Operation{}, false
	}
	return *s.staged, true
}

// Take returns and clears the staged operation.
func (s *Store) Take() (Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staged == nil {
		return Operation{}, false
	}
	op := *s.staged
	s.staged = nil
	return op, true
}

// Has reports whether an operation is currently staged.
func (s *Store) Has() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged != nil
}

// Clear discards any staged operation without returning it.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
}
