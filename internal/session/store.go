// ABOUTME: Process-wide session store mapping session tokens to bounded histories
// ABOUTME: FIFO eviction keeps at most capacity turns per session
package session

import (
	"sync"

	"github.com/heulosofia/chatbot/internal/models"
)

// DefaultCapacity is the number of turns kept per session.
const DefaultCapacity = 10

// Store holds every session's conversation history in memory for the
// process lifetime. Sessions are never expired; restart loses everything.
type Store struct {
	capacity int

	mu        sync.RWMutex
	histories map[string][]models.Turn
}

// NewStore creates a store keeping at most capacity turns per session.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:  capacity,
		histories: make(map[string][]models.Turn),
	}
}

// History returns a copy of the session's turns, creating the session entry
// on first contact.
func (s *Store) History(sessionID string) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, ok := s.histories[sessionID]
	if !ok {
		s.histories[sessionID] = nil
		return nil
	}
	out := make([]models.Turn, len(history))
	copy(out, history)
	return out
}

// Append records a completed turn and evicts the oldest turns until the
// history fits the capacity again.
func (s *Store) Append(sessionID string, turn models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := append(s.histories[sessionID], turn)
	if over := len(history) - s.capacity; over > 0 {
		history = history[over:]
	}
	s.histories[sessionID] = history
}

// Clear empties the session's history without removing the session entry.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.histories[sessionID]; ok {
		s.histories[sessionID] = nil
	}
}

// Len returns the number of turns stored for the session.
func (s *Store) Len(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories[sessionID])
}

// Sessions returns how many session entries exist, for diagnostics.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.histories)
}
