// Package conversation holds the in-memory message sequence of one chat session.
package conversation

import (
	"sync"

	"github.com/diogo/ghagent/internal/models"
)

// Listener is called after a message has been appended
type Listener func(index int, msg models.Message)

// Store is an append-only, ordered sequence of messages.
// It lives for the duration of a session and is never persisted.
type Store struct {
	mu        sync.RWMutex
	messages  []models.Message
	listeners []Listener
}

// NewStore creates an empty conversation
func NewStore() *Store {
	return &Store{}
}

// Append adds msg at the end of the conversation and notifies listeners.
// Listeners run on the caller's goroutine, after the lock is released.
func (s *Store) Append(msg models.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	index := len(s.messages) - 1
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(index, msg)
	}
}

// Subscribe registers a listener for future appends
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Messages returns a copy of the conversation in order
func (s *Store) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent message
func (s *Store) Last() (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return models.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// LastByRole returns the most recent message authored by role
func (s *Store) LastByRole(role models.Role) (models.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == role {
			return s.messages[i], true
		}
	}
	return models.Message{}, false
}
