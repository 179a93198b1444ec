// Package repository provides data access implementations for the boorubot
// backend.
//
// This file implements the session repository: per-user search sessions
// held only in process memory. Sessions are replaced wholesale by each new
// search and disappear on restart. Concurrent actions from the same user
// are last-write-wins; the store synchronizes the map, not the sessions.
package repository

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dvornik/boorubot/internal/models"
)

// SessionRepository defines methods for managing per-user search sessions.
type SessionRepository interface {
	// Save stores a session for a user, replacing any existing one.
	Save(userID int64, session *models.SearchSession)

	// Get retrieves a user's active session, if any.
	Get(userID int64) (*models.SearchSession, bool)

	// Delete removes a user's session. Returns false if none existed.
	Delete(userID int64) bool

	// UpdatePage moves a session to the given page. Returns false if no
	// session exists or the page is out of range; the session is left
	// unchanged in either case.
	UpdatePage(userID int64, page int) bool

	// ClearAll removes every session and returns how many were removed.
	ClearAll() int

	// ActiveUserCount returns the number of users with an active session.
	ActiveUserCount() int
}

// InMemorySessionRepository is a mutex-guarded map implementation of
// SessionRepository.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*models.SearchSession
}

// NewSessionRepository creates an empty in-memory session repository.
func NewSessionRepository() SessionRepository {
	return &InMemorySessionRepository{
		sessions: make(map[int64]*models.SearchSession),
	}
}

// Save stores a session for a user, replacing any existing one.
func (r *InMemorySessionRepository) Save(userID int64, session *models.SearchSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = session

	log.Debug().
		Int64("user_id", userID).
		Str("query", session.Query).
		Int("results", len(session.Results)).
		Int("total_pages", session.TotalPages).
		Msg("Search session saved")
}

// Get retrieves a user's active session.
func (r *InMemorySessionRepository) Get(userID int64) (*models.SearchSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	return session, ok
}

// Delete removes a user's session.
func (r *InMemorySessionRepository) Delete(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return false
	}
	delete(r.sessions, userID)

	log.Debug().Int64("user_id", userID).Msg("Search session deleted")
	return true
}

// UpdatePage moves a session to the given page if it is in range.
func (r *InMemorySessionRepository) UpdatePage(userID int64, page int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[userID]
	if !ok || !session.InRange(page) {
		return false
	}

	session.CurrentPage = page
	return true
}

// ClearAll removes every session.
func (r *InMemorySessionRepository) ClearAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.sessions)
	r.sessions = make(map[int64]*models.SearchSession)

	log.Info().Int("cleared", count).Msg("All search sessions cleared")
	return count
}

// ActiveUserCount returns the number of users with an active session.
func (r *InMemorySessionRepository) ActiveUserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
