package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

// Sessions is the per-connection state store. Entries exist only while the
// connection is live; Remove must run on transport disconnect.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*domain.Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[domain.ConnID]*domain.Session)}
}

// Attach creates or overwrites the session for conn, binding it to room.
func (s *Sessions) Attach(conn domain.ConnID, room domain.RoomID, emoji string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conn] = domain.NewSession(conn, room, emoji)
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Str("room", string(room)).Msg("attached session")
}

// Detach clears room membership only. Emoji and stream URL survive so a
// later rejoin on the same connection keeps them; events on a detached
// connection early-exit on the empty room.
func (s *Sessions) Detach(conn domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[conn]; ok {
		sess.Room = ""
	}
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Msg("detached session")
}

// SetStreamURL marks the connection as streaming.
func (s *Sessions) SetStreamURL(conn domain.ConnID, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[conn]; ok {
		sess.StreamURL = url
	}
}

// ClearStreamURL ends the connection's stream.
func (s *Sessions) ClearStreamURL(conn domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[conn]; ok {
		sess.StreamURL = ""
	}
}

// Get returns a copy so callers never race on the stored record.
func (s *Sessions) Get(conn domain.ConnID) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[conn]
	if !ok {
		return domain.Session{}, false
	}
	return *sess, true
}

// Remove drops the session entirely, on transport disconnect.
func (s *Sessions) Remove(conn domain.ConnID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conn)
	log.Info().Str("module", "app.sessions").Str("conn", string(conn)).Msg("removed session")
}
