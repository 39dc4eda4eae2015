package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

// JoinResult is the outcome of checking a room password on join.
type JoinResult int

const (
	// RoomCreated: first reference to this room id, submitted password adopted.
	RoomCreated JoinResult = iota
	// RoomJoined: password matched (or the public room, which has none).
	RoomJoined
	// RoomRejected: password mismatch, nothing mutated.
	RoomRejected
)

// Registry holds room credentials and meeting points. Rooms are created
// lazily on first join and never deleted, so the maps grow for the process
// lifetime. That matches the upstream behavior and is accepted here: there
// is no TTL or eviction on purpose.
type Registry struct {
	mu           sync.RWMutex
	passwords    map[domain.RoomID]string
	destinations map[domain.RoomID]domain.Point
}

func NewRegistry() *Registry {
	return &Registry{
		passwords:    make(map[domain.RoomID]string),
		destinations: make(map[domain.RoomID]domain.Point),
	}
}

// EnsureRoom creates the room with the submitted password if the id is
// unseen, otherwise compares passwords with exact string equality. The
// public room short-circuits and never touches the password table.
func (r *Registry) EnsureRoom(room domain.RoomID, password string) JoinResult {
	if room == domain.PublicRoom {
		return RoomJoined
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.passwords[room]
	if !ok {
		r.passwords[room] = password
		log.Info().Str("module", "app.registry").Str("room", string(room)).Msg("room created")
		return RoomCreated
	}
	if stored != password {
		log.Info().Str("module", "app.registry").Str("room", string(room)).Msg("join rejected, wrong password")
		return RoomRejected
	}
	return RoomJoined
}

// MeetingPoint returns the room's last set destination, if any.
func (r *Registry) MeetingPoint(room domain.RoomID) (domain.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.destinations[room]
	return p, ok
}

// SetMeetingPoint overwrites the room's destination. No coordinate checks.
func (r *Registry) SetMeetingPoint(room domain.RoomID, p domain.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destinations[room] = p
	log.Info().Str("module", "app.registry").Str("room", string(room)).Msg("destination updated")
}

// RoomCount is used by logs and tests only.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.passwords)
}
