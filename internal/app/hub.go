package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/core"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

// Hub is the fan-out index: for each room, the peers currently in it.
// Membership is derived from joins and leaves, never stored on the room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]map[domain.ConnID]core.Peer
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[domain.RoomID]map[domain.ConnID]core.Peer)}
}

func (h *Hub) Register(room domain.RoomID, conn domain.ConnID, peer core.Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[domain.ConnID]core.Peer)
		h.rooms[room] = members
	}
	members[conn] = peer
	log.Info().Str("module", "app.hub").Str("room", string(room)).Str("conn", string(conn)).Int("members", len(members)).Msg("registered")
}

// Unregister removes the connection from the room's member set. The empty
// set is dropped; the room itself lives on in the registry.
func (h *Hub) Unregister(room domain.RoomID, conn domain.ConnID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
	log.Info().Str("module", "app.hub").Str("room", string(room)).Str("conn", string(conn)).Msg("unregistered")
}

// SendToRoom delivers the frame to every current member, sender included.
// Empty or unknown rooms are a no-op. A failed send to one peer is logged
// and skipped so the rest of the fan-out still runs.
func (h *Hub) SendToRoom(room domain.RoomID, frame core.Frame) {
	h.mu.RLock()
	members := make([]core.Peer, 0, len(h.rooms[room]))
	conns := make([]domain.ConnID, 0, len(h.rooms[room]))
	for conn, peer := range h.rooms[room] {
		members = append(members, peer)
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for i, peer := range members {
		if err := peer.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "app.hub").Str("room", string(room)).Str("conn", string(conns[i])).Msg("dropped frame")
		}
	}
}

// Members reports the current member count, for logs and tests.
func (h *Hub) Members(room domain.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
