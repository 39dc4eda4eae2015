package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/app"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/core"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

const wrongPasswordMsg = "Incorrect Password for this Room!"

func (g *Gateway) handleJoin(id domain.ConnID, peer core.Peer, data []byte) {
	type joinPayload struct {
		RoomName string `json:"roomName"`
		Password string `json:"password"`
		Emoji    string `json:"emoji"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad join payload")
		return
	}
	room := domain.RoomID(p.RoomName)

	// Joining while already in a room leaves the old one first, so peers
	// there drop this user's marker instead of keeping a stale one.
	if prev, ok := g.Sessions.Get(id); ok && prev.Joined() {
		g.leaveRoom(id, prev.Room)
	}

	switch g.Registry.EnsureRoom(room, p.Password) {
	case app.RoomRejected:
		g.sendEvent(peer, "join-error", wrongPasswordMsg)
		return
	case app.RoomCreated, app.RoomJoined:
	}

	g.Sessions.Attach(id, room, p.Emoji)
	g.Hub.Register(room, id, peer)
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(room)).Msg("joined")

	g.sendEvent(peer, "join-success", nil)
	if point, ok := g.Registry.MeetingPoint(room); ok {
		g.sendEvent(peer, "update-destination", point)
	}
}

func (g *Gateway) handleLeave(id domain.ConnID) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(sess.Room)).Msg("left room")
	g.leaveRoom(id, sess.Room)
}

// Disconnect runs when the transport drops: same room cleanup as an explicit
// leave, then the session goes away with the connection.
func (g *Gateway) Disconnect(id domain.ConnID) {
	if sess, ok := g.Sessions.Get(id); ok && sess.Joined() {
		g.leaveRoom(id, sess.Room)
	}
	g.Sessions.Remove(id)
}

// leaveRoom tells the room the user is gone, then drops membership. The
// broadcast runs first so it mirrors the announce-then-leave order peers
// expect; the leaver receiving its own id is harmless, clients discard it.
func (g *Gateway) leaveRoom(id domain.ConnID, room domain.RoomID) {
	g.broadcast(room, "user-disconnected", string(id))
	g.Hub.Unregister(room, id)
	g.Sessions.Detach(id)
}
