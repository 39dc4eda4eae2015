package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

// handleLocation relays a position fix to the whole room, stamped with the
// sender's identity snapshot. Extra fields in the payload (heading, speed,
// whatever the client adds) pass through untouched.
func (g *Gateway) handleLocation(id domain.ConnID, data []byte) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}

	payload := make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad location payload")
			return
		}
	}
	payload["id"] = string(id)
	payload["emoji"] = sess.Emoji
	if sess.StreamURL != "" {
		payload["streamUrl"] = sess.StreamURL
	} else {
		payload["streamUrl"] = nil
	}

	g.broadcast(sess.Room, "receive-location", payload)
}

func (g *Gateway) handleMessage(id domain.ConnID, data []byte) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}
	type messagePayload struct {
		Message string `json:"message"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad message payload")
		return
	}

	g.broadcast(sess.Room, "receive-message", struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}{string(id), p.Message})
}

// handleStartStream records the URL on the session so later location frames
// carry it, and announces the stream to the room. The URL is relayed as-is,
// embed-link rewriting is the client's business.
func (g *Gateway) handleStartStream(id domain.ConnID, data []byte) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad stream payload")
		return
	}

	g.Sessions.SetStreamURL(id, url)
	g.broadcast(sess.Room, "user-started-stream", struct {
		ID        string `json:"id"`
		StreamURL string `json:"streamUrl"`
	}{string(id), url})
}

func (g *Gateway) handleStopStream(id domain.ConnID) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}
	g.Sessions.ClearStreamURL(id)
	g.broadcast(sess.Room, "user-stopped-stream", string(id))
}

// handleDestination saves the meeting point so late joiners get it, then
// pushes it to everyone already in the room.
func (g *Gateway) handleDestination(id domain.ConnID, data []byte) {
	sess, ok := g.joinedRoom(id)
	if !ok {
		return
	}
	var p domain.Point
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad destination payload")
		return
	}

	g.Registry.SetMeetingPoint(sess.Room, p)
	log.Info().Str("module", "signal").Str("room", string(sess.Room)).Msg("new destination set")
	g.broadcast(sess.Room, "update-destination", p)
}
