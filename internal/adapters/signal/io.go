package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/core"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

func (g *Gateway) writePump(ctx context.Context, c *WsConn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(g.Cfg.WriteTimeout)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump processes frames strictly in arrival order, so one connection's
// events are never reordered. On exit it runs full disconnect cleanup.
func (g *Gateway) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnID, c *WsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
		g.Disconnect(id)
		cancel()
		c.Close()
	}()

	c.conn.SetReadLimit(g.Cfg.ReadLimit)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
				}
				return
			}
			g.HandleEvent(id, c, data)
		}
	}
}

// HandleEvent decodes the envelope and dispatches on the event name.
// Malformed or unknown frames are logged and dropped, never answered.
func (g *Gateway) HandleEvent(id domain.ConnID, peer core.Peer, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad json")
		return
	}

	switch env.Event {
	case "join-room":
		g.handleJoin(id, peer, env.Data)
	case "leave-room":
		g.handleLeave(id)
	case "send-location":
		g.handleLocation(id, env.Data)
	case "send-message":
		g.handleMessage(id, env.Data)
	case "start-stream":
		g.handleStartStream(id, env.Data)
	case "stop-stream":
		g.handleStopStream(id)
	case "send-destination":
		g.handleDestination(id, env.Data)
	default:
		log.Warn().Str("module", "signal").Str("event", env.Event).Msg("unknown event")
	}
}

// joinedRoom is the guard every event except join-room runs first: events on
// an unjoined connection are dropped with no observable effect.
func (g *Gateway) joinedRoom(id domain.ConnID) (domain.Session, bool) {
	sess, ok := g.Sessions.Get(id)
	if !ok || !sess.Joined() {
		log.Debug().Str("module", "signal").Str("conn", string(id)).Msg("event while unjoined, dropped")
		return domain.Session{}, false
	}
	return sess, true
}
