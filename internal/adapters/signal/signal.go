package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/app"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/config"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/core"
	"github.com/WorkIDVenkatesh/GeoStream-Tracker/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Gateway is the protocol handler: it validates inbound events against the
// registry and session store and picks the fan-out target.
type Gateway struct {
	Registry *app.Registry
	Sessions *app.Sessions
	Hub      *app.Hub
	Cfg      *config.Config
}

func NewGateway(cfg *config.Config, reg *app.Registry, sessions *app.Sessions, hub *app.Hub) *Gateway {
	return &Gateway{
		Registry: reg,
		Sessions: sessions,
		Hub:      hub,
		Cfg:      cfg,
	}
}

// WsConn wraps one websocket with a buffered send channel. TrySend drops on
// backpressure instead of blocking a room broadcast.
type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// envelope is the wire shape of every event in both directions. Frames with
// no payload omit data entirely.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and runs the connection's pumps. The
// connection id is fresh per websocket, not tied to the browser token.
func (g *Gateway) HandleWS(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	id := domain.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("ct", c.GetString("client_token")).Msg("new WS connection")

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, g.Cfg.SendBuffer),
	}

	ctx, cancel := context.WithCancel(ctx)
	go g.writePump(ctx, conn)
	go g.readPump(ctx, cancel, id, conn)
}

// sendEvent marshals an envelope and delivers it to one peer.
func (g *Gateway) sendEvent(peer core.Peer, event string, payload any) {
	f, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", event).Msg("encode")
		return
	}
	_ = peer.TrySend(f)
}

// broadcast fans an event out to every current member of the room.
func (g *Gateway) broadcast(room domain.RoomID, event string, payload any) {
	f, err := encodeEvent(event, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", event).Msg("encode")
		return
	}
	g.Hub.SendToRoom(room, f)
}

func encodeEvent(event string, payload any) (core.Frame, error) {
	env := envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}
