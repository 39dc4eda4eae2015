// Package domain contains entity without logic, just meta-data
package domain

// DefaultEmoji marks users who never picked a glyph.
const DefaultEmoji = "📍"

// Session is the per-connection state: which room the connection is in and
// what it broadcasts about itself. It lives exactly as long as the connection.
type Session struct {
	Conn      ConnID
	Room      RoomID // empty while unjoined
	Emoji     string
	StreamURL string // set only while streaming
}

// NewSession avoids raw literals in adapters and applies the emoji default.
func NewSession(conn ConnID, room RoomID, emoji string) *Session {
	if emoji == "" {
		emoji = DefaultEmoji
	}
	return &Session{Conn: conn, Room: room, Emoji: emoji}
}

// Joined reports whether the session currently belongs to a room.
func (s *Session) Joined() bool {
	return s.Room != ""
}
