package domain

type (
	RoomID string
	ConnID string
)

// PublicRoom is the reserved open room. It never checks or stores a password.
const PublicRoom RoomID = "GLOBAL_PUBLIC"

// Room passwords are fixed by whichever connection creates the room and are
// never changed afterwards; the registry only grows for the lifetime of the
// process.
type Room struct {
	ID       RoomID
	Password string
}

// Point is a raw client-supplied coordinate. Values pass through unvalidated,
// out-of-range coordinates are relayed unchanged.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
