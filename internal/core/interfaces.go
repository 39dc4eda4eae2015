package core

// Frame is an encoded wire event, ready to hand to a transport.
type Frame []byte

// Peer abstracts the outbound side of one client connection.
// Owned by the adapter; the adapter must Close() it.
type Peer interface {
	TrySend(Frame) error
	Close()
}
