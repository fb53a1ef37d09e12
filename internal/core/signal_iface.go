package core

// Frame is an encoded event payload.
type Frame []byte

// SignalConnection abstracts an outbound event transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
