package core

import "errors"

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is a raw text payload (signaling blob or encoded event).
type Frame []byte

// Conn abstracts one open duplex channel.
// Owned by the adapter; the adapter must Close() it.
// TrySend never blocks: a full queue is reported as ErrBackpressure.
type Conn interface {
	TrySend(Frame) error
	Close()
}
