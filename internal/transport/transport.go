package transport

import "context"

// DeliveryMode selects the delivery guarantee for an outbound message.
// The protocol only ever uses reliable in-order delivery.
type DeliveryMode string

const ReliableOrdered DeliveryMode = "reliable-ordered"

// Sender is the outbound half of the port. Sends are fire-and-forget from
// the session core's perspective; retry and backpressure belong here.
type Sender interface {
	Send(raw string, mode DeliveryMode) error
}

// MessageCallback receives one raw decoded frame from the server.
type MessageCallback func(raw string)

// StateCallback observes connection lifecycle transitions.
type StateCallback func(state State)

// Port is the full transport boundary: a single reliable-ordered channel to
// the authoritative server. The session core only queries and invokes the
// lifecycle, never implements it.
type Port interface {
	Sender
	Connect(ctx context.Context) error
	OnMessage(cb MessageCallback) int
	RemoveMessageCallback(id int)
	OnStateChange(cb StateCallback) int
	RemoveStateCallback(id int)
	IsConnected() bool
	Close(ctx context.Context) error
}
