package extension

import (
	"context"
	"errors"
	"sync"
)

// MessageType names a message passed between the popup and the background
// worker.
type MessageType string

const (
	MsgAuthSuccess MessageType = "AUTH_SUCCESS"
	MsgAuthUpdated MessageType = "AUTH_UPDATED"
	MsgSignedOut   MessageType = "SIGNED_OUT"
)

// Message is a typed envelope. Payload is one of the payload structs below
// or nil.
type Message struct {
	Type    MessageType
	Payload any
}

// AuthSuccessPayload is sent when the web app hands over a fresh token.
type AuthSuccessPayload struct {
	Token    string
	UserID   string
	Username string
}

// AuthUpdatedPayload tells listeners the sign-in state changed.
type AuthUpdatedPayload struct {
	IsAuthenticated bool
	Username        string
}

// HandlerFunc handles one message.
type HandlerFunc func(ctx context.Context, msg Message) error

// Bus delivers messages synchronously to the handlers subscribed to their
// type, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[MessageType][]HandlerFunc
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[MessageType][]HandlerFunc)}
}

// Subscribe registers fn for messages of type t.
func (b *Bus) Subscribe(t MessageType, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Publish runs every handler for msg.Type. All handlers run even if one
// fails; their errors are joined.
func (b *Bus) Publish(ctx context.Context, msg Message) error {
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[msg.Type]))
	copy(handlers, b.handlers[msg.Type])
	b.mu.RUnlock()

	var errs []error
	for _, fn := range handlers {
		if err := fn(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
