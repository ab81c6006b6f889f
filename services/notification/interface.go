package notification

import (
	"context"
	"errors"
)

// Realtime event names.
const (
	EventServiceNew      = "service:new"
	EventServiceAccepted = "service:accepted"
)

// Publisher delivers live events to connected observers. Implementations must
// not block on slow receivers; callers log and discard returned errors.
type Publisher interface {
	// Broadcast addresses every connected observer.
	Broadcast(ctx context.Context, event string, payload interface{}) error
	// SendToRoom addresses only observers that joined room.
	SendToRoom(ctx context.Context, room, event string, payload interface{}) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Broadcast(context.Context, string, interface{}) error          { return nil }
func (Nop) SendToRoom(context.Context, string, string, interface{}) error { return nil }

// Multi fans each event out to several publishers. Every publisher is tried;
// failures are joined.
type Multi []Publisher

func (m Multi) Broadcast(ctx context.Context, event string, payload interface{}) error {
	var errs []error
	for _, p := range m {
		if err := p.Broadcast(ctx, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) SendToRoom(ctx context.Context, room, event string, payload interface{}) error {
	var errs []error
	for _, p := range m {
		if err := p.SendToRoom(ctx, room, event, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
