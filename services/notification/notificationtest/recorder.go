// Package notificationtest provides a Publisher that records what it was asked to send.
package notificationtest

import (
	"context"
	"sync"
)

// Sent is one recorded call. Room is empty for broadcasts.
type Sent struct {
	Room    string
	Event   string
	Payload interface{}
}

// Recorder implements notification.Publisher. Err, when set, is returned from every call.
type Recorder struct {
	mu   sync.Mutex
	sent []Sent
	Err  error
}

func (r *Recorder) Broadcast(_ context.Context, event string, payload interface{}) error {
	r.record(Sent{Event: event, Payload: payload})
	return r.Err
}

func (r *Recorder) SendToRoom(_ context.Context, room, event string, payload interface{}) error {
	r.record(Sent{Room: room, Event: event, Payload: payload})
	return r.Err
}

func (r *Recorder) record(s Sent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, s)
}

// All returns a copy of every recorded call in order.
func (r *Recorder) All() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// Events returns recorded calls with the given event name.
func (r *Recorder) Events(event string) []Sent {
	var out []Sent
	for _, s := range r.All() {
		if s.Event == event {
			out = append(out, s)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
