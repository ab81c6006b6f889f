package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	mu     sync.Mutex
	bodies [][]byte
	err    error
	signal chan struct{}
}

func (p *published) publish(_ context.Context, body []byte) error {
	p.mu.Lock()
	p.bodies = append(p.bodies, body)
	p.mu.Unlock()
	p.signal <- struct{}{}
	return p.err
}

func newTestRelay(hub *Hub) (*RedisRelay, *published) {
	r := NewRedisRelay(nil, "roadguard:events", hub)
	p := &published{signal: make(chan struct{}, 4)}
	r.publish = p.publish
	return r, p
}

func awaitPublish(t *testing.T, p *published) relayMessage {
	t.Helper()
	select {
	case <-p.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not publish")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var msg relayMessage
	require.NoError(t, json.Unmarshal(p.bodies[len(p.bodies)-1], &msg))
	return msg
}

func TestRelayForwardsRoomSends(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	join(t, conn, "worker-1")

	relay, p := newTestRelay(hub)
	require.NoError(t, relay.SendToRoom(context.Background(), "worker-1", "service:accepted", map[string]string{"id": "r1"}))

	// Local members get it straight away.
	assert.Equal(t, "service:accepted", read(t, conn).Event)

	msg := awaitPublish(t, p)
	assert.Equal(t, relay.origin, msg.Origin)
	assert.Equal(t, "worker-1", msg.Room)
	assert.Equal(t, "service:accepted", msg.Event)
}

func TestRelayPublishFailureIsSwallowed(t *testing.T) {
	relay, p := newTestRelay(NewHub())
	p.err = errors.New("connection refused")

	assert.NoError(t, relay.Broadcast(context.Background(), "service:new", nil))
	msg := awaitPublish(t, p)
	assert.Empty(t, msg.Room)
}

func TestRelayDeliversRemoteMessagesAndSkipsItsOwn(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	relay, _ := newTestRelay(hub)

	frame, err := encodeFrame("service:new", map[string]string{"id": "own"})
	require.NoError(t, err)
	own, err := json.Marshal(relayMessage{Origin: relay.origin, Event: "service:new", Frame: frame})
	require.NoError(t, err)
	relay.handle(string(own))
	relay.handle("not json")

	frame, err = encodeFrame("service:new", map[string]string{"id": "remote"})
	require.NoError(t, err)
	remote, err := json.Marshal(relayMessage{Origin: "other-instance", Event: "service:new", Frame: frame})
	require.NoError(t, err)
	relay.handle(string(remote))

	env := read(t, conn)
	assert.JSONEq(t, `{"id":"remote"}`, string(env.Data))
}
