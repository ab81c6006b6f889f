package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return "projects/test/messages/1", f.err
}

func waitDone(t *testing.T, p *FCMPublisher) <-chan error {
	t.Helper()
	results := make(chan error, 1)
	p.done = func(_ string, err error) { results <- err }
	return results
}

func receive(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("send did not complete")
		return nil
	}
}

func TestFCMBroadcastUsesAdminTopic(t *testing.T) {
	sender := &fakeSender{}
	p := NewFCMPublisher(sender, "admins", "worker-")
	done := waitDone(t, p)

	require.NoError(t, p.Broadcast(context.Background(), EventServiceNew, map[string]string{"id": "r1"}))
	require.NoError(t, receive(t, done))

	require.Len(t, sender.msgs, 1)
	msg := sender.msgs[0]
	assert.Equal(t, "admins", msg.Topic)
	assert.Equal(t, EventServiceNew, msg.Data["event"])
	assert.Equal(t, "high", msg.Android.Priority)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(msg.Data["payload"]), &payload))
	assert.Equal(t, "r1", payload["id"])
}

func TestFCMRoomSendUsesPrefixedTopic(t *testing.T) {
	sender := &fakeSender{}
	p := NewFCMPublisher(sender, "admins", "worker-")
	done := waitDone(t, p)

	require.NoError(t, p.SendToRoom(context.Background(), "abc", EventServiceAccepted, struct{}{}))
	require.NoError(t, receive(t, done))
	assert.Equal(t, "worker-abc", sender.msgs[0].Topic)
}

func TestFCMFailureIsNotReturned(t *testing.T) {
	sender := &fakeSender{err: errors.New("quota exceeded")}
	p := NewFCMPublisher(sender, "admins", "worker-")
	done := waitDone(t, p)

	assert.NoError(t, p.Broadcast(context.Background(), EventServiceNew, nil))
	assert.EqualError(t, receive(t, done), "quota exceeded")
}

func TestFCMUnencodablePayload(t *testing.T) {
	p := NewFCMPublisher(&fakeSender{}, "admins", "worker-")
	assert.Error(t, p.Broadcast(context.Background(), EventServiceNew, make(chan int)))
}
