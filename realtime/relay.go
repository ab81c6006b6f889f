package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roadguard/metrics"
	"roadguard/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// relayMessage is what instances exchange over the Redis channel.
type relayMessage struct {
	Origin string          `json:"origin"`
	Room   string          `json:"room,omitempty"`
	Event  string          `json:"event"`
	Frame  json.RawMessage `json:"frame"`
}

// RedisRelay delivers events to the local hub and republishes them on a Redis
// channel so hubs in other instances deliver them too. Messages from this
// instance are ignored on the way back in.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	origin  string
	timeout time.Duration

	// publish is swapped in tests.
	publish func(ctx context.Context, body []byte) error
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub) *RedisRelay {
	r := &RedisRelay{
		client:  client,
		channel: channel,
		hub:     hub,
		origin:  uuid.New().String(),
		timeout: 3 * time.Second,
	}
	r.publish = func(ctx context.Context, body []byte) error {
		return r.client.Publish(ctx, r.channel, body).Err()
	}
	return r
}

func (r *RedisRelay) Broadcast(_ context.Context, event string, payload interface{}) error {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	r.hub.deliverAll(event, frame)
	return r.forward(relayMessage{Origin: r.origin, Event: event, Frame: frame})
}

func (r *RedisRelay) SendToRoom(_ context.Context, room, event string, payload interface{}) error {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	r.hub.deliverRoom(room, event, frame)
	return r.forward(relayMessage{Origin: r.origin, Room: room, Event: event, Frame: frame})
}

// forward publishes in the background so the caller never waits on Redis.
func (r *RedisRelay) forward(msg relayMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("realtime: failed to encode relay message: %w", err)
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.publish(ctx, body); err != nil {
			metrics.NotificationFailures.WithLabelValues("redis", msg.Event).Inc()
			utils.GetLogger().Warn("realtime relay publish failed",
				zap.String("event", msg.Event),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Run subscribes to the channel and feeds remote events into the local hub until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("realtime: failed to subscribe to %s: %w", r.channel, err)
	}
	utils.GetLogger().Info("realtime relay subscribed", zap.String("channel", r.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-messages:
			if !ok {
				return nil
			}
			r.handle(m.Payload)
		}
	}
}

func (r *RedisRelay) handle(payload string) {
	var msg relayMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		utils.GetLogger().Warn("realtime relay malformed message", zap.Error(err))
		return
	}
	if msg.Origin == r.origin || msg.Event == "" || len(msg.Frame) == 0 {
		return
	}
	if msg.Room == "" {
		r.hub.deliverAll(msg.Event, msg.Frame)
	} else {
		r.hub.deliverRoom(msg.Room, msg.Event, msg.Frame)
	}
}
