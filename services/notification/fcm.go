package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roadguard/metrics"
	"roadguard/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// MessageSender is the part of *messaging.Client the push mirror uses.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPublisher mirrors realtime events to Firebase topics so devices that are
// not holding a socket still see them. Broadcasts go to AdminTopic; room sends
// go to RoomTopicPrefix+room. Sends run in the background.
type FCMPublisher struct {
	Sender          MessageSender
	AdminTopic      string
	RoomTopicPrefix string
	Timeout         time.Duration

	// done is signalled after each background send; used by tests.
	done func(topic string, err error)
}

func NewFCMPublisher(sender MessageSender, adminTopic, roomTopicPrefix string) *FCMPublisher {
	return &FCMPublisher{
		Sender:          sender,
		AdminTopic:      adminTopic,
		RoomTopicPrefix: roomTopicPrefix,
		Timeout:         10 * time.Second,
	}
}

func (p *FCMPublisher) Broadcast(_ context.Context, event string, payload interface{}) error {
	return p.publish(p.AdminTopic, event, payload)
}

func (p *FCMPublisher) SendToRoom(_ context.Context, room, event string, payload interface{}) error {
	return p.publish(p.RoomTopicPrefix+room, event, payload)
}

func (p *FCMPublisher) publish(topic, event string, payload interface{}) error {
	msg, err := buildTopicMessage(topic, event, payload)
	if err != nil {
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
		defer cancel()

		_, sendErr := p.Sender.Send(ctx, msg)
		if sendErr != nil {
			metrics.NotificationFailures.WithLabelValues("fcm", event).Inc()
			utils.GetLogger().Warn("FCM topic send failed",
				zap.String("topic", topic),
				zap.String("event", event),
				zap.Error(sendErr),
			)
		}
		if p.done != nil {
			p.done(topic, sendErr)
		}
	}()
	return nil
}

// buildTopicMessage encodes the event as a data-only message. FCM data values
// must be strings, so the payload travels as JSON.
func buildTopicMessage(topic, event string, payload interface{}) (*messaging.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fcm: failed to encode %s payload: %w", event, err)
	}
	return &messaging.Message{
		Topic: topic,
		Data: map[string]string{
			"event":   event,
			"payload": string(body),
		},
		Android: &messaging.AndroidConfig{Priority: "high"},
	}, nil
}
