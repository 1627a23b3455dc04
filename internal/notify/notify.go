// Package notify is the process-wide side channel for transient user
// feedback. Any component may publish a success or error line without
// knowing who renders it; the consumer end delivers them in order.
package notify

import (
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic is the single notification topic.
const Topic = "ui.notifications"

// Level distinguishes success toasts from error toasts.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient message for the user.
type Notification struct {
	ID    string    `json:"id"`
	Level Level     `json:"level"`
	Text  string    `json:"text"`
	At    time.Time `json:"at"`
}

// Bus is the in-process pub/sub carrying notifications.
type Bus struct {
	channel *gochannel.GoChannel
}

// NewBus creates the notification bus.
func NewBus() *Bus {
	channel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)

	return &Bus{channel: channel}
}

// Subscriber exposes the subscribe end for consumers.
func (b *Bus) Subscriber() message.Subscriber {
	return b.channel
}

// Publisher exposes the publish end for sinks.
func (b *Bus) Publisher() message.Publisher {
	return b.channel
}

// Shutdown closes the bus and its subscriptions.
func (b *Bus) Shutdown() error {
	return b.channel.Close()
}

// Sink publishes notifications. Publishing is fire and forget: callers
// report outcomes and move on, so failures are logged, never returned.
type Sink struct {
	publisher message.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewSink creates a sink over the given publisher.
func NewSink(publisher message.Publisher, logger *zap.Logger) *Sink {
	return &Sink{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Success publishes a success notification.
func (s *Sink) Success(text string) {
	s.publish(LevelSuccess, text)
}

// Error publishes an error notification.
func (s *Sink) Error(text string) {
	s.publish(LevelError, text)
}

func (s *Sink) publish(level Level, text string) {
	n := Notification{
		ID:    uuid.NewString(),
		Level: level,
		Text:  text,
		At:    s.now(),
	}

	payload, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("failed to encode notification", zap.Error(err))

		return
	}

	msg := message.NewMessage(n.ID, payload)

	if err := s.publisher.Publish(Topic, msg); err != nil {
		s.logger.Error("failed to publish notification",
			zap.String("text", text),
			zap.Error(err),
		)
	}
}
