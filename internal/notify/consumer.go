package notify

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Handler receives one notification. Handlers are synchronous.
type Handler func(n Notification)

// Consumer subscribes to the notification topic and delivers each
// notification to the handler until shut down.
type Consumer struct {
	subscriber message.Subscriber
	handler    Handler
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a notification consumer.
func NewConsumer(subscriber message.Subscriber, handler Handler, logger *zap.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		handler:    handler,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start begins delivering notifications.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, Topic)
	if err != nil {
		return err
	}

	go c.consumeLoop(ctx, msgs)

	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			c.drain(msgs)

			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.handleMessage(msg)
		}
	}
}

// drain delivers whatever is already queued at cancellation time, so a
// notification published right before shutdown still reaches the user.
func (c *Consumer) drain(msgs <-chan *message.Message) {
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.handleMessage(msg)
		default:
			return
		}
	}
}

func (c *Consumer) handleMessage(msg *message.Message) {
	var n Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		c.logger.Error("failed to unmarshal notification", zap.Error(err))
		msg.Nack()

		return
	}

	c.handler(n)
	msg.Ack()
}

// Shutdown stops delivery and waits for the loop to drain.
func (c *Consumer) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
