package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ProfileEventHandler reacts to profile lifecycle events. The
// recommendation service implements it to re-score a user when their
// profile is completed.
type ProfileEventHandler interface {
	HandleProfileEvent(ctx context.Context, event ProfileEvent) error
}

// ProfileConsumer consumes profile lifecycle events with auto-reconnect.
type ProfileConsumer struct {
	conn              *RabbitMQConnection
	handler           ProfileEventHandler
	messagesProcessed int64
	messagesFailed    int64
	lastMessageTime   time.Time
	isRunning         bool
}

// NewProfileConsumer creates a new profile event consumer
func NewProfileConsumer(conn *RabbitMQConnection, handler ProfileEventHandler) *ProfileConsumer {
	return &ProfileConsumer{
		conn:            conn,
		handler:         handler,
		lastMessageTime: time.Now(),
		isRunning:       false,
	}
}

func (c *ProfileConsumer) Start(ctx context.Context) error {
	slog.Info("Starting profile consumer with auto-reconnect")

	c.isRunning = true

	go func() {
		defer func() {
			c.isRunning = false
		}()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Profile consumer stopped - context cancelled")
				return
			default:
			}

			err := c.startConsumerLoop(ctx)

			if ctx.Err() != nil {
				slog.Info("Profile consumer stopped - context done")
				return
			}

			if err != nil {
				slog.Error("Profile consumer loop failed, reconnecting in 5 seconds",
					"error", err)
				time.Sleep(5 * time.Second)

				if c.conn.Connection != nil && !c.conn.Connection.IsClosed() {
					ch, chErr := c.conn.Connection.Channel()
					if chErr == nil {
						if c.conn.Channel != nil {
							c.conn.Channel.Close()
						}
						c.conn.Channel = ch
						slog.Info("RabbitMQ channel recreated successfully")
					} else {
						slog.Error("Failed to recreate channel",
							"error", chErr)
					}
				} else {
					slog.Error("RabbitMQ connection is closed, waiting for reconnection")
				}
			}
		}
	}()

	return nil
}

func (c *ProfileConsumer) startConsumerLoop(ctx context.Context) error {
	err := c.conn.Channel.Qos(
		10,    // prefetch count
		0,     // prefetch size (0 = no limit)
		false, // apply to this channel only
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	_, err = c.conn.Channel.QueueDeclare(
		ProfileEventQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := c.conn.Channel.Consume(
		ProfileEventQueue,
		"",    // consumer tag (auto-generated)
		false, // manual ack after processing
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	slog.Info("Profile consumer started successfully",
		"queue", ProfileEventQueue,
		"prefetch_count", 10)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Consumer loop stopping - context cancelled")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				slog.Warn("Profile consumer channel closed")
				return fmt.Errorf("message channel closed")
			}
			c.processMessage(ctx, msg)
		}
	}
}

func (c *ProfileConsumer) processMessage(ctx context.Context, msg amqp.Delivery) {
	processCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var event ProfileEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		slog.Error("failed to unmarshal profile event", "error", err)
		c.messagesFailed++
		// Malformed message, reject without requeue.
		msg.Nack(false, false)
		return
	}

	slog.Info("Received profile event",
		"event_id", event.ID,
		"event_type", event.EventType,
		"user_id", event.UserID,
	)

	if err := c.handler.HandleProfileEvent(processCtx, event); err != nil {
		slog.Error("failed to handle profile event",
			"event_id", event.ID,
			"error", err,
		)
		c.messagesFailed++
		msg.Nack(false, true)
		return
	}

	c.messagesProcessed++
	c.lastMessageTime = time.Now()
	msg.Ack(false)
}
