// Package events publishes catalog domain events to RabbitMQ.
package events

import (
	"cinema-catalog/pkg/utils"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout = 2 * time.Second
	heartbeat          = 10 * time.Second
)

const (
	TypeMoviesReconciled = "catalog.movies.reconciled"
	TypeMovieDeleted     = "catalog.movie.deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func NewEvent(eventType string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// NewPublisher returns an AMQP publisher, or Nop when no broker URL is set.
func NewPublisher(config utils.BrokerConfig, log *zap.Logger) Publisher {
	if config.URL == "" {
		return Nop{}
	}
	return &AMQPPublisher{
		url:   config.URL,
		queue: config.Queue,
		log:   log.With(zap.String("publisher", "amqp")),
	}
}

// AMQPPublisher opens a short-lived connection per event. Events are rare
// (one per cleanup pass or delete), so no connection is kept around.
type AMQPPublisher struct {
	url   string
	queue string
	log   *zap.Logger
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout(ctx, defaultDialTimeout)),
	})
	if err != nil {
		p.log.Warn("Broker dial failed", zap.Error(err))
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Warn("Publish failed", zap.Error(err), zap.String("type", event.Type))
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.log.Debug("Event published", zap.String("type", event.Type), zap.String("event_id", event.ID))
	return nil
}

// dialTimeout bounds the broker handshake by the caller's deadline.
func dialTimeout(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	left := time.Until(deadline)
	if left < fallback {
		return max(left, time.Millisecond)
	}
	return fallback
}

func encode(event Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
	}, nil
}
