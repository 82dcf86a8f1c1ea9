// Package service provides the event publisher used after seat
// assignments.  Errors are logged and returned so callers can ignore them
// without interrupting the request.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/seatplan/internal/queue"
)

// Publisher sends seat assignment events.
type Publisher interface {
	PublishSeatAssigned(ctx context.Context, ev q.SeatAssignedEvent) error
}

// NewPublisher returns a RabbitMQ publisher for url, or a no-op publisher
// when url is empty.
func NewPublisher(url string) Publisher {
	if url == "" {
		return noopPublisher{}
	}
	return &AMQPPublisher{URL: url}
}

type noopPublisher struct{}

func (noopPublisher) PublishSeatAssigned(context.Context, q.SeatAssignedEvent) error { return nil }

// AMQPPublisher publishes to a RabbitMQ broker.  Assignments are rare, so
// every publish opens its own connection.
type AMQPPublisher struct {
	URL string
}

// PublishSeatAssigned publishes ev to the seat.assigned queue.  Messages
// are persistent and carry a fresh message id.
func (p *AMQPPublisher) PublishSeatAssigned(ctx context.Context, ev q.SeatAssignedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(q.SeatAssignedQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.SeatAssignedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
