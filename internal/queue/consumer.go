package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// reconnectDelay is the pause before redialing after a consume loop ends.
const reconnectDelay = 2 * time.Second

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// StartAssignmentConsumer connects to the broker at url, declares the
// seat.assigned queue (durable) and appends every event as one line to
// logDir/assignment.log.  It reconnects with backoff until ctx is
// cancelled; a message that cannot be handled is rejected without requeue
// so the loop keeps going.
func StartAssignmentConsumer(ctx context.Context, url, logDir string) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("assignment-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("assignment-consumer: consume loop ended: %v; reconnecting", err)
		if err := sleepCtx(ctx, reconnectDelay); err != nil {
			return err
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("assignment-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(SeatAssignedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(SeatAssignedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(d.Body, logDir); err != nil {
				log.Printf("assignment-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one SeatAssignedEvent and appends it to the
// assignment log in logDir.
func HandleMessage(body []byte, logDir string) error {
	var ev SeatAssignedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "assignment.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	moved := "-"
	if ev.PreviousSeatID != nil {
		moved = fmt.Sprintf("%d", *ev.PreviousSeatID)
	}
	line := fmt.Sprintf("[%s] Guest seated | store=%q | guest_id=%d | guest=%q | party=%d | seat_id=%d | seat=%q | floor_id=%d | from_seat=%s | remaining=%d\n",
		ev.AssignedAt, ev.Store, ev.GuestID, ev.GuestName, ev.PartySize, ev.SeatID, ev.SeatName, ev.FloorID, moved, ev.Remaining)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
