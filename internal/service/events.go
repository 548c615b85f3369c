package service

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/hotel-booking-admin/internal/queue"
)

// Publisher delivers booking events after the database transaction commits.
type Publisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// AMQPPublisher sends each event as a persistent JSON message to the
// booking.events queue.  It dials per publish; bookings are rare enough that
// a long-lived channel is not worth the reconnect bookkeeping.
type AMQPPublisher struct {
	URL string
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.QueueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// LocalPublisher hands events straight to sinks when no broker is
// configured.
type LocalPublisher struct {
	Sinks []queue.Sink
}

func (p LocalPublisher) Publish(_ context.Context, ev queue.BookingEvent) error {
	return queue.Deliver(ev, p.Sinks...)
}
