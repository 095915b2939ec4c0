// Package events publishes booking lifecycle notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const TypeBookingConfirmed = "booking.confirmed"

const (
	writeTimeout = time.Second
	maxAttempts  = 2
)

type BookingEvent struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	SessionID       string    `json:"session_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewBookingConfirmed(bookingID, paymentIntentID, sessionID string) BookingEvent {
	return BookingEvent{
		EventID:         uuid.NewString(),
		Type:            TypeBookingConfirmed,
		BookingID:       bookingID,
		PaymentIntentID: paymentIntentID,
		SessionID:       sessionID,
		OccurredAt:      time.Now().UTC(),
	}
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer MessageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
			WriteTimeout: writeTimeout,
			MaxAttempts:  maxAttempts,
		},
	}
}

func NewPublisherWithWriter(w MessageWriter) *Publisher {
	return &Publisher{writer: w}
}

// PublishBooking writes the event keyed by booking id so that all events of
// one booking land on the same partition.
func (p *Publisher) PublishBooking(ctx context.Context, event BookingEvent) error {
	const op = "lib.events.PublishBooking"

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal event: %w", op, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.BookingID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%s: failed to write message: %w", op, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
