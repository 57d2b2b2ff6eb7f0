package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventTicketPurchased     = "ticket_purchased"
	EventTicketCancelled     = "ticket_cancelled"
	EventPurchaseDebitFailed = "purchase_debit_failed"
	EventRefundFailed        = "refund_failed"
)

// TicketEvent records a saga outcome. The *_failed types mark tickets left
// out of step between the reservation and loyalty backends.
type TicketEvent struct {
	Type          string    `json:"type"`
	TicketUID     string    `json:"ticket_uid"`
	Username      string    `json:"username"`
	FlightNumber  string    `json:"flight_number,omitempty"`
	Price         int       `json:"price,omitempty"`
	PaidByMoney   int       `json:"paid_by_money,omitempty"`
	PaidByBonuses int       `json:"paid_by_bonuses,omitempty"`
	Error         string    `json:"error,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			WriteTimeout: 5 * time.Second,
			MaxAttempts:  3,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
