package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/fhhabitat/renov-admin/internal/infra/http/middleware"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// ChangeEvent describes one mutation of a CRM table. It is what used to
// travel over the hosted realtime channel to refresh dashboards.
type ChangeEvent struct {
	Table    string `json:"table"`
	Event    string `json:"event"`
	RecordID string `json:"record_id"`
	// LeadID is set on projects events so dashboard consumers can refresh
	// the affected lead row without a lookup.
	LeadID     string    `json:"lead_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	rmq *RabbitMQ
}

func NewProducer(rmq *RabbitMQ) *Producer {
	return &Producer{rmq: rmq}
}

func (p *Producer) PublishChange(ctx context.Context, ev ChangeEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("sérialisation de l'événement: %w", err)
	}

	routingKey := ev.Table + "." + ev.Event

	middleware.RecordChangeEvent(ev.Table)

	return p.rmq.Ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Body:         body,
		},
	)
}
