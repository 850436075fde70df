package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventLeadSubmitted       = "lead.submitted"
	EventLeadStatusChanged   = "lead.status_changed"
	EventDocumentUploaded    = "verification.document_uploaded"
	EventVerificationChanged = "verification.status_changed"
)

// EventPayload é a mensagem publicada no exchange; o nome do evento é a routing key.
type EventPayload struct {
	Event          string    `json:"event"`
	AgentID        string    `json:"agent_id"`
	LeadID         string    `json:"lead_id,omitempty"`
	Client         string    `json:"client,omitempty"`
	Status         string    `json:"status,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	StoragePath    string    `json:"storage_path,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type QueueProducerInterface interface {
	PublishEvent(ctx context.Context, payload EventPayload) error
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, payload EventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		payload.Event,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    payload.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// LogProducer substitui o RabbitMQ quando nenhuma URL é configurada:
// registra o evento no log e guarda o histórico em memória.
type LogProducer struct {
	mu     sync.Mutex
	events []EventPayload
}

func NewLogProducer() *LogProducer {
	return &LogProducer{}
}

func (p *LogProducer) PublishEvent(_ context.Context, payload EventPayload) error {
	p.mu.Lock()
	p.events = append(p.events, payload)
	p.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"event":    payload.Event,
		"agent_id": payload.AgentID,
		"lead_id":  payload.LeadID,
		"status":   payload.Status,
	}).Info("📤 evento publicado")
	return nil
}

// Events devolve uma cópia dos eventos publicados.
func (p *LogProducer) Events() []EventPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]EventPayload, len(p.events))
	copy(out, p.events)
	return out
}
