package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Notifier trata um evento consumido da fila (hoje, envio de e-mail).
type Notifier interface {
	Notify(ctx context.Context, payload EventPayload) error
}

// Delivery é o pedaço de amqp.Delivery que o worker usa.
type Delivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"mapeo-notifier",
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	logrus.WithField("queue", queueName).Info("📬 worker de notificações aguardando mensagens")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("⚠️ worker de notificações encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.Handle(ctx, d.Body, &d)
		}
	}
}

// Handle processa uma mensagem: JSON inválido ou falha no envio vão para a DLQ.
func (w *Worker) Handle(ctx context.Context, body []byte, d Delivery) {
	var payload EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.WithError(err).Error("❌ [WORKER] JSON inválido")
		_ = d.Nack(false, false)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"event":    payload.Event,
		"agent_id": payload.AgentID,
	})
	log.Info("📥 [WORKER] mensagem recebida")

	if err := w.Notifier.Notify(ctx, payload); err != nil {
		log.WithError(err).Error("❌ [WORKER] falha ao notificar")
		_ = d.Nack(false, false)
		return
	}

	log.Info("✅ [WORKER] notificação enviada")
	_ = d.Ack(false)
}
