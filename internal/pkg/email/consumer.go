package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type MessageSender interface {
	Compose(msg MailMessage) (*mail.Msg, error)
	Deliver(ctx context.Context, m *mail.Msg) error
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeReject
	outcomeRequeue
)

// Consumer drains the mail queue. Undecodable or unrenderable messages are
// dropped; SMTP failures are requeued.
type Consumer struct {
	sender MessageSender
}

func NewConsumer(sender MessageSender) *Consumer {
	return &Consumer{sender: sender}
}

func (c *Consumer) process(ctx context.Context, body []byte) outcome {
	msg, err := DecodeMailMessage(body)
	if err != nil {
		slog.Error("failed to decode mail message", "error", err)
		return outcomeReject
	}

	m, err := c.sender.Compose(msg)
	if err != nil {
		slog.Error("failed to compose mail", "type", msg.Type, "error", err)
		return outcomeReject
	}

	if err := c.sender.Deliver(ctx, m); err != nil {
		slog.Error("failed to send mail", "type", msg.Type, "to", msg.To, "error", err)
		return outcomeRequeue
	}

	slog.Info("mail sent", "type", msg.Type, "to", msg.To)
	return outcomeAck
}

// Run consumes queue until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, ch *amqp.Channel, queue string) error {
	q, err := DeclareQueue(ch, queue)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("mail queue channel closed")
			}
			switch c.process(ctx, d.Body) {
			case outcomeAck:
				_ = d.Ack(false)
			case outcomeReject:
				_ = d.Nack(false, false)
			case outcomeRequeue:
				_ = d.Nack(false, true)
			}
		}
	}
}
