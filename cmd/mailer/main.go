package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mol-coffee/mol-backend-go/internal/config"
	appHTTP "github.com/mol-coffee/mol-backend-go/internal/handler/http"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/email"
	amqp "github.com/rabbitmq/amqp091-go"
)

// mailer consumes the mail queue filled by the API and delivers over SMTP.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	slog.SetDefault(appHTTP.NewLogger(cfg.App).With(slog.String("component", "mailer")))

	if !cfg.RabbitMQ.Enabled() {
		log.Fatal("RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender, err := email.NewSender(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email sender: ", err)
	}
	defer sender.Close()

	consumer := email.NewConsumer(sender)

	// Reconnect with a fixed backoff until shutdown.
	for {
		if err := consume(ctx, cfg.RabbitMQ, consumer); err != nil {
			slog.Error("Mail consumer stopped", "error", err)
		}
		select {
		case <-ctx.Done():
			slog.Info("Mailer shut down")
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func consume(ctx context.Context, cfg config.RabbitMQConfig, consumer *email.Consumer) error {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	slog.Info("Consuming mail queue", "queue", cfg.Queue)
	return consumer.Run(ctx, ch, cfg.Queue)
}
