package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/mailer"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/worker"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/config"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// The worker binds one durable queue to every order.* event and turns them
// into buyer notifications.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		zlog.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		zlog.Fatal("open channel", zap.Error(err))
	}
	defer channel.Close()

	if err := channel.ExchangeDeclare(cfg.RabbitMQ.Exchange, "topic", true, false, false, false, nil); err != nil {
		zlog.Fatal("declare exchange", zap.Error(err))
	}

	queue, err := channel.QueueDeclare(cfg.RabbitMQ.Queue, true, false, false, false, nil)
	if err != nil {
		zlog.Fatal("declare queue", zap.Error(err))
	}

	if err := channel.QueueBind(queue.Name, "order.#", cfg.RabbitMQ.Exchange, false, nil); err != nil {
		zlog.Fatal("bind queue", zap.Error(err))
	}

	if err := channel.Qos(10, 0, false); err != nil {
		zlog.Fatal("set qos", zap.Error(err))
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		zlog.Fatal("consume", zap.Error(err))
	}

	consumer := worker.NewConsumer(mailer.NewSMTPSender(cfg.SMTP), zlog)

	zlog.Info("worker started", zap.String("queue", queue.Name))
	consumer.Run(ctx, deliveries)
	zlog.Info("worker stopped")
}
