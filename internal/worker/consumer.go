package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/mailer"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrMalformed marks messages that can never be processed; they are
// dropped instead of requeued.
var ErrMalformed = errors.New("malformed message")

// Consumer turns order events into buyer notifications. Email failures
// requeue the message; they never touch the order itself.
type Consumer struct {
	mailer mailer.EmailSender
	logger *zap.Logger
}

func NewConsumer(m mailer.EmailSender, logger *zap.Logger) *Consumer {
	return &Consumer{mailer: m, logger: logger}
}

// Run consumes deliveries until the channel closes or ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			err := c.HandleMessage(ctx, d.RoutingKey, d.Body)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrMalformed):
				c.logger.Warn("dropping malformed message",
					zap.String("routing_key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, false)
			default:
				c.logger.Warn("message handling failed, requeueing",
					zap.String("routing_key", d.RoutingKey), zap.Error(err))
				_ = d.Nack(false, true)
			}
		}
	}
}

// HandleMessage processes one event body by routing key.
func (c *Consumer) HandleMessage(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case models.EventOrderPlaced:
		return c.handleOrderPlaced(ctx, body)
	case models.EventOrderStatusChanged:
		return c.handleStatusChanged(body)
	default:
		c.logger.Debug("ignoring event", zap.String("routing_key", routingKey))
		return nil
	}
}

func (c *Consumer) handleOrderPlaced(ctx context.Context, body []byte) error {
	var payload models.OrderPlacedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if payload.Email == "" {
		return fmt.Errorf("%w: missing recipient", ErrMalformed)
	}

	subject, msg := mailer.OrderConfirmation(payload)
	if err := c.mailer.Send(ctx, payload.Email, subject, msg); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", payload.OrderNo, err)
	}

	c.logger.Info("order confirmation sent",
		zap.String("order_no", payload.OrderNo),
		zap.String("email", payload.Email))
	return nil
}

func (c *Consumer) handleStatusChanged(body []byte) error {
	var payload models.OrderStatusChangedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// Status notifications are log-only for now.
	// TODO: notify the buyer once per-user notification preferences exist.
	c.logger.Info("sub-order status changed",
		zap.String("order_no", payload.OrderNo),
		zap.Uint("sub_order_id", payload.SubOrderID),
		zap.String("from", payload.From),
		zap.String("to", payload.To))
	return nil
}
