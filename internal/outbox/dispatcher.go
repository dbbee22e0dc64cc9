package outbox

import (
	"context"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultInterval  = 2 * time.Second
	defaultBatchSize = 50
)

// Dispatcher moves pending outbox rows to the broker. Rows are only marked
// dispatched after a successful publish, so a broker outage just delays
// delivery to a later tick.
type Dispatcher struct {
	repo      repository.OutboxRepository
	publisher Publisher
	logger    *zap.Logger
	interval  time.Duration
	batchSize int
}

func NewDispatcher(repo repository.OutboxRepository, publisher Publisher, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DispatchOnce(ctx); err != nil {
				d.logger.Warn("outbox dispatch failed", zap.Error(err))
			}
		}
	}
}

// DispatchOnce publishes one batch of pending events. A publish failure
// stops the batch; already published events are still marked dispatched.
func (d *Dispatcher) DispatchOnce(ctx context.Context) error {
	events, err := d.repo.PendingEvents(ctx, d.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	var dispatched []uint
	var publishErr error
	for _, ev := range events {
		if err := d.publisher.Publish(ctx, ev.Type, ev.EventID, []byte(ev.Payload)); err != nil {
			publishErr = err
			break
		}
		dispatched = append(dispatched, ev.ID)
	}

	if len(dispatched) > 0 {
		if err := d.repo.MarkDispatched(ctx, dispatched); err != nil {
			return err
		}
		d.logger.Info("outbox events dispatched", zap.Int("count", len(dispatched)))
	}
	return publishErr
}
