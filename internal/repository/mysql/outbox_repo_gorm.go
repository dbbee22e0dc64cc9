package mysql

import (
	"context"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"gorm.io/gorm"
)

type outboxRepo struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) repository.OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) PendingEvents(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepo) MarkDispatched(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":        models.OutboxDispatched,
			"dispatched_at": &now,
		}).Error
}
