package mongo

import (
	"context"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditLog is one entry in the activity trail collection.
type AuditLog struct {
	Service   string    `bson:"service"`
	Action    string    `bson:"action"`
	EntityID  uint      `bson:"entity_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

type auditLogger struct {
	collection *mongo.Collection
	service    string
}

func NewAuditLogger(db *mongo.Database, collection, service string) repository.AuditLogger {
	return &auditLogger{
		collection: db.Collection(collection),
		service:    service,
	}
}

func (a *auditLogger) Record(ctx context.Context, action string, entityID uint, data map[string]interface{}) error {
	entry := AuditLog{
		Service:   a.service,
		Action:    action,
		EntityID:  entityID,
		Data:      bson.M(data),
		CreatedAt: time.Now(),
	}
	_, err := a.collection.InsertOne(ctx, entry)
	return err
}
