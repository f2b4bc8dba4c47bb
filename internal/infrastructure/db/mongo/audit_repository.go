package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appointly/identity-service/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository stores auth audit events.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Username  string `bson:"username"`
	Kind      string `bson:"kind"`
	Timestamp int64  `bson:"timestamp"`
	RequestID string `bson:"request_id,omitempty"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Username:  event.Username,
		Kind:      string(event.Kind),
		Timestamp: event.Timestamp.Unix(),
		RequestID: event.RequestID,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storageErr("insert auth event", err)
	}
	return nil
}
