package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

const collectionHouseEvents = "house_events"

type HouseEventRepository struct {
	col *mongo.Collection
}

func NewHouseEventRepository(db *mongo.Database) *HouseEventRepository {
	return &HouseEventRepository{col: db.Collection(collectionHouseEvents)}
}

func (r *HouseEventRepository) Create(ctx context.Context, e *domain.HouseEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, e)
	return err
}

// ListByTenant returns one tenant partition's events starting at or after
// from, ascending by start time.
func (r *HouseEventRepository) ListByTenant(ctx context.Context, tenantID string, from time.Time) ([]*domain.HouseEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"tenant_id": tenantID}
	if !from.IsZero() {
		filter["starts_at"] = bson.M{"$gte": from}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.HouseEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the tenant-partition time index.
func (r *HouseEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "starts_at", Value: 1}},
	})
	return err
}
