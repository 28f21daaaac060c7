package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

const collectionJoinRequests = "join_requests"

type JoinRequestRepository struct {
	col *mongo.Collection
}

func NewJoinRequestRepository(db *mongo.Database) *JoinRequestRepository {
	return &JoinRequestRepository{col: db.Collection(collectionJoinRequests)}
}

// Upsert replaces any previous request for the same (tenant, principal)
// pair. Last write wins, which is the intended resubmission semantics.
func (r *JoinRequestRepository) Upsert(ctx context.Context, req *domain.JoinRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": req.ID},
		req,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *JoinRequestRepository) Find(ctx context.Context, tenantID, uid string) (*domain.JoinRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.JoinRequest
	err := r.col.FindOne(ctx, bson.M{"_id": domain.JoinRequestKey(tenantID, uid)}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJoinRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *JoinRequestRepository) ListPending(ctx context.Context, tenantID string) ([]*domain.JoinRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"tenant_id": tenantID, "status": domain.JoinRequestPending},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *JoinRequestRepository) SetStatus(ctx context.Context, tenantID, uid string, status domain.JoinRequestStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": domain.JoinRequestKey(tenantID, uid)},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrJoinRequestNotFound
	}
	return nil
}

// EnsureIndexes creates the tenant-partition listing index.
func (r *JoinRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}},
	})
	return err
}
