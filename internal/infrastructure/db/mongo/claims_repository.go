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

const collectionClaims = "claims"

type ClaimsRepository struct {
	col *mongo.Collection
}

func NewClaimsRepository(db *mongo.Database) *ClaimsRepository {
	return &ClaimsRepository{col: db.Collection(collectionClaims)}
}

func (r *ClaimsRepository) Get(ctx context.Context, uid string) (*domain.Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Claims
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaimsNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Set overwrites the role/tenant assignment and bumps the version in one
// atomic document update. The returned record carries the new version.
func (r *ClaimsRepository) Set(ctx context.Context, uid, tenantID string, role domain.Role) (*domain.Claims, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"tenant_id":  tenantID,
			"role":       role,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": int64(1)},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c domain.Claims
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
