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

const collectionEnrollments = "enrollments"

type EnrollmentRepository struct {
	col *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{col: db.Collection(collectionEnrollments)}
}

// Create inserts a ledger entry. The document id is derived from the
// (tenant, resident) pair, so concurrent enrolls for the same pair resolve
// to exactly one winner and a conflict for the loser — a conditional create,
// not a read-then-write.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

func (r *EnrollmentRepository) Find(ctx context.Context, tenantID, residentID string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Enrollment
	err := r.col.FindOne(ctx, bson.M{"_id": domain.EnrollmentKey(tenantID, residentID)}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) UpdateFields(ctx context.Context, tenantID, residentID string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": domain.EnrollmentKey(tenantID, residentID)},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepository) ListByHouse(ctx context.Context, tenantID, houseID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"tenant_id": tenantID, "house_id": houseID})
}

func (r *EnrollmentRepository) ListByStatus(ctx context.Context, tenantID string, status domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"tenant_id": tenantID, "status": status})
}

func (r *EnrollmentRepository) CountByStatus(ctx context.Context, tenantID string, status domain.EnrollmentStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"tenant_id": tenantID, "status": status})
}

// ListByResident is the cross-tenant secondary-index query: every enrollment
// for the resident regardless of tenant partition.
func (r *EnrollmentRepository) ListByResident(ctx context.Context, residentID string) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"resident_id": residentID})
}

func (r *EnrollmentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Enrollment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the tenant-partition and cross-tenant indexes.
func (r *EnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "house_id", Value: 1}}},
		// Secondary index across all tenant partitions for resident fan-out.
		{Keys: bson.D{{Key: "resident_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
