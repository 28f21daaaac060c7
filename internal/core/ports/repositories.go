package ports

import (
	"context"
	"time"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// AccountRepository persists login credential records for the token issuer.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUID(ctx context.Context, uid string) (*domain.Account, error)
}

// ClaimsRepository persists the role/tenant assignment per principal.
type ClaimsRepository interface {
	// Get returns domain.ErrClaimsNotFound when the principal has no record.
	Get(ctx context.Context, uid string) (*domain.Claims, error)
	// Set overwrites the record and increments its version atomically.
	// It returns the stored record, including the new version.
	Set(ctx context.Context, uid, tenantID string, role domain.Role) (*domain.Claims, error)
}

// ClaimsVersionCache is the fast-path staleness signal consulted by the auth
// middleware on every request. Backed by Redis.
type ClaimsVersionCache interface {
	CurrentVersion(ctx context.Context, uid string) (int64, error)
	SetVersion(ctx context.Context, uid string, version int64) error
}

// ProfileRepository persists login-scoped profiles keyed by principal uid.
type ProfileRepository interface {
	// Create fails with domain.ErrProfileExists when the uid is taken.
	Create(ctx context.Context, p *domain.Profile) error
	// Upsert inserts the profile only when absent and returns the stored
	// document either way. Must be atomic under concurrent first contact.
	Upsert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	FindByUID(ctx context.Context, uid string) (*domain.Profile, error)
	// UpdateFields merges the given fields into the document.
	UpdateFields(ctx context.Context, uid string, fields map[string]any) error
}

// ResidentRepository persists global clinical person records.
type ResidentRepository interface {
	Create(ctx context.Context, r *domain.Resident) error
	FindByID(ctx context.Context, id string) (*domain.Resident, error)
	// SetAccountUID mirrors the login link onto the resident record.
	SetAccountUID(ctx context.Context, id, uid string) error
}

// TenantRepository persists operator organizations.
type TenantRepository interface {
	// Create fails with domain.ErrSlugTaken on a duplicate slug.
	Create(ctx context.Context, t *domain.Tenant) error
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	UpdateStatus(ctx context.Context, id string, status domain.TenantStatus, reason string) error
}

// EnrollmentRepository is the cross-tenant ledger of resident placements.
type EnrollmentRepository interface {
	// Create fails with domain.ErrAlreadyEnrolled when an entry exists for
	// the same (tenant, resident) pair. The check must be a conditional
	// create at the storage layer, not a read-then-write.
	Create(ctx context.Context, e *domain.Enrollment) error
	Find(ctx context.Context, tenantID, residentID string) (*domain.Enrollment, error)
	UpdateFields(ctx context.Context, tenantID, residentID string, fields map[string]any) error
	ListByHouse(ctx context.Context, tenantID, houseID string) ([]*domain.Enrollment, error)
	ListByStatus(ctx context.Context, tenantID string, status domain.EnrollmentStatus) ([]*domain.Enrollment, error)
	CountByStatus(ctx context.Context, tenantID string, status domain.EnrollmentStatus) (int64, error)
	// ListByResident queries the secondary index across all tenant
	// partitions: every enrollment for the resident, regardless of tenant.
	ListByResident(ctx context.Context, residentID string) ([]*domain.Enrollment, error)
}

// JoinRequestRepository persists self-service enrollment requests.
type JoinRequestRepository interface {
	// Upsert overwrites any previous request from the same principal for the
	// same tenant (idempotent resubmission, last write wins).
	Upsert(ctx context.Context, r *domain.JoinRequest) error
	Find(ctx context.Context, tenantID, uid string) (*domain.JoinRequest, error)
	ListPending(ctx context.Context, tenantID string) ([]*domain.JoinRequest, error)
	SetStatus(ctx context.Context, tenantID, uid string, status domain.JoinRequestStatus) error
}

// HouseEventRepository persists tenant-partitioned calendar events.
type HouseEventRepository interface {
	Create(ctx context.Context, e *domain.HouseEvent) error
	// ListByTenant returns events for one tenant starting at or after from,
	// ordered ascending by start time.
	ListByTenant(ctx context.Context, tenantID string, from time.Time) ([]*domain.HouseEvent, error)
}
