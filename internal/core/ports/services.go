package ports

import (
	"context"
	"time"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// --- Auth / token issuing ---

// RegisterInput carries the data for a new login account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// AuthResult pairs a signed credential with the account it identifies.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// AuthService issues and refreshes bearer credentials. Verification of
// presented credentials lives in the token codec consumed by middleware.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh issues a new credential for the principal reflecting the
	// current claims record. This is how a client observes claims changes.
	Refresh(ctx context.Context, p domain.Principal) (string, error)
}

// --- Claims ---

// SetClaimsInput is the desired role/tenant assignment for a principal.
type SetClaimsInput struct {
	TenantID string
	Role     domain.Role
}

// ClaimsService reads and writes the claims records behind issued
// credentials. Changes are not retroactive: already-issued credentials stay
// valid until refreshed.
type ClaimsService interface {
	SetClaims(ctx context.Context, caller domain.Principal, targetUID string, in SetClaimsInput) (*domain.Claims, error)
	GetClaims(ctx context.Context, caller domain.Principal, uid string) (*domain.Claims, error)
}

// --- Profiles ---

// CreateProfileInput carries explicit registration-time profile fields.
type CreateProfileInput struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// UpdateProfileInput lists the fields a principal may change on its own
// profile. ResidentID and TenantIDs are deliberately absent.
type UpdateProfileInput struct {
	DisplayName   *string
	PhotoURL      *string
	SobrietyDate  *time.Time
	RecoveryGoals []string
	Notifications *domain.NotificationPreferences
}

// CreateResidentInput carries the intake fields for a new resident record.
type CreateResidentInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ProfileService manages login-scoped profiles and their resident links.
type ProfileService interface {
	Create(ctx context.Context, uid string, in CreateProfileInput) (*domain.Profile, error)
	// CreateResident registers a resident record ahead of any login account.
	// The record is later tied to a profile via LinkResident or a join
	// request approval.
	CreateResident(ctx context.Context, in CreateResidentInput) (*domain.Resident, error)
	// FindOrCreate provisions a profile just in time from credential claims.
	// Idempotent under concurrent first contact.
	FindOrCreate(ctx context.Context, p domain.Principal) (*domain.Profile, error)
	Get(ctx context.Context, uid string) (*domain.Profile, error)
	// LinkResident sets the profile's resident link. There is no unlink:
	// re-linking requires direct data correction by design.
	LinkResident(ctx context.Context, uid, residentID string) error
	Update(ctx context.Context, uid string, in UpdateProfileInput) (*domain.Profile, error)
}

// --- Tenants ---

// CreateTenantInput carries the data for a new operator organization.
type CreateTenantInput struct {
	Name     string
	Slug     string
	OwnerUID string
}

// TenantService manages the organization lifecycle and the claims grants
// coupled to it.
type TenantService interface {
	Create(ctx context.Context, in CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Approve(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error)
	Reject(ctx context.Context, caller domain.Principal, tenantID, reason string) (*domain.Tenant, error)
	Suspend(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error)
	Activate(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error)
}

// --- Enrollments ---

// EnrollInput creates a ledger entry. Status defaults to waitlist and phase
// to 1 when unset.
type EnrollInput struct {
	TenantID          string
	ResidentID        string
	HouseID           string
	RoomID            string
	BedID             string
	Status            domain.EnrollmentStatus
	Phase             int
	SobrietyStartDate time.Time
	MoveInDate        time.Time
}

// UpdateEnrollmentInput mutates placement, status, phase and date fields.
// Nil pointers leave the field untouched.
type UpdateEnrollmentInput struct {
	HouseID           *string
	RoomID            *string
	BedID             *string
	Status            *domain.EnrollmentStatus
	Phase             *int
	SobrietyStartDate *time.Time
	MoveInDate        *time.Time
	MoveOutDate       *time.Time
	DischargeReason   *string
}

// EnrollmentStats maps each status to its entry count for one tenant.
type EnrollmentStats map[domain.EnrollmentStatus]int64

// EnrollmentService is the cross-tenant resident/tenant relationship ledger.
type EnrollmentService interface {
	Enroll(ctx context.Context, in EnrollInput) (*domain.Enrollment, error)
	Update(ctx context.Context, tenantID, residentID string, in UpdateEnrollmentInput) (*domain.Enrollment, error)
	Get(ctx context.Context, tenantID, residentID string) (*domain.Enrollment, error)
	ListByHouse(ctx context.Context, tenantID, houseID string) ([]*domain.Enrollment, error)
	ListActive(ctx context.Context, tenantID string) ([]*domain.Enrollment, error)
	CountByStatus(ctx context.Context, tenantID string) (EnrollmentStats, error)
	ListByResident(ctx context.Context, residentID string) ([]*domain.Enrollment, error)
	// CheckResidentAccess enforces the resident-path gate: an enrollment for
	// (tenant, resident) must exist with a granting status.
	CheckResidentAccess(ctx context.Context, tenantID, residentID string) error
}

// --- Join requests ---

// JoinRequestInput carries the optional fields of a self-service request.
type JoinRequestInput struct {
	Message           string
	DesiredMoveInDate time.Time
}

// DecideInput carries a staff decision. ResidentID may supply the resident
// link when neither the request nor the profile has one.
type DecideInput struct {
	Approve    bool
	ResidentID string
}

// JoinRequestService runs the pending → approved/denied state machine.
type JoinRequestService interface {
	RequestJoin(ctx context.Context, p domain.Principal, tenantID string, in JoinRequestInput) (*domain.JoinRequest, error)
	ListPending(ctx context.Context, tenantID string) ([]*domain.JoinRequest, error)
	Decide(ctx context.Context, caller domain.Principal, tenantID, uid string, in DecideInput) (*domain.JoinRequest, error)
}

// --- Cross-tenant feed ---

// FeedItem is one event in a resident's merged cross-tenant feed.
type FeedItem struct {
	TenantID    string    `json:"tenant_id"`
	EventID     string    `json:"event_id"`
	HouseID     string    `json:"house_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
}

// FeedService assembles the merged event feed across every tenant a
// resident is enrolled in.
type FeedService interface {
	Feed(ctx context.Context, p domain.Principal, from time.Time) ([]FeedItem, error)
}
