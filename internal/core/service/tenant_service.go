package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

type tenantService struct {
	tenants ports.TenantRepository
	claims  ports.ClaimsRepository
	cache   ports.ClaimsVersionCache
	log     zerolog.Logger
}

// NewTenantService returns a TenantService implementation. Tenant creation
// and approval are coupled to claims grants by design: a new operator must
// gain capabilities on its own tenant without waiting for manual assignment.
func NewTenantService(tenants ports.TenantRepository, claims ports.ClaimsRepository, cache ports.ClaimsVersionCache, log zerolog.Logger) ports.TenantService {
	return &tenantService{tenants: tenants, claims: claims, cache: cache, log: log}
}

// Create registers a new organization. The slug is case-folded before
// validation and storage, so uniqueness is case-insensitive end to end.
// The owner receives tenant_admin claims for the new tenant; the owner's
// current credential stays stale until refreshed.
func (s *tenantService) Create(ctx context.Context, in ports.CreateTenantInput) (*domain.Tenant, error) {
	if in.Name == "" || in.OwnerUID == "" {
		return nil, fmt.Errorf("create tenant: %w: name and owner are required", domain.ErrInvalidArgument)
	}
	slug := domain.NormalizeSlug(in.Slug)
	if !domain.ValidSlug(slug) {
		return nil, fmt.Errorf("create tenant: %w", domain.ErrInvalidSlug)
	}

	now := time.Now().UTC()
	t := &domain.Tenant{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Slug:      slug,
		OwnerUID:  in.OwnerUID,
		Status:    domain.TenantTrial,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	if err := s.grantOwnerClaims(ctx, t, domain.RoleTenantAdmin); err != nil {
		// The tenant exists; the grant is retried via approve or a manual
		// claims write. Surface loudly rather than failing the create.
		s.log.Error().Err(err).Str("tenant_id", t.ID).Str("owner_uid", t.OwnerUID).Msg("owner claims grant failed")
	}

	s.log.Info().Str("tenant_id", t.ID).Str("slug", t.Slug).Str("owner_uid", t.OwnerUID).Msg("tenant created")
	return t, nil
}

func (s *tenantService) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	t, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// GetBySlug supports vanity lookups. The input is folded the same way slugs
// are folded at write time.
func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	t, err := s.tenants.FindBySlug(ctx, domain.NormalizeSlug(slug))
	if err != nil {
		return nil, fmt.Errorf("get tenant by slug: %w", err)
	}
	return t, nil
}

// Approve moves a pending tenant to approved and grants the owner dashboard
// access: tenant_id is always set, the role defaults to tenant_admin but a
// pre-existing role on the owner is preserved.
func (s *tenantService) Approve(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error) {
	t, err := s.transition(ctx, caller, tenantID, domain.TenantApproved, "")
	if err != nil {
		return nil, err
	}

	role := domain.RoleTenantAdmin
	if existing, err := s.claims.Get(ctx, t.OwnerUID); err == nil && existing.Role.Valid() {
		role = existing.Role
	}
	if err := s.grantOwnerClaims(ctx, t, role); err != nil {
		s.log.Error().Err(err).Str("tenant_id", t.ID).Msg("owner claims grant on approval failed")
	}
	return t, nil
}

func (s *tenantService) Reject(ctx context.Context, caller domain.Principal, tenantID, reason string) (*domain.Tenant, error) {
	return s.transition(ctx, caller, tenantID, domain.TenantRejected, reason)
}

func (s *tenantService) Suspend(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error) {
	return s.transition(ctx, caller, tenantID, domain.TenantSuspended, "")
}

func (s *tenantService) Activate(ctx context.Context, caller domain.Principal, tenantID string) (*domain.Tenant, error) {
	return s.transition(ctx, caller, tenantID, domain.TenantActive, "")
}

// transition applies a super-admin-only status change, validated against the
// tenant status state machine.
func (s *tenantService) transition(ctx context.Context, caller domain.Principal, tenantID string, next domain.TenantStatus, reason string) (*domain.Tenant, error) {
	if !caller.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}

	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant transition: %w", err)
	}
	if !t.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("tenant transition: %w (from %s to %s)", domain.ErrInvalidTenantTransition, t.Status, next)
	}

	if err := s.tenants.UpdateStatus(ctx, tenantID, next, reason); err != nil {
		return nil, fmt.Errorf("tenant transition: %w", err)
	}

	s.log.Info().
		Str("tenant_id", tenantID).
		Str("caller", caller.UID).
		Str("from", string(t.Status)).
		Str("to", string(next)).
		Msg("tenant status changed")

	t.Status = next
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

func (s *tenantService) grantOwnerClaims(ctx context.Context, t *domain.Tenant, role domain.Role) error {
	claims, err := s.claims.Set(ctx, t.OwnerUID, t.ID, role)
	if err != nil {
		return err
	}
	if err := s.cache.SetVersion(ctx, t.OwnerUID, claims.Version); err != nil {
		s.log.Warn().Err(err).Str("uid", t.OwnerUID).Msg("failed to publish claims version")
	}
	return nil
}
