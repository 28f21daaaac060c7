package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

type claimsService struct {
	repo  ports.ClaimsRepository
	cache ports.ClaimsVersionCache
	log   zerolog.Logger
}

// NewClaimsService returns a ClaimsService implementation.
func NewClaimsService(repo ports.ClaimsRepository, cache ports.ClaimsVersionCache, log zerolog.Logger) ports.ClaimsService {
	return &claimsService{repo: repo, cache: cache, log: log}
}

// SetClaims overwrites the target principal's role/tenant assignment.
// Only a super_admin may change another principal's claims or touch the
// privileged fields of its own; self-service writes must leave role and
// tenant exactly as they are.
func (s *claimsService) SetClaims(ctx context.Context, caller domain.Principal, targetUID string, in ports.SetClaimsInput) (*domain.Claims, error) {
	if in.Role != "" && !in.Role.Valid() {
		return nil, fmt.Errorf("set claims: %w: unknown role %q", domain.ErrInvalidArgument, in.Role)
	}

	if !caller.IsSuperAdmin() {
		if caller.UID != targetUID {
			return nil, domain.ErrForbidden
		}
		// The stored record is the source of truth, not the presented
		// credential: a stale token must not be able to roll a newer
		// assignment back to the values it was issued with.
		var currentRole domain.Role
		var currentTenant string
		current, err := s.repo.Get(ctx, targetUID)
		switch {
		case err == nil:
			currentRole = current.Role
			currentTenant = current.TenantID
		case errors.Is(err, domain.ErrClaimsNotFound):
			// No record yet: only an empty assignment is an identity write.
		default:
			return nil, fmt.Errorf("set claims: %w", err)
		}
		if in.Role != currentRole || in.TenantID != currentTenant {
			return nil, domain.ErrForbidden
		}
	}

	claims, err := s.repo.Set(ctx, targetUID, in.TenantID, in.Role)
	if err != nil {
		return nil, fmt.Errorf("set claims: %w", err)
	}

	// Push the new version so the auth middleware can flag stale tokens.
	// The write itself succeeded; a cache miss only delays the signal.
	if err := s.cache.SetVersion(ctx, targetUID, claims.Version); err != nil {
		s.log.Warn().Err(err).Str("uid", targetUID).Msg("failed to publish claims version")
	}

	s.log.Info().
		Str("uid", targetUID).
		Str("caller", caller.UID).
		Str("role", string(claims.Role)).
		Str("tenant_id", claims.TenantID).
		Int64("version", claims.Version).
		Msg("claims updated")

	return claims, nil
}

// GetClaims returns the current claims record for a principal. Callers may
// read only their own record unless they are super_admin.
func (s *claimsService) GetClaims(ctx context.Context, caller domain.Principal, uid string) (*domain.Claims, error) {
	if caller.UID != uid && !caller.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	claims, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get claims: %w", err)
	}
	return claims, nil
}
