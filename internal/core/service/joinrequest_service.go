package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/api/metrics"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

type joinRequestService struct {
	requests    ports.JoinRequestRepository
	tenants     ports.TenantRepository
	profiles    ports.ProfileRepository
	enrollments ports.EnrollmentService
	log         zerolog.Logger
}

// NewJoinRequestService returns a JoinRequestService implementation.
func NewJoinRequestService(
	requests ports.JoinRequestRepository,
	tenants ports.TenantRepository,
	profiles ports.ProfileRepository,
	enrollments ports.EnrollmentService,
	log zerolog.Logger,
) ports.JoinRequestService {
	return &joinRequestService{
		requests:    requests,
		tenants:     tenants,
		profiles:    profiles,
		enrollments: enrollments,
		log:         log,
	}
}

// RequestJoin records a resident principal's request to join a tenant's
// program. The document is keyed by (tenant, uid), so resubmission
// overwrites the previous pending request instead of duplicating it.
func (s *joinRequestService) RequestJoin(ctx context.Context, p domain.Principal, tenantID string, in ports.JoinRequestInput) (*domain.JoinRequest, error) {
	if p.Role != domain.RoleResident {
		return nil, domain.ErrForbidden
	}
	if _, err := s.tenants.FindByID(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("request join: %w", err)
	}

	// Only a pending request may be overwritten. Approved and denied are
	// terminal: a resubmission must not pull a decided request back to
	// pending (an approved request would lose its tie to the enrollment).
	if existing, err := s.requests.Find(ctx, tenantID, p.UID); err == nil {
		if existing.Status.Terminal() {
			return nil, fmt.Errorf("request join: %w", domain.ErrRequestAlreadyDecided)
		}
	} else if !errors.Is(err, domain.ErrJoinRequestNotFound) {
		return nil, fmt.Errorf("request join: %w", err)
	}

	var residentID string
	if profile, err := s.profiles.FindByUID(ctx, p.UID); err == nil {
		residentID = profile.ResidentID
	}

	now := time.Now().UTC()
	r := &domain.JoinRequest{
		ID:                domain.JoinRequestKey(tenantID, p.UID),
		TenantID:          tenantID,
		UID:               p.UID,
		Email:             p.Email,
		DisplayName:       p.DisplayName,
		ResidentID:        residentID,
		Message:           in.Message,
		DesiredMoveInDate: in.DesiredMoveInDate,
		Status:            domain.JoinRequestPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.requests.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("request join: %w", err)
	}

	s.log.Info().Str("tenant_id", tenantID).Str("uid", p.UID).Msg("join request submitted")
	return r, nil
}

func (s *joinRequestService) ListPending(ctx context.Context, tenantID string) ([]*domain.JoinRequest, error) {
	return s.requests.ListPending(ctx, tenantID)
}

// Decide applies a staff decision to a pending request. Approval requires a
// resolvable resident id and creates the enrollment before the request is
// marked approved: a successful approval is causally tied to an enrollment
// actually existing, and an enrollment failure leaves the request pending
// with the error surfaced.
func (s *joinRequestService) Decide(ctx context.Context, caller domain.Principal, tenantID, uid string, in ports.DecideInput) (*domain.JoinRequest, error) {
	if err := domain.Authorize(caller, tenantID, domain.CapWrite); err != nil {
		return nil, err
	}

	r, err := s.requests.Find(ctx, tenantID, uid)
	if err != nil {
		return nil, fmt.Errorf("decide join request: %w", err)
	}
	if r.Status.Terminal() {
		return nil, fmt.Errorf("decide join request: %w", domain.ErrRequestAlreadyDecided)
	}

	if !in.Approve {
		if err := s.requests.SetStatus(ctx, tenantID, uid, domain.JoinRequestDenied); err != nil {
			return nil, fmt.Errorf("decide join request: %w", err)
		}
		metrics.JoinRequestDecisionsTotal.WithLabelValues("denied").Inc()
		s.log.Info().Str("tenant_id", tenantID).Str("uid", uid).Str("caller", caller.UID).Msg("join request denied")
		r.Status = domain.JoinRequestDenied
		return r, nil
	}

	residentID, err := s.resolveResidentID(ctx, r, in.ResidentID)
	if err != nil {
		return nil, err
	}

	// Enroll first. Only once the ledger entry exists does the request flip
	// to approved, so the approved state always implies an enrollment.
	if _, err := s.enrollments.Enroll(ctx, ports.EnrollInput{
		TenantID:   tenantID,
		ResidentID: residentID,
		Status:     domain.EnrollmentWaitlist,
		Phase:      1,
	}); err != nil {
		return nil, err
	}

	if err := s.requests.SetStatus(ctx, tenantID, uid, domain.JoinRequestApproved); err != nil {
		// The enrollment exists but the request is still pending. A retried
		// approve hits the already-enrolled conflict, which is visible and
		// correctable rather than silently inconsistent.
		return nil, fmt.Errorf("decide join request: %w", err)
	}

	metrics.JoinRequestDecisionsTotal.WithLabelValues("approved").Inc()
	s.log.Info().
		Str("tenant_id", tenantID).
		Str("uid", uid).
		Str("resident_id", residentID).
		Str("caller", caller.UID).
		Msg("join request approved")

	r.Status = domain.JoinRequestApproved
	r.ResidentID = residentID
	return r, nil
}

// resolveResidentID finds the resident the approval should enroll: the
// approver's explicit choice, then the request itself, then the requester's
// profile link. With none of the three, the approver must link the account
// to a resident record first.
func (s *joinRequestService) resolveResidentID(ctx context.Context, r *domain.JoinRequest, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if r.ResidentID != "" {
		return r.ResidentID, nil
	}
	profile, err := s.profiles.FindByUID(ctx, r.UID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return "", fmt.Errorf("decide join request: %w", err)
	}
	if profile != nil && profile.ResidentID != "" {
		return profile.ResidentID, nil
	}
	return "", domain.ErrResidentNotLinked
}
