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

type enrollmentService struct {
	repo ports.EnrollmentRepository
	log  zerolog.Logger
}

// NewEnrollmentService returns an EnrollmentService implementation.
func NewEnrollmentService(repo ports.EnrollmentRepository, log zerolog.Logger) ports.EnrollmentService {
	return &enrollmentService{repo: repo, log: log}
}

// Enroll creates the ledger entry for a (tenant, resident) pair. The entry
// id is derived from both ids, so a second enrollment for the same pair
// fails with a conflict at the storage layer regardless of timing.
func (s *enrollmentService) Enroll(ctx context.Context, in ports.EnrollInput) (*domain.Enrollment, error) {
	if in.TenantID == "" || in.ResidentID == "" {
		return nil, fmt.Errorf("enroll: %w: tenant and resident ids are required", domain.ErrInvalidArgument)
	}

	status := in.Status
	if status == "" {
		status = domain.EnrollmentWaitlist
	}
	phase := in.Phase
	if phase == 0 {
		phase = 1
	}
	if phase < 1 || phase > 4 {
		return nil, fmt.Errorf("enroll: %w", domain.ErrInvalidPhase)
	}

	now := time.Now().UTC()
	e := &domain.Enrollment{
		ID:                domain.EnrollmentKey(in.TenantID, in.ResidentID),
		TenantID:          in.TenantID,
		ResidentID:        in.ResidentID,
		HouseID:           in.HouseID,
		RoomID:            in.RoomID,
		BedID:             in.BedID,
		Status:            status,
		Phase:             phase,
		SobrietyStartDate: in.SobrietyStartDate,
		MoveInDate:        in.MoveInDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}

	metrics.EnrollmentsCreatedTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("tenant_id", in.TenantID).
		Str("resident_id", in.ResidentID).
		Str("status", string(status)).
		Msg("enrollment created")

	return e, nil
}

// Update mutates placement, status, phase and date fields. Discharge is a
// status change, never a delete. Bed capacity and discharge-reason
// consistency are caller responsibilities.
func (s *enrollmentService) Update(ctx context.Context, tenantID, residentID string, in ports.UpdateEnrollmentInput) (*domain.Enrollment, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if in.HouseID != nil {
		fields["house_id"] = *in.HouseID
	}
	if in.RoomID != nil {
		fields["room_id"] = *in.RoomID
	}
	if in.BedID != nil {
		fields["bed_id"] = *in.BedID
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Phase != nil {
		if *in.Phase < 1 || *in.Phase > 4 {
			return nil, fmt.Errorf("update enrollment: %w", domain.ErrInvalidPhase)
		}
		fields["phase"] = *in.Phase
	}
	if in.SobrietyStartDate != nil {
		fields["sobriety_start_date"] = *in.SobrietyStartDate
	}
	if in.MoveInDate != nil {
		fields["move_in_date"] = *in.MoveInDate
	}
	if in.MoveOutDate != nil {
		fields["move_out_date"] = *in.MoveOutDate
	}
	if in.DischargeReason != nil {
		fields["discharge_reason"] = *in.DischargeReason
	}

	if err := s.repo.UpdateFields(ctx, tenantID, residentID, fields); err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	e, err := s.repo.Find(ctx, tenantID, residentID)
	if err != nil {
		return nil, fmt.Errorf("update enrollment: %w", err)
	}

	s.log.Info().Str("tenant_id", tenantID).Str("resident_id", residentID).Msg("enrollment updated")
	return e, nil
}

func (s *enrollmentService) Get(ctx context.Context, tenantID, residentID string) (*domain.Enrollment, error) {
	e, err := s.repo.Find(ctx, tenantID, residentID)
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return e, nil
}

func (s *enrollmentService) ListByHouse(ctx context.Context, tenantID, houseID string) ([]*domain.Enrollment, error) {
	return s.repo.ListByHouse(ctx, tenantID, houseID)
}

func (s *enrollmentService) ListActive(ctx context.Context, tenantID string) ([]*domain.Enrollment, error) {
	return s.repo.ListByStatus(ctx, tenantID, domain.EnrollmentActive)
}

// CountByStatus fans out one count query per status value. The status
// domain is small and fixed, so four counts is acceptable.
func (s *enrollmentService) CountByStatus(ctx context.Context, tenantID string) (ports.EnrollmentStats, error) {
	stats := make(ports.EnrollmentStats, len(domain.EnrollmentStatuses))
	for _, status := range domain.EnrollmentStatuses {
		n, err := s.repo.CountByStatus(ctx, tenantID, status)
		if err != nil {
			return nil, fmt.Errorf("count by status: %w", err)
		}
		stats[status] = n
	}
	return stats, nil
}

func (s *enrollmentService) ListByResident(ctx context.Context, residentID string) ([]*domain.Enrollment, error) {
	return s.repo.ListByResident(ctx, residentID)
}

// CheckResidentAccess is the resident-path gate: the (tenant, resident) pair
// must have an enrollment whose status grants access. A discharged or
// graduated enrollment fails closed, and a missing enrollment reads the same
// as a forbidden one.
func (s *enrollmentService) CheckResidentAccess(ctx context.Context, tenantID, residentID string) error {
	e, err := s.repo.Find(ctx, tenantID, residentID)
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("check resident access: %w", err)
	}
	if !e.Status.Grants() {
		return domain.ErrEnrollmentDischarged
	}
	return nil
}
