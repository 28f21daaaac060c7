package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

func TestEnrollmentService_Enroll_Defaults(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo(), zerolog.Nop())

	e, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t1", ResidentID: "r1"})
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if e.Status != domain.EnrollmentWaitlist {
		t.Errorf("status = %s, want waitlist default", e.Status)
	}
	if e.Phase != 1 {
		t.Errorf("phase = %d, want 1 default", e.Phase)
	}
	if e.ID != "t1:r1" {
		t.Errorf("id = %q, want composite key", e.ID)
	}
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo(), zerolog.Nop())

	if _, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t1", ResidentID: "r1"}); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t1", ResidentID: "r1", HouseID: "h2"})
	if !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}

	// The same resident in a different tenant is a separate ledger entry.
	if _, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t2", ResidentID: "r1"}); err != nil {
		t.Fatalf("cross-tenant enroll should succeed: %v", err)
	}
}

func TestEnrollmentService_Enroll_InvalidPhase(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo(), zerolog.Nop())

	for _, phase := range []int{-1, 5, 99} {
		_, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t1", ResidentID: "r1", Phase: phase})
		if !errors.Is(err, domain.ErrInvalidPhase) {
			t.Errorf("phase %d: expected ErrInvalidPhase, got %v", phase, err)
		}
	}
}

func TestEnrollmentService_Update_Discharge(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := NewEnrollmentService(repo, zerolog.Nop())

	if _, err := svc.Enroll(context.Background(), ports.EnrollInput{TenantID: "t1", ResidentID: "r1", Status: domain.EnrollmentActive}); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	discharged := domain.EnrollmentDischarged
	reason := "rule violation"
	e, err := svc.Update(context.Background(), "t1", "r1", ports.UpdateEnrollmentInput{
		Status:          &discharged,
		DischargeReason: &reason,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if e.Status != domain.EnrollmentDischarged {
		t.Errorf("status = %s", e.Status)
	}
	if e.DischargeReason != reason {
		t.Errorf("discharge_reason = %q", e.DischargeReason)
	}

	// Discharge keeps the entry: the ledger is append-only in spirit.
	if _, err := svc.Get(context.Background(), "t1", "r1"); err != nil {
		t.Fatalf("discharged entry should still exist: %v", err)
	}
}

func TestEnrollmentService_CountByStatus(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo(), zerolog.Nop())
	ctx := context.Background()

	seed := []struct {
		resident string
		status   domain.EnrollmentStatus
	}{
		{"r1", domain.EnrollmentActive},
		{"r2", domain.EnrollmentActive},
		{"r3", domain.EnrollmentWaitlist},
		{"r4", domain.EnrollmentDischarged},
	}
	for _, s := range seed {
		if _, err := svc.Enroll(ctx, ports.EnrollInput{TenantID: "t1", ResidentID: s.resident, Status: s.status}); err != nil {
			t.Fatalf("enroll %s: %v", s.resident, err)
		}
	}

	stats, err := svc.CountByStatus(ctx, "t1")
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	want := ports.EnrollmentStats{
		domain.EnrollmentActive:     2,
		domain.EnrollmentWaitlist:   1,
		domain.EnrollmentGraduated:  0,
		domain.EnrollmentDischarged: 1,
	}
	for status, n := range want {
		if stats[status] != n {
			t.Errorf("stats[%s] = %d, want %d", status, stats[status], n)
		}
	}
}

func TestEnrollmentService_CheckResidentAccess(t *testing.T) {
	svc := NewEnrollmentService(newStubEnrollmentRepo(), zerolog.Nop())
	ctx := context.Background()

	seed := []struct {
		resident string
		status   domain.EnrollmentStatus
	}{
		{"active", domain.EnrollmentActive},
		{"waitlist", domain.EnrollmentWaitlist},
		{"graduated", domain.EnrollmentGraduated},
		{"discharged", domain.EnrollmentDischarged},
	}
	for _, s := range seed {
		if _, err := svc.Enroll(ctx, ports.EnrollInput{TenantID: "t1", ResidentID: s.resident, Status: s.status}); err != nil {
			t.Fatalf("enroll %s: %v", s.resident, err)
		}
	}

	if err := svc.CheckResidentAccess(ctx, "t1", "active"); err != nil {
		t.Errorf("active enrollment should grant access: %v", err)
	}
	if err := svc.CheckResidentAccess(ctx, "t1", "waitlist"); err != nil {
		t.Errorf("waitlist enrollment should grant access: %v", err)
	}
	for _, resident := range []string{"graduated", "discharged"} {
		if err := svc.CheckResidentAccess(ctx, "t1", resident); !errors.Is(err, domain.ErrEnrollmentDischarged) {
			t.Errorf("%s: expected ErrEnrollmentDischarged, got %v", resident, err)
		}
	}

	// Missing enrollment reads as forbidden, not as not-found.
	if err := svc.CheckResidentAccess(ctx, "t1", "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("missing enrollment: expected ErrForbidden, got %v", err)
	}
	if err := svc.CheckResidentAccess(ctx, "t2", "active"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("wrong tenant: expected ErrForbidden, got %v", err)
	}
}
