package domain

import "testing"

func TestTenantStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to TenantStatus
	}{
		{TenantTrial, TenantPending},
		{TenantTrial, TenantApproved},
		{TenantTrial, TenantRejected},
		{TenantTrial, TenantActive},
		{TenantTrial, TenantInactive},
		{TenantPending, TenantApproved},
		{TenantPending, TenantRejected},
		{TenantApproved, TenantActive},
		{TenantApproved, TenantSuspended},
		{TenantActive, TenantSuspended},
		{TenantActive, TenantInactive},
		{TenantSuspended, TenantActive},
		{TenantSuspended, TenantInactive},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to TenantStatus
	}{
		{TenantRejected, TenantApproved},
		{TenantRejected, TenantActive},
		{TenantInactive, TenantActive},
		{TenantActive, TenantApproved},
		{TenantSuspended, TenantApproved},
		{TenantPending, TenantActive},
	}
	for _, tc := range denied {
		if tc.from.CanTransitionTo(tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("  Serenity-House "); got != "serenity-house" {
		t.Fatalf("NormalizeSlug = %q", got)
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"serenity-house", "house2", "a", "x-1-y"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	invalid := []string{"", "Serenity", "has space", "under_score", "café", "a/b"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}
