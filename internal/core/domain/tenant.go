package domain

import (
	"regexp"
	"strings"
	"time"
)

// TenantStatus represents the lifecycle state of an operator organization.
type TenantStatus string

const (
	TenantTrial     TenantStatus = "trial"
	TenantPending   TenantStatus = "pending"
	TenantApproved  TenantStatus = "approved"
	TenantRejected  TenantStatus = "rejected"
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
	TenantInactive  TenantStatus = "inactive"
)

// tenantTransitions defines the allowed status state machine. New tenants
// start in trial, so the reviewer decisions admit trial directly as well as
// the explicit pending queue.
var tenantTransitions = map[TenantStatus][]TenantStatus{
	TenantTrial:     {TenantPending, TenantApproved, TenantRejected, TenantActive, TenantInactive},
	TenantPending:   {TenantApproved, TenantRejected},
	TenantApproved:  {TenantActive, TenantSuspended},
	TenantActive:    {TenantSuspended, TenantInactive},
	TenantSuspended: {TenantActive, TenantInactive},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s TenantStatus) CanTransitionTo(next TenantStatus) bool {
	for _, allowed := range tenantTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// NormalizeSlug case-folds a slug. Folding happens at write time and on
// every lookup so uniqueness is effectively case-insensitive.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// ValidSlug reports whether a normalized slug matches ^[a-z0-9-]+$.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// TenantSettings holds per-organization configuration knobs.
type TenantSettings struct {
	Timezone       string `json:"timezone,omitempty" bson:"timezone,omitempty"`
	CurfewTime     string `json:"curfew_time,omitempty" bson:"curfew_time,omitempty"`
	DrugTestPolicy string `json:"drug_test_policy,omitempty" bson:"drug_test_policy,omitempty"`
}

// TenantSubscription tracks the billing plan. Billing itself is external.
type TenantSubscription struct {
	Plan      string    `json:"plan,omitempty" bson:"plan,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// Tenant is one customer organization (a sober-living operator) with its
// own isolated data partition.
type Tenant struct {
	ID           string             `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Slug         string             `json:"slug" bson:"slug"`
	OwnerUID     string             `json:"owner_uid" bson:"owner_uid"`
	Status       TenantStatus       `json:"status" bson:"status"`
	Settings     TenantSettings     `json:"settings" bson:"settings"`
	Subscription TenantSubscription `json:"subscription" bson:"subscription"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
