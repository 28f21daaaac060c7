package domain

import "time"

// JoinRequestStatus is the state of a self-service enrollment request.
// pending → approved and pending → denied are the only transitions;
// approved and denied are terminal.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestDenied   JoinRequestStatus = "denied"
)

// Terminal reports whether no further transition is allowed.
func (s JoinRequestStatus) Terminal() bool {
	return s == JoinRequestApproved || s == JoinRequestDenied
}

// JoinRequestKey builds the document id. One request per (principal, tenant)
// pair: resubmission overwrites rather than duplicating.
func JoinRequestKey(tenantID, uid string) string {
	return tenantID + ":" + uid
}

// JoinRequest is a resident-initiated, staff-approved request to begin an
// enrollment in a tenant's program.
type JoinRequest struct {
	ID                string            `json:"-" bson:"_id"`
	TenantID          string            `json:"tenant_id" bson:"tenant_id"`
	UID               string            `json:"uid" bson:"uid"`
	Email             string            `json:"email" bson:"email"`
	DisplayName       string            `json:"display_name" bson:"display_name"`
	ResidentID        string            `json:"resident_id,omitempty" bson:"resident_id,omitempty"`
	Message           string            `json:"message,omitempty" bson:"message,omitempty"`
	DesiredMoveInDate time.Time         `json:"desired_move_in_date,omitempty" bson:"desired_move_in_date,omitempty"`
	Status            JoinRequestStatus `json:"status" bson:"status"`
	CreatedAt         time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" bson:"updated_at"`
}
