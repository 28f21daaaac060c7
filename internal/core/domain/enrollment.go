package domain

import "time"

// EnrollmentStatus represents the lifecycle state of a resident's
// participation in one tenant's program.
type EnrollmentStatus string

const (
	EnrollmentWaitlist   EnrollmentStatus = "waitlist"
	EnrollmentActive     EnrollmentStatus = "active"
	EnrollmentGraduated  EnrollmentStatus = "graduated"
	EnrollmentDischarged EnrollmentStatus = "discharged"
)

// EnrollmentStatuses lists the full, fixed status domain.
var EnrollmentStatuses = []EnrollmentStatus{
	EnrollmentWaitlist,
	EnrollmentActive,
	EnrollmentGraduated,
	EnrollmentDischarged,
}

// Grants reports whether the status allows resident-path access to the
// tenant's resources. Graduated and discharged fail closed.
func (s EnrollmentStatus) Grants() bool {
	return s == EnrollmentActive || s == EnrollmentWaitlist
}

// EnrollmentKey builds the ledger document id. Keying by tenant and resident
// makes the duplicate-enrollment check a conditional create at the storage
// layer rather than a read-then-write.
func EnrollmentKey(tenantID, residentID string) string {
	return tenantID + ":" + residentID
}

// Enrollment ties a resident to one tenant's program. Entries are never
// hard-deleted: discharge is a status, which preserves the audit trail.
type Enrollment struct {
	ID                string           `json:"-" bson:"_id"`
	TenantID          string           `json:"tenant_id" bson:"tenant_id"`
	ResidentID        string           `json:"resident_id" bson:"resident_id"`
	HouseID           string           `json:"house_id,omitempty" bson:"house_id,omitempty"`
	RoomID            string           `json:"room_id,omitempty" bson:"room_id,omitempty"`
	BedID             string           `json:"bed_id,omitempty" bson:"bed_id,omitempty"`
	Status            EnrollmentStatus `json:"status" bson:"status"`
	Phase             int              `json:"phase" bson:"phase"`
	SobrietyStartDate time.Time        `json:"sobriety_start_date,omitempty" bson:"sobriety_start_date,omitempty"`
	MoveInDate        time.Time        `json:"move_in_date,omitempty" bson:"move_in_date,omitempty"`
	MoveOutDate       time.Time        `json:"move_out_date,omitempty" bson:"move_out_date,omitempty"`
	DischargeReason   string           `json:"discharge_reason,omitempty" bson:"discharge_reason,omitempty"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" bson:"updated_at"`
}
