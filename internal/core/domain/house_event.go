package domain

import "time"

// HouseEvent is a tenant-partitioned calendar entry (house meeting, outing,
// drug test window). Event ids are tenant-scoped: a cross-tenant merge must
// key on (tenant_id, id).
type HouseEvent struct {
	ID          string    `json:"id" bson:"_id"`
	TenantID    string    `json:"tenant_id" bson:"tenant_id"`
	HouseID     string    `json:"house_id,omitempty" bson:"house_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt      time.Time `json:"ends_at,omitempty" bson:"ends_at,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
