package domain

import "time"

// Claims is the role/tenant assignment embedded in future credentials issued
// to a principal. Claims are the source of truth for authorization but are
// cached inside the credential until refreshed: callers must tolerate the
// staleness window. Version increments on every write so stale credentials
// can be detected.
type Claims struct {
	UID       string    `json:"uid" bson:"_id"`
	TenantID  string    `json:"tenant_id,omitempty" bson:"tenant_id,omitempty"`
	Role      Role      `json:"role,omitempty" bson:"role,omitempty"`
	Version   int64     `json:"version" bson:"version"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Account models a login credential record backing the token issuer.
type Account struct {
	UID          string    `json:"uid" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"display_name" bson:"display_name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
