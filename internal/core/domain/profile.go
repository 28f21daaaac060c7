package domain

import (
	"strings"
	"time"
)

// NotificationPreferences controls which channels a profile receives.
type NotificationPreferences struct {
	Chores    bool `json:"chores" bson:"chores"`
	Events    bool `json:"events" bson:"events"`
	Reminders bool `json:"reminders" bson:"reminders"`
}

// DefaultNotificationPreferences enables every channel.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{Chores: true, Events: true, Reminders: true}
}

// Profile is the login-identity-scoped record, one per principal, global
// across tenants. The document key is the principal uid, which is what makes
// just-in-time provisioning idempotent under concurrent first contact.
type Profile struct {
	UID           string                  `json:"uid" bson:"_id"`
	Email         string                  `json:"email" bson:"email"`
	DisplayName   string                  `json:"display_name" bson:"display_name"`
	PhotoURL      string                  `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	ResidentID    string                  `json:"resident_id,omitempty" bson:"resident_id,omitempty"`
	TenantIDs     []string                `json:"tenant_ids" bson:"tenant_ids"`
	RecoveryGoals []string                `json:"recovery_goals" bson:"recovery_goals"`
	SobrietyDate  time.Time               `json:"sobriety_date,omitempty" bson:"sobriety_date,omitempty"`
	Notifications NotificationPreferences `json:"notifications" bson:"notifications"`
	CreatedAt     time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at" bson:"updated_at"`
}

// DisplayNameFallback derives a display name from an email address when the
// credential carries none: the local part before the '@'.
func DisplayNameFallback(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// Resident is a clinical/person record independent of login identity.
// Multiple tenants can reference the same resident through separate
// enrollment entries.
type Resident struct {
	ID         string    `json:"id" bson:"_id"`
	FirstName  string    `json:"first_name" bson:"first_name"`
	LastName   string    `json:"last_name" bson:"last_name"`
	Email      string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string    `json:"phone,omitempty" bson:"phone,omitempty"`
	AccountUID string    `json:"account_uid,omitempty" bson:"account_uid,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}
