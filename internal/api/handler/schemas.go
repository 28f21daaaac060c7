package handler

import (
	"time"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=120"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Account *domain.Account `json:"account,omitempty"`
}

// --- Claims ---

type setClaimsRequest struct {
	TenantID string `json:"tenant_id" validate:"omitempty,max=64"`
	Role     string `json:"role"      validate:"omitempty,oneof=resident staff house_manager staff_admin tenant_admin super_admin"`
}

// --- Profiles ---

type updateProfileRequest struct {
	DisplayName   *string                         `json:"display_name"   validate:"omitempty,max=120"`
	PhotoURL      *string                         `json:"photo_url"      validate:"omitempty,url"`
	SobrietyDate  *time.Time                      `json:"sobriety_date"`
	RecoveryGoals []string                        `json:"recovery_goals" validate:"omitempty,dive,max=240"`
	Notifications *domain.NotificationPreferences `json:"notifications"`
}

type linkResidentRequest struct {
	ResidentID string `json:"resident_id" validate:"required"`
}

type createResidentRequest struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"required,max=120"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

// --- Tenants ---

type createTenantRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	Slug string `json:"slug" validate:"required,max=64"`
}

type rejectTenantRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// --- Enrollments ---

type enrollRequest struct {
	ResidentID        string     `json:"resident_id"         validate:"required"`
	HouseID           string     `json:"house_id"`
	RoomID            string     `json:"room_id"`
	BedID             string     `json:"bed_id"`
	Status            string     `json:"status"              validate:"omitempty,oneof=waitlist active graduated discharged"`
	Phase             int        `json:"phase"               validate:"omitempty,min=1,max=4"`
	SobrietyStartDate *time.Time `json:"sobriety_start_date"`
	MoveInDate        *time.Time `json:"move_in_date"`
}

type updateEnrollmentRequest struct {
	HouseID           *string    `json:"house_id"`
	RoomID            *string    `json:"room_id"`
	BedID             *string    `json:"bed_id"`
	Status            *string    `json:"status" validate:"omitempty,oneof=waitlist active graduated discharged"`
	Phase             *int       `json:"phase"  validate:"omitempty,min=1,max=4"`
	SobrietyStartDate *time.Time `json:"sobriety_start_date"`
	MoveInDate        *time.Time `json:"move_in_date"`
	MoveOutDate       *time.Time `json:"move_out_date"`
	DischargeReason   *string    `json:"discharge_reason" validate:"omitempty,max=500"`
}

// --- Join requests ---

type joinRequestRequest struct {
	Message           string     `json:"message"              validate:"omitempty,max=1000"`
	DesiredMoveInDate *time.Time `json:"desired_move_in_date"`
}

type decideJoinRequestRequest struct {
	Action     string `json:"action"      validate:"required,oneof=approve deny"`
	ResidentID string `json:"resident_id" validate:"omitempty,max=64"`
}

// --- Events ---

type createEventRequest struct {
	HouseID     string     `json:"house_id"`
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	StartsAt    time.Time  `json:"starts_at"   validate:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}
