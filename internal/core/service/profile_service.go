package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

type profileService struct {
	profiles  ports.ProfileRepository
	residents ports.ResidentRepository
	log       zerolog.Logger
}

// NewProfileService returns a ProfileService implementation.
func NewProfileService(profiles ports.ProfileRepository, residents ports.ResidentRepository, log zerolog.Logger) ports.ProfileService {
	return &profileService{profiles: profiles, residents: residents, log: log}
}

// Create explicitly registers a profile for a principal.
func (s *profileService) Create(ctx context.Context, uid string, in ports.CreateProfileInput) (*domain.Profile, error) {
	if uid == "" || in.Email == "" {
		return nil, fmt.Errorf("create profile: %w: uid and email are required", domain.ErrInvalidArgument)
	}

	name := in.DisplayName
	if name == "" {
		name = domain.DisplayNameFallback(in.Email)
	}

	now := time.Now().UTC()
	p := &domain.Profile{
		UID:           uid,
		Email:         in.Email,
		DisplayName:   name,
		PhotoURL:      in.PhotoURL,
		TenantIDs:     []string{},
		RecoveryGoals: []string{},
		Notifications: domain.DefaultNotificationPreferences(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("uid", uid).Msg("profile created")
	return p, nil
}

// CreateResident registers a resident record. Residents exist independently
// of login accounts: staff create them at intake, and the record acquires an
// account uid only when linked to a profile later.
func (s *profileService) CreateResident(ctx context.Context, in ports.CreateResidentInput) (*domain.Resident, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("create resident: %w: first and last name are required", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	r := &domain.Resident{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.residents.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create resident: %w", err)
	}

	s.log.Info().Str("resident_id", r.ID).Msg("resident created")
	return r, nil
}

// FindOrCreate returns the principal's profile, provisioning one just in
// time from credential claims on first contact. The repository upsert is
// keyed by uid, so concurrent first requests resolve to a single canonical
// document.
func (s *profileService) FindOrCreate(ctx context.Context, p domain.Principal) (*domain.Profile, error) {
	name := p.DisplayName
	if name == "" {
		name = domain.DisplayNameFallback(p.Email)
	}

	now := time.Now().UTC()
	candidate := &domain.Profile{
		UID:           p.UID,
		Email:         p.Email,
		DisplayName:   name,
		TenantIDs:     []string{},
		RecoveryGoals: []string{},
		Notifications: domain.DefaultNotificationPreferences(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	stored, err := s.profiles.Upsert(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("find or create profile: %w", err)
	}
	return stored, nil
}

func (s *profileService) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	p, err := s.profiles.FindByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// LinkResident attaches a resident record to the profile and mirrors the
// uid onto the resident. The link is write-once from the API's point of
// view: there is no unlink operation.
func (s *profileService) LinkResident(ctx context.Context, uid, residentID string) error {
	if residentID == "" {
		return fmt.Errorf("link resident: %w: resident id is required", domain.ErrInvalidArgument)
	}

	if _, err := s.residents.FindByID(ctx, residentID); err != nil {
		return fmt.Errorf("link resident: %w", err)
	}
	if _, err := s.profiles.FindByUID(ctx, uid); err != nil {
		return fmt.Errorf("link resident: %w", err)
	}

	if err := s.profiles.UpdateFields(ctx, uid, map[string]any{"resident_id": residentID}); err != nil {
		return fmt.Errorf("link resident: %w", err)
	}
	if err := s.residents.SetAccountUID(ctx, residentID, uid); err != nil {
		s.log.Warn().Err(err).Str("resident_id", residentID).Msg("failed to mirror account uid onto resident")
	}

	s.log.Info().Str("uid", uid).Str("resident_id", residentID).Msg("resident linked")
	return nil
}

// Update merges the permitted self-service fields. ResidentID and TenantIDs
// are never writable through this path.
func (s *profileService) Update(ctx context.Context, uid string, in ports.UpdateProfileInput) (*domain.Profile, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if in.DisplayName != nil {
		fields["display_name"] = *in.DisplayName
	}
	if in.PhotoURL != nil {
		fields["photo_url"] = *in.PhotoURL
	}
	if in.SobrietyDate != nil {
		fields["sobriety_date"] = *in.SobrietyDate
	}
	if in.RecoveryGoals != nil {
		fields["recovery_goals"] = in.RecoveryGoals
	}
	if in.Notifications != nil {
		fields["notifications"] = *in.Notifications
	}

	if err := s.profiles.UpdateFields(ctx, uid, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	p, err := s.profiles.FindByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
