package service

import (
	"context"
	"errors"
	"time"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
)

// Map-backed in-memory repositories shared by the service tests. Every read
// returns a copy so tests cannot mutate stored state by accident.

// --- accounts ---

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return domain.ErrAccountExists
		}
	}
	r.accounts[a.UID] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUID(_ context.Context, uid string) (*domain.Account, error) {
	a, ok := r.accounts[uid]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

// --- claims ---

type stubClaimsRepo struct {
	records map[string]*domain.Claims
	failSet error
}

func newStubClaimsRepo() *stubClaimsRepo {
	return &stubClaimsRepo{records: make(map[string]*domain.Claims)}
}

func cloneClaims(c *domain.Claims) *domain.Claims {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClaimsRepo) Get(_ context.Context, uid string) (*domain.Claims, error) {
	c, ok := r.records[uid]
	if !ok {
		return nil, domain.ErrClaimsNotFound
	}
	return cloneClaims(c), nil
}

func (r *stubClaimsRepo) Set(_ context.Context, uid, tenantID string, role domain.Role) (*domain.Claims, error) {
	if r.failSet != nil {
		return nil, r.failSet
	}
	c, ok := r.records[uid]
	if !ok {
		c = &domain.Claims{UID: uid}
		r.records[uid] = c
	}
	c.TenantID = tenantID
	c.Role = role
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	return cloneClaims(c), nil
}

type stubClaimsCache struct {
	versions map[string]int64
	failSet  error
}

func newStubClaimsCache() *stubClaimsCache {
	return &stubClaimsCache{versions: make(map[string]int64)}
}

func (c *stubClaimsCache) CurrentVersion(_ context.Context, uid string) (int64, error) {
	return c.versions[uid], nil
}

func (c *stubClaimsCache) SetVersion(_ context.Context, uid string, version int64) error {
	if c.failSet != nil {
		return c.failSet
	}
	c.versions[uid] = version
	return nil
}

// --- profiles ---

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if _, exists := r.profiles[p.UID]; exists {
		return domain.ErrProfileExists
	}
	r.profiles[p.UID] = cloneProfile(p)
	return nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if existing, ok := r.profiles[p.UID]; ok {
		return cloneProfile(existing), nil
	}
	r.profiles[p.UID] = cloneProfile(p)
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindByUID(_ context.Context, uid string) (*domain.Profile, error) {
	p, ok := r.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) UpdateFields(_ context.Context, uid string, fields map[string]any) error {
	p, ok := r.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for k, v := range fields {
		switch k {
		case "display_name":
			p.DisplayName = v.(string)
		case "photo_url":
			p.PhotoURL = v.(string)
		case "resident_id":
			p.ResidentID = v.(string)
		case "recovery_goals":
			p.RecoveryGoals = v.([]string)
		case "sobriety_date":
			p.SobrietyDate = v.(time.Time)
		case "notifications":
			p.Notifications = v.(domain.NotificationPreferences)
		case "updated_at":
			p.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

// --- residents ---

type stubResidentRepo struct {
	residents map[string]*domain.Resident
}

func newStubResidentRepo() *stubResidentRepo {
	return &stubResidentRepo{residents: make(map[string]*domain.Resident)}
}

func (r *stubResidentRepo) Create(_ context.Context, res *domain.Resident) error {
	clone := *res
	r.residents[res.ID] = &clone
	return nil
}

func (r *stubResidentRepo) FindByID(_ context.Context, id string) (*domain.Resident, error) {
	res, ok := r.residents[id]
	if !ok {
		return nil, domain.ErrResidentNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubResidentRepo) SetAccountUID(_ context.Context, id, uid string) error {
	res, ok := r.residents[id]
	if !ok {
		return domain.ErrResidentNotFound
	}
	res.AccountUID = uid
	return nil
}

// --- tenants ---

type stubTenantRepo struct {
	tenants map[string]*domain.Tenant
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{tenants: make(map[string]*domain.Tenant)}
}

func cloneTenant(t *domain.Tenant) *domain.Tenant {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTenantRepo) Create(_ context.Context, t *domain.Tenant) error {
	for _, existing := range r.tenants {
		if existing.Slug == t.Slug {
			return domain.ErrSlugTaken
		}
	}
	r.tenants[t.ID] = cloneTenant(t)
	return nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	return cloneTenant(t), nil
}

func (r *stubTenantRepo) FindBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return cloneTenant(t), nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

func (r *stubTenantRepo) UpdateStatus(_ context.Context, id string, status domain.TenantStatus, reason string) error {
	t, ok := r.tenants[id]
	if !ok {
		return domain.ErrTenantNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// --- enrollments ---

type stubEnrollmentRepo struct {
	entries    map[string]*domain.Enrollment
	failCreate error
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{entries: make(map[string]*domain.Enrollment)}
}

func cloneEnrollment(e *domain.Enrollment) *domain.Enrollment {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if _, exists := r.entries[e.ID]; exists {
		return domain.ErrAlreadyEnrolled
	}
	r.entries[e.ID] = cloneEnrollment(e)
	return nil
}

func (r *stubEnrollmentRepo) Find(_ context.Context, tenantID, residentID string) (*domain.Enrollment, error) {
	e, ok := r.entries[domain.EnrollmentKey(tenantID, residentID)]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	return cloneEnrollment(e), nil
}

func (r *stubEnrollmentRepo) UpdateFields(_ context.Context, tenantID, residentID string, fields map[string]any) error {
	e, ok := r.entries[domain.EnrollmentKey(tenantID, residentID)]
	if !ok {
		return domain.ErrEnrollmentNotFound
	}
	for k, v := range fields {
		switch k {
		case "house_id":
			e.HouseID = v.(string)
		case "room_id":
			e.RoomID = v.(string)
		case "bed_id":
			e.BedID = v.(string)
		case "status":
			e.Status = v.(domain.EnrollmentStatus)
		case "phase":
			e.Phase = v.(int)
		case "discharge_reason":
			e.DischargeReason = v.(string)
		case "updated_at":
			e.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *stubEnrollmentRepo) ListByHouse(_ context.Context, tenantID, houseID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.HouseID == houseID {
			out = append(out, cloneEnrollment(e))
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) ListByStatus(_ context.Context, tenantID string, status domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.Status == status {
			out = append(out, cloneEnrollment(e))
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) CountByStatus(_ context.Context, tenantID string, status domain.EnrollmentStatus) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubEnrollmentRepo) ListByResident(_ context.Context, residentID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.entries {
		if e.ResidentID == residentID {
			out = append(out, cloneEnrollment(e))
		}
	}
	return out, nil
}

// --- join requests ---

type stubJoinRequestRepo struct {
	requests map[string]*domain.JoinRequest
}

func newStubJoinRequestRepo() *stubJoinRequestRepo {
	return &stubJoinRequestRepo{requests: make(map[string]*domain.JoinRequest)}
}

func cloneJoinRequest(r *domain.JoinRequest) *domain.JoinRequest {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (r *stubJoinRequestRepo) Upsert(_ context.Context, req *domain.JoinRequest) error {
	r.requests[req.ID] = cloneJoinRequest(req)
	return nil
}

func (r *stubJoinRequestRepo) Find(_ context.Context, tenantID, uid string) (*domain.JoinRequest, error) {
	req, ok := r.requests[domain.JoinRequestKey(tenantID, uid)]
	if !ok {
		return nil, domain.ErrJoinRequestNotFound
	}
	return cloneJoinRequest(req), nil
}

func (r *stubJoinRequestRepo) ListPending(_ context.Context, tenantID string) ([]*domain.JoinRequest, error) {
	var out []*domain.JoinRequest
	for _, req := range r.requests {
		if req.TenantID == tenantID && req.Status == domain.JoinRequestPending {
			out = append(out, cloneJoinRequest(req))
		}
	}
	return out, nil
}

func (r *stubJoinRequestRepo) SetStatus(_ context.Context, tenantID, uid string, status domain.JoinRequestStatus) error {
	req, ok := r.requests[domain.JoinRequestKey(tenantID, uid)]
	if !ok {
		return domain.ErrJoinRequestNotFound
	}
	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	return nil
}

// --- house events ---

type stubEventRepo struct {
	events []*domain.HouseEvent
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{}
}

func (r *stubEventRepo) Create(_ context.Context, e *domain.HouseEvent) error {
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

func (r *stubEventRepo) ListByTenant(_ context.Context, tenantID string, from time.Time) ([]*domain.HouseEvent, error) {
	var out []*domain.HouseEvent
	for _, e := range r.events {
		if e.TenantID == tenantID && !e.StartsAt.Before(from) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

var errStorageDown = errors.New("storage unavailable")
