package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// fakeProfiles implements only the Get path the middleware exercises.
type fakeProfiles struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfiles) Get(_ context.Context, uid string) (*domain.Profile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Create(context.Context, string, ports.CreateProfileInput) (*domain.Profile, error) {
	panic("not used")
}

func (f *fakeProfiles) CreateResident(context.Context, ports.CreateResidentInput) (*domain.Resident, error) {
	panic("not used")
}

func (f *fakeProfiles) FindOrCreate(context.Context, domain.Principal) (*domain.Profile, error) {
	panic("not used")
}

func (f *fakeProfiles) LinkResident(context.Context, string, string) error {
	panic("not used")
}

func (f *fakeProfiles) Update(context.Context, string, ports.UpdateProfileInput) (*domain.Profile, error) {
	panic("not used")
}

// fakeEnrollments answers CheckResidentAccess from a fixed table keyed by
// tenant:resident.
type fakeEnrollments struct {
	access map[string]error
}

func (f *fakeEnrollments) CheckResidentAccess(_ context.Context, tenantID, residentID string) error {
	err, ok := f.access[tenantID+":"+residentID]
	if !ok {
		return domain.ErrForbidden
	}
	return err
}

func (f *fakeEnrollments) Enroll(context.Context, ports.EnrollInput) (*domain.Enrollment, error) {
	panic("not used")
}

func (f *fakeEnrollments) Update(context.Context, string, string, ports.UpdateEnrollmentInput) (*domain.Enrollment, error) {
	panic("not used")
}

func (f *fakeEnrollments) Get(context.Context, string, string) (*domain.Enrollment, error) {
	panic("not used")
}

func (f *fakeEnrollments) ListByHouse(context.Context, string, string) ([]*domain.Enrollment, error) {
	panic("not used")
}

func (f *fakeEnrollments) ListActive(context.Context, string) ([]*domain.Enrollment, error) {
	panic("not used")
}

func (f *fakeEnrollments) CountByStatus(context.Context, string) (ports.EnrollmentStats, error) {
	panic("not used")
}

func (f *fakeEnrollments) ListByResident(context.Context, string) ([]*domain.Enrollment, error) {
	panic("not used")
}

func runResidentAccess(t *testing.T, p domain.Principal, tenantID string, profiles *fakeProfiles, enrollments *fakeEnrollments) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("tenantID")
	c.SetParamValues(tenantID)
	c.Set(principalKey, p)

	var resolved string
	handler := ResidentAccess(profiles, enrollments)(func(c echo.Context) error {
		resolved = ResidentID(c)
		return c.NoContent(http.StatusOK)
	})
	return resolved, handler(c)
}

func TestResidentAccess_Granted(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"u1": {UID: "u1", ResidentID: "res1"},
	}}
	enrollments := &fakeEnrollments{access: map[string]error{"t1:res1": nil}}
	p := domain.Principal{UID: "u1", Role: domain.RoleResident}

	resolved, err := runResidentAccess(t, p, "t1", profiles, enrollments)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resolved != "res1" {
		t.Fatalf("resident id = %q, want res1", resolved)
	}
}

func TestResidentAccess_StaffRoleRejected(t *testing.T) {
	// The resident path requires the role to be exactly resident; staff use
	// the capability gate instead.
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{}}
	enrollments := &fakeEnrollments{access: map[string]error{}}
	p := domain.Principal{UID: "s1", TenantID: "t1", Role: domain.RoleStaff}

	_, err := runResidentAccess(t, p, "t1", profiles, enrollments)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestResidentAccess_NoResidentLink(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"u1": {UID: "u1"},
	}}
	enrollments := &fakeEnrollments{access: map[string]error{}}
	p := domain.Principal{UID: "u1", Role: domain.RoleResident}

	_, err := runResidentAccess(t, p, "t1", profiles, enrollments)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestResidentAccess_NoProfile(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{}}
	enrollments := &fakeEnrollments{access: map[string]error{}}
	p := domain.Principal{UID: "u1", Role: domain.RoleResident}

	_, err := runResidentAccess(t, p, "t1", profiles, enrollments)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestResidentAccess_Discharged(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"u1": {UID: "u1", ResidentID: "res1"},
	}}
	enrollments := &fakeEnrollments{access: map[string]error{
		"t1:res1": domain.ErrEnrollmentDischarged,
	}}
	p := domain.Principal{UID: "u1", Role: domain.RoleResident}

	_, err := runResidentAccess(t, p, "t1", profiles, enrollments)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestResidentAccess_NotEnrolledInTarget(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*domain.Profile{
		"u1": {UID: "u1", ResidentID: "res1"},
	}}
	enrollments := &fakeEnrollments{access: map[string]error{"t1:res1": nil}}
	p := domain.Principal{UID: "u1", Role: domain.RoleResident}

	_, err := runResidentAccess(t, p, "t2", profiles, enrollments)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
