package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthFixture() (*AuthService, *stubAccountRepo, *stubClaimsRepo) {
	accounts := newStubAccountRepo()
	claims := newStubClaimsRepo()
	profiles := NewProfileService(newStubProfileRepo(), newStubResidentRepo(), zerolog.Nop())
	svc := NewAuthService(accounts, claims, profiles, testSecret, time.Hour, zerolog.Nop())
	return svc, accounts, claims
}

func parseTestToken(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	return claims
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _ := newAuthFixture()

	a, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.UID == "" {
		t.Error("expected a generated uid")
	}
	if a.DisplayName != "ana" {
		t.Errorf("display name = %q, want email fallback", a.DisplayName)
	}
	if a.PasswordHash == "hunter22" {
		t.Error("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "p1"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "p2"})
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, claims := newAuthFixture()
	ctx := context.Background()

	a, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	claims.Set(ctx, a.UID, "t1", domain.RoleStaff)

	result, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tok := parseTestToken(t, result.Token)
	if tok["sub"] != a.UID {
		t.Errorf("sub = %v, want %s", tok["sub"], a.UID)
	}
	if tok["role"] != string(domain.RoleStaff) || tok["tenant_id"] != "t1" {
		t.Errorf("token claims = %v/%v", tok["role"], tok["tenant_id"])
	}
	if int64(tok["cv"].(float64)) != 1 {
		t.Errorf("cv = %v, want 1", tok["cv"])
	}
}

func TestAuthService_Login_NoClaimsYet(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login without claims should succeed: %v", err)
	}
	tok := parseTestToken(t, result.Token)
	if _, has := tok["role"]; has {
		t.Error("token should carry no role before any claims write")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "a@x.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@x.com", "secret1"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("unknown account: got %v", err)
	}
}

func TestAuthService_Refresh_PicksUpNewClaims(t *testing.T) {
	svc, _, claims := newAuthFixture()
	ctx := context.Background()

	a, err := svc.Register(ctx, ports.RegisterInput{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Claims written after login are only visible on refresh.
	claims.Set(ctx, a.UID, "t9", domain.RoleHouseMgr)
	claims.Set(ctx, a.UID, "t9", domain.RoleStaffAdmin)

	token, err := svc.Refresh(ctx, domain.Principal{UID: a.UID, Email: a.Email, DisplayName: a.DisplayName})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	tok := parseTestToken(t, token)
	if tok["role"] != string(domain.RoleStaffAdmin) || tok["tenant_id"] != "t9" {
		t.Errorf("refreshed claims = %v/%v", tok["role"], tok["tenant_id"])
	}
	if int64(tok["cv"].(float64)) != 2 {
		t.Errorf("cv = %v, want 2", tok["cv"])
	}
}
