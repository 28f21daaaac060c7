package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

// AuthService issues bearer credentials embedding the current claims record.
// A client observes claims changes only by logging in again or refreshing,
// which is the documented staleness window.
type AuthService struct {
	accounts ports.AccountRepository
	claims   ports.ClaimsRepository
	profiles ports.ProfileService
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	claims ports.ClaimsRepository,
	profiles ports.ProfileService,
	secret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		accounts: accounts,
		claims:   claims,
		profiles: profiles,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a login account and its profile.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("register: %w: email and password are required", domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	name := in.DisplayName
	if name == "" {
		name = domain.DisplayNameFallback(in.Email)
	}

	now := time.Now().UTC()
	a := &domain.Account{
		UID:          uuid.NewString(),
		Email:        in.Email,
		DisplayName:  name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if _, err := s.profiles.Create(ctx, a.UID, ports.CreateProfileInput{Email: a.Email, DisplayName: a.DisplayName}); err != nil {
		// The profile is provisioned just in time on first authenticated
		// request anyway.
		s.log.Warn().Err(err).Str("uid", a.UID).Msg("profile creation at registration failed")
	}

	s.log.Info().Str("uid", a.UID).Msg("account registered")
	return a, nil
}

// Login verifies the password and returns a signed token carrying the
// account's current claims.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	a, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, a.UID, a.Email, a.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &ports.AuthResult{Token: token, Account: a}, nil
}

// Refresh issues a fresh token for an authenticated principal, picking up
// any claims written since the presented credential was issued.
func (s *AuthService) Refresh(ctx context.Context, p domain.Principal) (string, error) {
	token, err := s.issueToken(ctx, p.UID, p.Email, p.DisplayName)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return token, nil
}

func (s *AuthService) issueToken(ctx context.Context, uid, email, name string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"name":  name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	record, err := s.claims.Get(ctx, uid)
	switch {
	case err == nil:
		claims["role"] = string(record.Role)
		claims["tenant_id"] = record.TenantID
		claims["cv"] = record.Version
	case errors.Is(err, domain.ErrClaimsNotFound):
		// No assignment yet: the token authenticates but authorizes nothing.
	default:
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
