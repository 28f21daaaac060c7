package domain

// Principal is the authenticated identity derived from a verified bearer
// credential for the duration of one request. It is never persisted.
type Principal struct {
	UID           string
	TenantID      string
	Role          Role
	Email         string
	DisplayName   string
	ClaimsVersion int64
}

// IsSuperAdmin reports whether the principal holds the global override role.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// Authorize is the access-control decision consulted before every
// tenant-scoped staff operation. Order matters: the super_admin override
// skips the tenant match, and the tenant match is checked before the role
// threshold so a non-member always sees the same Forbidden regardless of
// whether the tenant exists.
func Authorize(p Principal, targetTenantID string, cap Capability) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.TenantID == "" || p.TenantID != targetTenantID {
		return ErrTenantMismatch
	}
	if !p.Role.AtLeast(cap.MinRole()) {
		return ErrForbidden
	}
	return nil
}
