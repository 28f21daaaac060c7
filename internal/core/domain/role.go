package domain

// Role is the privilege level embedded in a principal's credential.
// Exactly one role is carried per credential; changes take effect only
// after the credential is reissued.
type Role string

const (
	RoleResident    Role = "resident"
	RoleStaff       Role = "staff"
	RoleHouseMgr    Role = "house_manager"
	RoleStaffAdmin  Role = "staff_admin"
	RoleTenantAdmin Role = "tenant_admin"
	RoleSuperAdmin  Role = "super_admin"
)

// roleRank orders roles by privilege for threshold comparisons.
var roleRank = map[Role]int{
	RoleResident:    1,
	RoleStaff:       2,
	RoleHouseMgr:    3,
	RoleStaffAdmin:  4,
	RoleTenantAdmin: 5,
	RoleSuperAdmin:  6,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of min.
// Unknown roles rank below every valid role.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}
