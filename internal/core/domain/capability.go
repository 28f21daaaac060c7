package domain

// Capability names a minimum-role threshold required for an operation on a
// tenant's data. Residents are authorized through the enrollment path, not
// through capabilities, with the single exception of CapRead.
type Capability string

const (
	// CapRead is granted to any authenticated member of the tenant.
	CapRead Capability = "read"
	// CapWrite covers day-to-day mutations: staff and above.
	CapWrite Capability = "write"
	// CapManageStaff covers staff roster changes: staff_admin and above.
	CapManageStaff Capability = "manage_staff"
	// CapReportIncident and CapReadAllIncidents deliberately exclude
	// bare residents.
	CapReportIncident   Capability = "report_incident"
	CapReadAllIncidents Capability = "read_all_incidents"
	// CapManageTenant covers tenant settings: tenant_admin and above.
	CapManageTenant Capability = "manage_tenant"
)

var capabilityMinRole = map[Capability]Role{
	CapRead:             RoleResident,
	CapWrite:            RoleStaff,
	CapManageStaff:      RoleStaffAdmin,
	CapReportIncident:   RoleStaff,
	CapReadAllIncidents: RoleStaff,
	CapManageTenant:     RoleTenantAdmin,
}

// MinRole returns the lowest role authorized for the capability.
// Unknown capabilities fail closed by requiring super_admin.
func (c Capability) MinRole() Role {
	if r, ok := capabilityMinRole[c]; ok {
		return r
	}
	return RoleSuperAdmin
}
