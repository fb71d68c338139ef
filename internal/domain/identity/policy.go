package identity

// Capability names an operation a role may be granted. Authorization is a
// single declarative table consulted uniformly by the HTTP layer, instead of
// ad-hoc role comparisons scattered per route.
type Capability string

const (
	// CapAttendanceSubmit allows recording one's own attendance.
	CapAttendanceSubmit Capability = "attendance:submit"
	// CapAttendanceReadAll allows reading every user's attendance ledger;
	// without it a user only sees their own records.
	CapAttendanceReadAll Capability = "attendance:read_all"
	// CapEmployeeManage allows creating and editing employee records.
	CapEmployeeManage Capability = "employee:manage"
	// CapEmployeeRead allows listing the employee directory.
	CapEmployeeRead Capability = "employee:read"
	// CapPerformanceManage allows recording performance reviews.
	CapPerformanceManage Capability = "performance:manage"
	// CapFinanceManage allows recording accounting transactions.
	CapFinanceManage Capability = "finance:manage"
	// CapFinanceRead allows viewing accounting summaries and mutations.
	CapFinanceRead Capability = "finance:read"
	// CapReportExport allows generating PDF exports.
	CapReportExport Capability = "report:export"
	// CapUserManage allows provisioning and managing login accounts.
	CapUserManage Capability = "user:manage"
)

// capabilities is the role × operation grant table.
var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapAttendanceSubmit:  true,
		CapAttendanceReadAll: true,
		CapEmployeeManage:    true,
		CapEmployeeRead:      true,
		CapPerformanceManage: true,
		CapFinanceManage:     true,
		CapFinanceRead:       true,
		CapReportExport:      true,
		CapUserManage:        true,
	},
	RoleHRD: {
		CapAttendanceSubmit:  true,
		CapAttendanceReadAll: true,
		CapEmployeeManage:    true,
		CapEmployeeRead:      true,
		CapPerformanceManage: true,
		CapReportExport:      true,
	},
	RoleEmployee: {
		CapAttendanceSubmit: true,
	},
}

// Can reports whether the role is granted the capability.
func (r Role) Can(cap Capability) bool {
	return capabilities[r][cap]
}

// CapabilitiesOf returns the capabilities granted to a role.
func CapabilitiesOf(role Role) []Capability {
	grants := capabilities[role]
	caps := make([]Capability, 0, len(grants))
	for c, ok := range grants {
		if ok {
			caps = append(caps, c)
		}
	}
	return caps
}
