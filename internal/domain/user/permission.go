package user

type Permission string

const (
	// Self
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Profiles
	PermissionProfileViewAll Permission = "profile.view_all"
	PermissionProfileManage  Permission = "profile.manage"

	// Activities and rates
	PermissionActivityView   Permission = "activity.view"
	PermissionActivityManage Permission = "activity.manage"
	PermissionRateView       Permission = "rate.view"
	PermissionRateManage     Permission = "rate.manage"

	// Schedule
	PermissionShiftViewOwn Permission = "shift.view_own"
	PermissionShiftViewAll Permission = "shift.view_all"
	PermissionShiftManage  Permission = "shift.manage"

	// Payroll
	PermissionPayrollViewOwn       Permission = "payroll.view_own"
	PermissionPayrollViewAll       Permission = "payroll.view_all"
	PermissionPayrollConfirmOwn    Permission = "payroll.confirm_own"
	PermissionPayrollManagePeriods Permission = "payroll.manage_periods"
	PermissionPayrollManagePayment Permission = "payroll.manage_payment"
	PermissionPayrollExport        Permission = "payroll.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionProfileViewAll,
		PermissionProfileManage,
		PermissionActivityView,
		PermissionActivityManage,
		PermissionRateView,
		PermissionRateManage,
		PermissionShiftViewOwn,
		PermissionShiftViewAll,
		PermissionShiftManage,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollConfirmOwn,
		PermissionPayrollManagePeriods,
		PermissionPayrollManagePayment,
		PermissionPayrollExport,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionActivityView,
		PermissionRateView,
		PermissionShiftViewOwn,
		PermissionPayrollViewOwn,
		PermissionPayrollConfirmOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
