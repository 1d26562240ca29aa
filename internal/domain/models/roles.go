package models

// Account roles. Dashboard access requires one of the three staff roles;
// "member" accounts exist only for the public member registry and never
// sign in to the admin area.
const (
	RoleMember     = "member"
	RoleLeader     = "leader"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Shared status values for accounts, members and departments.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// IsDashboardRole reports whether the role may sign in to the admin dashboard.
func IsDashboardRole(role string) bool {
	switch role {
	case RoleLeader, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
