package model

// Role constants, ordered by privilege.
const (
	RoleSuperAdmin     = "super_admin"
	RoleProjectManager = "project_manager"
	RoleTeamLead       = "team_lead"
	RoleTeamMember     = "team_member"
	RoleClient         = "client"
)

var roleLevels = map[string]int{
	RoleSuperAdmin:     5,
	RoleProjectManager: 4,
	RoleTeamLead:       3,
	RoleTeamMember:     2,
	RoleClient:         1,
}

// RoleLevel returns the hierarchy rank of a role. Unknown roles rank 0.
func RoleLevel(role string) int {
	return roleLevels[role]
}

// IsValidRole reports whether role is one of the known role constants.
func IsValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}
