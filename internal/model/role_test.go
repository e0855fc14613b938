package model_test

import (
	"testing"

	"projecthub/internal/model"
)

func TestRoleLevel(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{model.RoleSuperAdmin, 5},
		{model.RoleProjectManager, 4},
		{model.RoleTeamLead, 3},
		{model.RoleTeamMember, 2},
		{model.RoleClient, 1},
		{"intern", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := model.RoleLevel(tt.role); got != tt.want {
			t.Errorf("RoleLevel(%q) = %d, want %d", tt.role, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"super_admin", "project_manager", "team_lead", "team_member", "client"} {
		if !model.IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	if model.IsValidRole("admin") {
		t.Error(`IsValidRole("admin") = true, want false`)
	}
}
