package job

import (
	"errors"
	"testing"
)

func TestCanAssign(t *testing.T) {
	tests := []struct {
		name        string
		ctx         GuardContext
		wantAllowed bool
	}{
		{
			name:        "admin can assign",
			ctx:         GuardContext{ActorID: "admin1", ActorRole: RoleAdmin},
			wantAllowed: true,
		},
		{
			name:        "clerk cannot assign",
			ctx:         GuardContext{ActorID: "clerk7", ActorRole: RoleClerk},
			wantAllowed: false,
		},
		{
			name:        "agent cannot assign",
			ctx:         GuardContext{ActorID: "agent2", ActorRole: RoleAgent},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAssign(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanAssign() allowed = %v, want %v (reason: %s)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if !tt.wantAllowed && !errors.Is(result.Error(), ErrUnauthorizedActor) {
				t.Errorf("CanAssign().Error() = %v, want ErrUnauthorizedActor", result.Error())
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	if result := CanCancel(GuardContext{ActorID: "admin1", ActorRole: RoleAdmin}); !result.Allowed {
		t.Errorf("admin should be allowed to cancel: %s", result.Reason)
	}
	if result := CanCancel(GuardContext{ActorID: "clerk7", ActorRole: RoleClerk, AssignedClerkID: "clerk7"}); result.Allowed {
		t.Error("assigned clerk should not be allowed to cancel")
	}
}

func TestClerkOwnershipGuards(t *testing.T) {
	guards := map[string]func(GuardContext) GuardResult{
		"CanStart":    CanStart,
		"CanCheckIn":  CanCheckIn,
		"CanComplete": CanComplete,
		"CanReject":   CanReject,
	}

	tests := []struct {
		name        string
		ctx         GuardContext
		wantAllowed bool
	}{
		{
			name:        "assigned clerk is allowed",
			ctx:         GuardContext{ActorID: "clerk7", ActorRole: RoleClerk, AssignedClerkID: "clerk7"},
			wantAllowed: true,
		},
		{
			name:        "different clerk is rejected",
			ctx:         GuardContext{ActorID: "clerk9", ActorRole: RoleClerk, AssignedClerkID: "clerk7"},
			wantAllowed: false,
		},
		{
			name:        "admin is rejected",
			ctx:         GuardContext{ActorID: "admin1", ActorRole: RoleAdmin, AssignedClerkID: "clerk7"},
			wantAllowed: false,
		},
		{
			name:        "clerk on unassigned job is rejected",
			ctx:         GuardContext{ActorID: "clerk7", ActorRole: RoleClerk},
			wantAllowed: false,
		},
	}

	for guardName, guard := range guards {
		for _, tt := range tests {
			t.Run(guardName+"/"+tt.name, func(t *testing.T) {
				result := guard(tt.ctx)
				if result.Allowed != tt.wantAllowed {
					t.Errorf("%s() allowed = %v, want %v (reason: %s)", guardName, result.Allowed, tt.wantAllowed, result.Reason)
				}
				if !tt.wantAllowed && !errors.Is(result.Error(), ErrUnauthorizedActor) {
					t.Errorf("%s().Error() = %v, want ErrUnauthorizedActor", guardName, result.Error())
				}
			})
		}
	}
}
