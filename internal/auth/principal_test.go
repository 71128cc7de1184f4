package auth

import "testing"

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"super_admin", RoleSuperAdmin, true},
		{"trainer", RoleTrainer, true},
		{"", "", false},
		{"admin", "", false},
		{"SUPER_ADMIN", "", false},
		{"super_admin ", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := &Principal{UserID: "1", Role: RoleSuperAdmin}
	trainer := &Principal{UserID: "2", Role: RoleTrainer}

	tests := []struct {
		name     string
		p        *Principal
		required []Role
		want     bool
	}{
		{"nil principal denied", nil, []Role{RoleSuperAdmin, RoleTrainer}, false},
		{"admin passes admin gate", admin, []Role{RoleSuperAdmin}, true},
		{"trainer fails admin gate", trainer, []Role{RoleSuperAdmin}, false},
		{"trainer passes trainer gate", trainer, []Role{RoleTrainer}, true},
		{"any listed role passes", trainer, []Role{RoleSuperAdmin, RoleTrainer}, true},
		{"empty requirement denies", admin, nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Authorize(tt.p, tt.required...); got != tt.want {
				t.Errorf("Authorize = %v, want %v", got, tt.want)
			}
		})
	}
}
