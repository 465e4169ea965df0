package models

import "testing"

// TestUserNeeds2FASetup verifies that only staff without completed TOTP
// enrollment are asked to set up 2FA.
func TestUserNeeds2FASetup(t *testing.T) {
	tests := []struct {
		name    string
		staff   bool
		enabled bool
		want    bool
	}{
		{name: "staff without totp", staff: true, enabled: false, want: true},
		{name: "staff with totp", staff: true, enabled: true, want: false},
		{name: "reader without totp", staff: false, enabled: false, want: false},
		{name: "reader with totp", staff: false, enabled: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{IsStaff: tt.staff, TOTPEnabled: tt.enabled}
			if got := u.Needs2FASetup(); got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v", got, tt.want)
			}
		})
	}
}
