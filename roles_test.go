package accounts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telecare-labs/accounts"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "User role", input: "user", valid: true},
		{name: "Admin role", input: "admin", valid: true},
		{name: "Unknown role", input: "superuser", valid: false},
		{name: "Empty string", input: "", valid: false},
		{name: "Case sensitive", input: "Admin", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := accounts.ParseRole(tt.input)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, accounts.UserRole(tt.input), role)
			}
		})
	}
}

func TestNormalizeRoles(t *testing.T) {
	assert.Equal(t, []accounts.UserRole{accounts.RoleUser}, accounts.NormalizeRoles(nil))
	assert.Equal(t, []accounts.UserRole{accounts.RoleUser}, accounts.NormalizeRoles([]accounts.UserRole{}))

	explicit := []accounts.UserRole{accounts.RoleAdmin, accounts.RoleUser}
	got := accounts.NormalizeRoles(explicit)
	assert.Equal(t, explicit, got)

	// The input slice is copied, not aliased.
	got[0] = accounts.RoleUser
	assert.Equal(t, accounts.RoleAdmin, explicit[0])
}
