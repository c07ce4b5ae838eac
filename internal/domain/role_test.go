package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		claim string
		want  Role
	}{
		{"admin", RoleAdmin},
		{"user", RoleUser},
		{"", RoleUser},
		{"Admin", RoleUser},
		{"superadmin", RoleUser},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.claim), "claim %q", tt.claim)
	}

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
}
