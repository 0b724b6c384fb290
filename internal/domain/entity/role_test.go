package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleNameByID(t *testing.T) {
	name, ok := RoleNameByID(RoleIDDoctor)
	assert.True(t, ok)
	assert.Equal(t, RoleDoctor, name)

	_, ok = RoleNameByID(42)
	assert.False(t, ok)
}

func TestUser_RoleNameFallsBackToID(t *testing.T) {
	u := &User{RoleID: RoleIDPatient}
	assert.Equal(t, RolePatient, u.RoleName())

	u.Role = Role{RoleName: RoleAdmin}
	assert.Equal(t, RoleAdmin, u.RoleName())
}

func TestUser_Active(t *testing.T) {
	inactive := false

	assert.True(t, (&User{}).Active())
	assert.False(t, (&User{IsActive: &inactive}).Active())
}
