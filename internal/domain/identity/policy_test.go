package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCan(t *testing.T) {
	t.Run("read_all granted exactly to admin and hrd", func(t *testing.T) {
		assert.True(t, RoleAdmin.Can(CapAttendanceReadAll))
		assert.True(t, RoleHRD.Can(CapAttendanceReadAll))
		assert.False(t, RoleEmployee.Can(CapAttendanceReadAll))
	})

	t.Run("every role may submit its own attendance", func(t *testing.T) {
		for _, role := range []Role{RoleAdmin, RoleHRD, RoleEmployee} {
			assert.True(t, role.Can(CapAttendanceSubmit), "role %s", role)
		}
	})

	t.Run("finance is admin-only", func(t *testing.T) {
		assert.True(t, RoleAdmin.Can(CapFinanceManage))
		assert.False(t, RoleHRD.Can(CapFinanceManage))
		assert.False(t, RoleEmployee.Can(CapFinanceRead))
	})

	t.Run("unknown role has no grants", func(t *testing.T) {
		assert.False(t, Role("intern").Can(CapAttendanceSubmit))
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "hrd", "employee"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, string(role))
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
}
