package auth

import (
	"testing"

	"healy-academy/app/models"

	"github.com/stretchr/testify/assert"
)

func roles(names ...string) []*models.Role {
	out := make([]*models.Role, len(names))
	for i, name := range names {
		out[i] = &models.Role{Name: name}
	}
	return out
}

func TestResolveCapabilitiesAdmin(t *testing.T) {
	caps := ResolveCapabilities(roles("admin"))

	assert.True(t, caps.CanEditAssessments)
	assert.True(t, caps.CanDeleteAssessments)
	assert.True(t, caps.CanManageStudents)
	assert.True(t, caps.CanManageBilling)
}

func TestResolveCapabilitiesCoachCannotDelete(t *testing.T) {
	caps := ResolveCapabilities(roles("coach"))

	assert.True(t, caps.CanEditAssessments)
	assert.False(t, caps.CanDeleteAssessments)
	assert.False(t, caps.CanManageStudents)
}

func TestResolveCapabilitiesUnionsRoles(t *testing.T) {
	caps := ResolveCapabilities(roles("coach", "front_desk"))

	assert.True(t, caps.CanEditAssessments)
	assert.True(t, caps.CanManageStudents)
	assert.True(t, caps.CanManageBilling)
	assert.False(t, caps.CanDeleteAssessments)
}

func TestResolveCapabilitiesUnknownRole(t *testing.T) {
	caps := ResolveCapabilities(roles("janitor"))

	assert.Equal(t, Capabilities{}, caps)
}

func TestResolveCapabilitiesNoRoles(t *testing.T) {
	assert.Equal(t, Capabilities{}, ResolveCapabilities(nil))
}
