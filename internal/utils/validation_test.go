package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("newsroom2024"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("1234567890"))
}

func TestGenerateRandomRoleNeverCeo(t *testing.T) {
	for i := 0; i < 200; i++ {
		role := GenerateRandomRole()
		assert.True(t, role.Valid())
		assert.NotEqual(t, "ceo", string(role))
		assert.NotEqual(t, "user", string(role))
	}
}
