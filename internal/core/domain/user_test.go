package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserHashesPassword(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", "pass1234", RoleTenant)
	require.NoError(t, err)

	assert.NotEqual(t, "pass1234", user.PasswordHash)
	assert.True(t, user.CheckPassword("pass1234"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.Equal(t, RoleTenant, user.Role)
}
