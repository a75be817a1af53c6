package utils_test

import (
	"testing"

	"Backend-KiddoCare/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("user123", "parent@example.com", "parent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "parent@example.com", claims.Email)
	assert.Equal(t, "parent", claims.Role)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := utils.ParseJWT("")
	assert.Error(t, err)

	_, err = utils.ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestGenerateRandomString(t *testing.T) {
	a := utils.GenerateRandomString(32)
	b := utils.GenerateRandomString(32)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
