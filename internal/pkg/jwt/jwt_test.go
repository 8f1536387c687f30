package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessTokenClaims(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	employeeID := "emp-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-1", userID)
	empID, _ := token.Get("employee_id")
	assert.Equal(t, "emp-1", empID)
	role, _ := token.Get("role")
	assert.Equal(t, "admin", role)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessTokenNilEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	tokenString, _, err := svc.GenerateAccessToken("user-2", nil, "employee")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	empID, _ := token.Get("employee_id")
	assert.Nil(t, empID)
}

func TestGenerateAccessTokenBadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", nil, "admin")
	assert.Error(t, err)
}
