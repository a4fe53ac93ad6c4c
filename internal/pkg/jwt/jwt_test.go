package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, svc Service, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := svc.JWTAuth().Encode(claims)
	require.NoError(t, err)
	return token
}

func TestJWTAuth_DecodesSharedSecretToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token := encode(t, svc, map[string]interface{}{
		"employee_id": "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"is_admin":    true,
		"type":        TokenTypeAccess,
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", claims["employee_id"])
	assert.Equal(t, true, claims["is_admin"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestDecode_RejectsForeignSignature(t *testing.T) {
	token := encode(t, NewJWTService("one"), map[string]interface{}{
		"employee_id": "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"type":        TokenTypeAccess,
	})

	_, err := NewJWTService("two").JWTAuth().Decode(token)
	assert.Error(t, err)
}
