package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenIsUniqueAndVerifiable(t *testing.T) {
	first, err := GenerateToken("secret")
	require.NoError(t, err)
	second, err := GenerateToken("secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, len(first), 255) // Must fit the token column
	assert.NoError(t, VerifyToken(first, "secret"))
	assert.NoError(t, VerifyToken(second, "secret"))
}

func TestVerifyTokenRejectsForeignTokens(t *testing.T) {
	token, err := GenerateToken("secret")
	require.NoError(t, err)

	assert.Error(t, VerifyToken(token, "other-secret"))
	assert.Error(t, VerifyToken("test", "secret"))
	assert.Error(t, VerifyToken("", "secret"))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{ID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.Error(t, VerifyToken(unsigned, "secret"))
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateToken("")
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.ErrorIs(t, VerifyToken("anything", ""), ErrEmptySecret)
}
