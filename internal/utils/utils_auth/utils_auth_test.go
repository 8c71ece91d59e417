package utils_auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Configure([]byte("test-secret"))
	m.Run()
}

func TestArgon2HashRoundtrip(t *testing.T) {
	hash, err := GenerateArgon2Hash("hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, VerifyArgon2Hash("hunter2", hash))
	assert.False(t, VerifyArgon2Hash("hunter3", hash))
}

func TestVerifyArgon2HashRejectsMalformed(t *testing.T) {
	assert.False(t, VerifyArgon2Hash("hunter2", "not-a-hash"))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := GenerateArgon2Hash("hunter2")
	require.NoError(t, err)
	second, err := GenerateArgon2Hash("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	Configure([]byte("other-secret"))
	t.Cleanup(func() { Configure([]byte("test-secret")) })

	_, err = ParseToken(token)
	assert.Error(t, err)
}
