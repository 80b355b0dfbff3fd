package cryptox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wukonglabs/wukong/pkg/cryptox"
)

func TestGenerateToken(t *testing.T) {
	a, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	b, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Len(t, a, 43) // 32 bytes base64url unpadded

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	fp := cryptox.FingerprintToken("secret-token")
	require.Equal(t, fp, cryptox.FingerprintToken("secret-token"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("other-token"))
	require.Len(t, fp, 43)
}

func TestGenerateBackupCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		code, err := cryptox.GenerateBackupCode()
		require.NoError(t, err)
		require.Len(t, code, cryptox.BackupCodeLength)
		for _, r := range code {
			require.True(t, strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r))
		}
		seen[code] = true
	}
	require.Greater(t, len(seen), 45)
}

func TestDeriveKey(t *testing.T) {
	secret := []byte("deployment-cookie-secret")

	a, err := cryptox.DeriveKey(secret, "session-credential", 32)
	require.NoError(t, err)
	b, err := cryptox.DeriveKey(secret, "id-assertion", 32)
	require.NoError(t, err)

	require.Len(t, a, 32)
	require.NotEqual(t, a, b)

	again, err := cryptox.DeriveKey(secret, "session-credential", 32)
	require.NoError(t, err)
	require.Equal(t, a, again)

	_, err = cryptox.DeriveKey(nil, "x", 32)
	require.Error(t, err)
}
