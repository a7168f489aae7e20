package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/pkg/cryptox"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url, no padding

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	fp := cryptox.FingerprintToken("opaque-token")
	require.Equal(t, fp, cryptox.FingerprintToken("opaque-token"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("other-token"))
	require.Len(t, fp, 43)
}
