package otpx_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuskera/authflow/pkg/otpx"
)

func TestGenerateCodeFormat(t *testing.T) {
	t.Parallel()

	for range 500 {
		code, err := otpx.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, otpx.CodeLength)
		for i := 0; i < len(code); i++ {
			require.GreaterOrEqual(t, code[i], byte('0'))
			require.LessOrEqual(t, code[i], byte('9'))
		}
	}
}

func TestGenerateCodeIsNotConstant(t *testing.T) {
	t.Parallel()

	// 32 draws from a space of one million repeating a single value would
	// indicate a broken entropy source rather than bad luck.
	seen := make(map[string]struct{})
	for range 32 {
		code, err := otpx.GenerateCode()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}

func TestValidFormat(t *testing.T) {
	t.Parallel()

	valid := []string{"000000", "123456", "999999"}
	for _, s := range valid {
		require.True(t, otpx.ValidFormat(s), s)
	}

	invalid := []string{"", "12345", "1234567", "12345a", "12 456", "１２３４５６"}
	for _, s := range invalid {
		require.False(t, otpx.ValidFormat(s), s)
	}
}
