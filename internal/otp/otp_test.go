package otp_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"cargo-dispatch-service/internal/otp"
)

func TestGenerate_SixDigitsInRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		code, err := otp.Generate()
		require.NoError(t, err)
		require.Len(t, code, otp.Length)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := otp.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 50 draws from 900k values colliding down to one is out of the question.
	require.Greater(t, len(seen), 1)
}
