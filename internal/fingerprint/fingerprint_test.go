package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	t.Parallel()

	a := Fallback("Mozilla/5.0", "10.0.0.1", "en-US")
	b := Fallback("Mozilla/5.0", "10.0.0.1", "en-US")
	require.Equal(t, a, b, "same inputs must yield the same fingerprint")

	c := Fallback("Mozilla/5.0", "10.0.0.2", "en-US")
	require.NotEqual(t, a, c)

	require.NotEmpty(t, Fallback("", "", ""))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("lenient mode always passes", func(t *testing.T) {
		require.True(t, Validate("stored", "different", false))
		require.True(t, Validate("", "anything", false))
		require.True(t, Validate("stored", "", false))
	})

	t.Run("strict mode passes when either side is absent", func(t *testing.T) {
		require.True(t, Validate("", "provided", true))
		require.True(t, Validate("stored", "", true))
		require.True(t, Validate("", "", true))
	})

	t.Run("strict mode requires exact equality when both present", func(t *testing.T) {
		require.True(t, Validate("same", "same", true))
		require.False(t, Validate("stored", "different", true))
	})
}
