package boundary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandom_ProducesDistinctTokens(t *testing.T) {
	a := Random()
	b := Random()

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestDelimiter(t *testing.T) {
	require.Equal(t, "--X", Delimiter("X"))
	require.Equal(t, "--X--", CloseDelimiter("X"))
}
