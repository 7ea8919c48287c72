package header

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_Basic(t *testing.T) {
	name, value, err := Split(`Content-Disposition: form-data; name="a"`)
	require.NoError(t, err)
	require.Equal(t, "Content-Disposition", name)
	require.Equal(t, `form-data; name="a"`, value)
}

func TestSplit_TrimsSurroundingWhitespace(t *testing.T) {
	name, value, err := Split("Content-Type:   text/plain   ")
	require.NoError(t, err)
	require.Equal(t, "Content-Type", name)
	require.Equal(t, "text/plain", value)
}

func TestSplit_EmptyValueAllowed(t *testing.T) {
	name, value, err := Split("X-Empty:")
	require.NoError(t, err)
	require.Equal(t, "X-Empty", name)
	require.Equal(t, "", value)
}

func TestSplit_EmptyValueWithTrailingWhitespaceAllowed(t *testing.T) {
	name, value, err := Split("X-Empty:    ")
	require.NoError(t, err)
	require.Equal(t, "X-Empty", name)
	require.Equal(t, "", value)
}
