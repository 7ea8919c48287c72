package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_ShortAliases(t *testing.T) {
	for _, name := range []Charset{UTF8, ASCII, CP1251, CP1252, ISO88591} {
		_, ok := Resolve(name)
		require.Truef(t, ok, "expected %q to resolve", name)
	}
}

func TestResolve_IANAName(t *testing.T) {
	_, ok := Resolve("utf-8")
	require.True(t, ok)
}

func TestResolve_Unknown(t *testing.T) {
	_, ok := Resolve("not-a-real-charset")
	require.False(t, ok)
}

func TestResolve_Empty(t *testing.T) {
	_, ok := Resolve("")
	require.False(t, ok)
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	s, ok := Decode(UTF8, []byte("hello"))
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestDecode_UnknownCharset(t *testing.T) {
	_, ok := Decode("bogus", []byte("hi"))
	require.False(t, ok)
}
