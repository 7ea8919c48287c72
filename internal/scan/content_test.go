package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indigo-web/multipart/internal/buffer"
)

func TestContent_FindsDelimiterAfterPayload(t *testing.T) {
	w := buffer.New(64, 1<<20)
	w.Add([]byte("hello\r\n--X\r\nrest"))

	chunk, done := Content(w, []byte("--X"), false)
	require.True(t, done)
	require.Equal(t, "hello", string(chunk))
	require.Equal(t, byte('\r'), w.GetByte(w.ReaderOffset()))
}

func TestContent_EmptyPayloadImmediateDelimiter(t *testing.T) {
	w := buffer.New(64, 1<<20)
	w.Add([]byte("--X\r\nrest"))

	chunk, done := Content(w, []byte("--X"), false)
	require.True(t, done)
	require.Empty(t, chunk)
}

func TestContent_WithholdsUnconfirmedTrailingBytes(t *testing.T) {
	w := buffer.New(64, 1<<20)
	w.Add([]byte("hello\r\n--"))

	chunk, done := Content(w, []byte("--X"), false)
	require.False(t, done)
	require.Equal(t, "hello", string(chunk))
}

func TestContent_WaitsWhenNothingSafeYet(t *testing.T) {
	w := buffer.New(64, 1<<20)
	w.Add([]byte("no-break-yet"))

	chunk, done := Content(w, []byte("--X"), false)
	require.False(t, done)
	require.Empty(t, chunk)
}

func TestContent_MultipleChunksReconstructPayload(t *testing.T) {
	w := buffer.New(64, 1<<20)

	full := []byte("line one\r\nline two\r\n--X\r\n")
	var got []byte
	started := false

	for i := range full {
		w.Add(full[i : i+1])
		chunk, done := Content(w, []byte("--X"), started)
		got = append(got, chunk...)
		if len(chunk) > 0 {
			started = true
		}
		if done {
			break
		}
	}

	require.Equal(t, "line one\r\nline two", string(got))
}
