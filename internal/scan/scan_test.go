package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indigo-web/multipart/internal/buffer"
)

func newWindow(data string) *buffer.Window {
	w := buffer.New(len(data), 1<<20)
	w.Add([]byte(data))
	return w
}

func TestSkipControlCharacters(t *testing.T) {
	w := newWindow("  \r\n\t--X")
	require.NoError(t, SkipControlCharacters(w))
	require.Equal(t, byte('-'), w.GetByte(w.ReaderOffset()))
}

func TestSkipControlCharacters_NotEnoughData(t *testing.T) {
	w := newWindow("   ")
	err := SkipControlCharacters(w)
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, 0, w.ReaderOffset())
}

func TestSkipOneLine_CRLF(t *testing.T) {
	w := newWindow("\r\nrest")
	require.True(t, SkipOneLine(w))
	require.Equal(t, 2, w.ReaderOffset())
}

func TestSkipOneLine_LF(t *testing.T) {
	w := newWindow("\nrest")
	require.True(t, SkipOneLine(w))
	require.Equal(t, 1, w.ReaderOffset())
}

func TestSkipOneLine_LoneCRRestoresReader(t *testing.T) {
	w := newWindow("\rX")
	require.False(t, SkipOneLine(w))
	require.Equal(t, 0, w.ReaderOffset())
}

func TestSkipOneLine_NotALineAtAll(t *testing.T) {
	w := newWindow("hello")
	require.False(t, SkipOneLine(w))
	require.Equal(t, 0, w.ReaderOffset())
}

func TestReadLine_CRLF(t *testing.T) {
	w := newWindow("Content-Type: text/plain\r\nrest")
	line, err := ReadLine(w, nil)
	require.NoError(t, err)
	require.Equal(t, "Content-Type: text/plain", line)
	require.Equal(t, byte('r'), w.GetByte(w.ReaderOffset()))
}

func TestReadLine_NotEnoughData(t *testing.T) {
	w := newWindow("Content-Type: text/plain")
	_, err := ReadLine(w, nil)
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, 0, w.ReaderOffset())
}

func TestReadLine_TrailingCRNeedsMoreData(t *testing.T) {
	w := newWindow("abc\r")
	_, err := ReadLine(w, nil)
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, 0, w.ReaderOffset())
}

func TestReadDelimiter_OpeningCRLF(t *testing.T) {
	w := newWindow("--X\r\nrest")
	closing, err := ReadDelimiter(w, []byte("--X"))
	require.NoError(t, err)
	require.False(t, closing)
	require.Equal(t, byte('r'), w.GetByte(w.ReaderOffset()))
}

func TestReadDelimiter_OpeningLF(t *testing.T) {
	w := newWindow("--X\nrest")
	closing, err := ReadDelimiter(w, []byte("--X"))
	require.NoError(t, err)
	require.False(t, closing)
}

func TestReadDelimiter_ClosingWithCRLF(t *testing.T) {
	w := newWindow("--X--\r\nepilogue")
	closing, err := ReadDelimiter(w, []byte("--X"))
	require.NoError(t, err)
	require.True(t, closing)
	require.Equal(t, byte('e'), w.GetByte(w.ReaderOffset()))
}

func TestReadDelimiter_ClosingWithoutTerminator(t *testing.T) {
	// S6: unterminated closing delimiter
	w := newWindow("--X--")
	closing, err := ReadDelimiter(w, []byte("--X"))
	require.NoError(t, err)
	require.True(t, closing)
	require.Equal(t, w.WriterOffset(), w.ReaderOffset())
}

func TestReadDelimiter_NotFoundYet(t *testing.T) {
	w := newWindow("garbage")
	_, err := ReadDelimiter(w, []byte("--X"))
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, 0, w.ReaderOffset())
}

func TestReadDelimiter_OpeningRequiresTerminator(t *testing.T) {
	w := newWindow("--X")
	_, err := ReadDelimiter(w, []byte("--X"))
	require.ErrorIs(t, err, ErrNotEnoughData)
	require.Equal(t, 0, w.ReaderOffset())
}
