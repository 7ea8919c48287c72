// Package scan implements the low-level byte scanning primitives the
// multipart state machine drives: skipping stray control bytes, skipping
// blank lines, reading a single text line, and locating a boundary
// delimiter amid CRLF/LF ambiguity.
//
// Every primitive here either commits a reader advance on success or
// restores the reader to its entry position and reports ErrNotEnoughData.
// That error never reaches a caller outside this package's immediate
// caller: the state machine translates it into "need more bytes".
// ReadDelimiter can also report ErrMalformedDelimiter, with the reader
// likewise restored; more bytes can't change that outcome.
package scan

import (
	"errors"

	"github.com/indigo-web/multipart/internal/buffer"
)

// ErrNotEnoughData signals that a primitive could not complete with the
// bytes currently buffered.
var ErrNotEnoughData = errors.New("multipart: not enough data")

// ErrMalformedDelimiter signals that a delimiter was found but is followed
// by bytes that are neither a line terminator nor the closing "--".
var ErrMalformedDelimiter = errors.New("multipart: malformed delimiter")

func isControlOrSpace(b byte) bool {
	return b <= 0x1f || b == 0x7f || b == ' ' || b == '\t'
}

// SkipControlCharacters advances the reader past a run of ISO control
// bytes and plain whitespace, stopping at the first byte that is neither.
func SkipControlCharacters(w *buffer.Window) error {
	entry := w.ReaderOffset()
	i := entry

	for i < w.WriterOffset() && isControlOrSpace(w.GetByte(i)) {
		i++
	}

	if i == w.WriterOffset() {
		w.SetReaderOffset(entry)
		return ErrNotEnoughData
	}

	w.SetReaderOffset(i)
	return nil
}

// SkipOneLine consumes a single line terminator (CRLF or bare LF) at the
// current reader position. It reports whether one was consumed; a lone CR
// without a following LF, or a buffer ending mid-CRLF, leaves the reader
// untouched and returns false.
func SkipOneLine(w *buffer.Window) bool {
	entry := w.ReaderOffset()
	if w.ReadableBytes() == 0 {
		return false
	}

	switch w.GetByte(entry) {
	case '\r':
		if w.ReadableBytes() < 2 {
			return false
		}
		if w.GetByte(entry+1) == '\n' {
			w.SetReaderOffset(entry + 2)
			return true
		}
		return false
	case '\n':
		w.SetReaderOffset(entry + 1)
		return true
	default:
		return false
	}
}

func findLineBreak(w *buffer.Window, from int) int {
	for i := from; i < w.WriterOffset(); i++ {
		b := w.GetByte(i)
		if b == '\r' || b == '\n' {
			return i
		}
	}

	return -1
}

// textDecoder decodes raw header bytes into a Go string under some
// charset; nil means the bytes are already the right encoding (UTF-8 or
// plain ASCII) and need no conversion.
type textDecoder interface {
	Bytes(b []byte) ([]byte, error)
}

// ReadLine reads a single text line, excluding its terminator, decoding it
// with dec (nil to copy the raw bytes as-is). It fails with
// ErrNotEnoughData if no full line (including its terminator) is buffered
// yet.
func ReadLine(w *buffer.Window, dec textDecoder) (string, error) {
	entry := w.ReaderOffset()
	pos := findLineBreak(w, entry)
	if pos < 0 {
		w.SetReaderOffset(entry)
		return "", ErrNotEnoughData
	}

	next := pos + 1
	if w.GetByte(pos) == '\r' {
		if next >= w.WriterOffset() {
			w.SetReaderOffset(entry)
			return "", ErrNotEnoughData
		}
		next++
	}

	raw := w.Bytes(entry, pos)
	w.SetReaderOffset(next)

	if dec == nil {
		return string(raw), nil
	}

	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// ReadDelimiter searches for delimiter starting at the reader position and
// consumes it along with its trailing CRLF/LF (or, for the closing form,
// a trailing "--" which tolerates a missing terminator entirely — some
// multipart producers omit it after the final boundary). It reports
// whether the closing form ("--delimiter--") was matched, or
// ErrNotEnoughData if delimiter isn't found yet, or is found but its
// terminator isn't fully buffered. A delimiter followed by anything else
// is reported as ErrMalformedDelimiter.
func ReadDelimiter(w *buffer.Window, delimiter []byte) (closing bool, err error) {
	entry := w.ReaderOffset()

	pos := w.Index(entry, delimiter)
	if pos < 0 {
		w.SetReaderOffset(entry)
		return false, ErrNotEnoughData
	}

	after := pos + len(delimiter)
	if after >= w.WriterOffset() {
		w.SetReaderOffset(entry)
		return false, ErrNotEnoughData
	}

	switch w.GetByte(after) {
	case '\r':
		if after+1 >= w.WriterOffset() {
			w.SetReaderOffset(entry)
			return false, ErrNotEnoughData
		}
		if w.GetByte(after+1) != '\n' {
			w.SetReaderOffset(entry)
			return false, ErrMalformedDelimiter
		}
		w.SetReaderOffset(after + 2)
		return false, nil

	case '\n':
		w.SetReaderOffset(after + 1)
		return false, nil

	case '-':
		if after+1 >= w.WriterOffset() {
			w.SetReaderOffset(entry)
			return false, ErrNotEnoughData
		}
		if w.GetByte(after+1) != '-' {
			w.SetReaderOffset(entry)
			return false, ErrMalformedDelimiter
		}

		closeEnd := after + 2
		if closeEnd >= w.WriterOffset() {
			w.SetReaderOffset(closeEnd)
			return true, nil
		}

		switch w.GetByte(closeEnd) {
		case '\r':
			if closeEnd+1 >= w.WriterOffset() {
				w.SetReaderOffset(entry)
				return false, ErrNotEnoughData
			}
			if w.GetByte(closeEnd+1) == '\n' {
				w.SetReaderOffset(closeEnd + 2)
			} else {
				w.SetReaderOffset(closeEnd)
			}
		case '\n':
			w.SetReaderOffset(closeEnd + 1)
		default:
			// no terminator at all after the closing delimiter; tolerated,
			// some multipart producers send nothing past "--boundary--".
			w.SetReaderOffset(closeEnd)
		}

		return true, nil

	default:
		w.SetReaderOffset(entry)
		return false, ErrMalformedDelimiter
	}
}
