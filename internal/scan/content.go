package scan

import "github.com/indigo-web/multipart/internal/buffer"

// Content scans buffered bytes for delimiter, returning as much payload as
// can be safely released without risking that the withheld tail turns out
// to be the delimiter itself.
//
// started marks whether this call continues a part already in progress:
// true expects the delimiter to be preceded by a line break (content then
// CRLF then the delimiter), false allows the delimiter to appear with no
// leading break at all (an empty part). done reports whether delimiter was
// found; when it is, chunk excludes the line break that precedes it and
// the reader is left at the end of chunk: on that line break, or on the
// delimiter itself when no line break precedes it. Both stay buffered.
//
// Plain payload bytes are only released up to the last CR or LF seen; that
// line break and everything after it are withheld, and a trailing byte run
// with no CR or LF is always withheld, since it might be the opening bytes
// of the next delimiter once more data arrives.
func Content(w *buffer.Window, delimiter []byte, started bool) (chunk []byte, done bool) {
	start := w.ReaderOffset()
	end := w.WriterOffset()

	j := 0
	if started {
		j = -2
	}

	fieldEnd := start
	found := false

	i := start
	for ; i < end; i++ {
		b := w.GetByte(i)

		if j >= 0 {
			if b == delimiter[j] {
				if j == len(delimiter)-1 {
					found = true
					break
				}
				j++
				continue
			}
			j = -2
		}

		switch b {
		case '\r':
			fieldEnd = i
			j = -1
		case '\n':
			if j == -2 {
				fieldEnd = i
			}
			j = 0
		default:
			j = -2
		}
	}

	if found {
		return w.ReadSplit(fieldEnd - start), true
	}

	n := fieldEnd - start
	if n <= 0 {
		return nil, false
	}

	return w.ReadSplit(n), false
}
