// Package header splits one raw multipart header line into a name and a
// value. It has no opinion on what either means; that's left to whatever
// dispatches on the name.
package header

import "github.com/indigo-web/multipart/errors"

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func firstNonSpace(s string, from int) int {
	i := from
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func lastNonSpace(s string) int {
	i := len(s)
	for i > 0 && isSpace(s[i-1]) {
		i--
	}
	return i
}

// Split parses line (a single header line with its terminator already
// stripped) into a name and a value. The name runs up to the first ':' or
// whitespace; the value is whatever follows the ':', trimmed of leading
// and trailing whitespace. An empty value, including one made only of
// whitespace, is valid; a line with no ':' that is all whitespace or ends
// in whitespace is reported as ErrInvalidHeader.
func Split(line string) (name, value string, err error) {
	nameStart := firstNonSpace(line, 0)

	nameEnd := nameStart
	for nameEnd < len(line) && line[nameEnd] != ':' && !isSpace(line[nameEnd]) {
		nameEnd++
	}

	colonEnd := nameEnd
	for colonEnd < len(line) {
		if line[colonEnd] == ':' {
			colonEnd++
			break
		}
		colonEnd++
	}

	valueStart := firstNonSpace(line, colonEnd)
	valueEnd := lastNonSpace(line)

	if valueEnd < valueStart {
		// only whitespace follows the ':', which is an empty value
		if colonEnd > 0 && line[colonEnd-1] == ':' {
			return line[nameStart:nameEnd], "", nil
		}
		return "", "", errors.ErrInvalidHeader
	}

	return line[nameStart:nameEnd], line[valueStart:valueEnd], nil
}
