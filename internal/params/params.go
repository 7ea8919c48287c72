// Package params parses a header value of the form
//
//	type; attr1=value1; attr2="quoted value"; attr3*=utf-8''pct%20encoded
//
// as found in Content-Type and Content-Disposition. It never allocates an
// intermediate map: callers drive parsing with a Visitor and receive
// attributes as the parser encounters them.
package params

import (
	"iter"
	"net/url"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/indigo-web/multipart/mime"
)

// Visitor receives the pieces of a parsed header value as Run walks it.
type Visitor struct {
	// Type, if non-nil, is called once with the text before the first ';'.
	Type func(typ string)
	// Attribute, if non-nil, is called for every attribute key (without
	// its trailing '*', if it had one). Returning true requests the
	// decoded value via Value; returning false skips decoding it.
	Attribute func(key string) bool
	// Value is called with an attribute's decoded value, only for keys
	// Attribute returned true for.
	Value func(key, value string)
	// Extended, if non-nil, decides whether an attribute whose name ends
	// in '*' should be treated as an RFC 5987 extended attribute. Callers
	// that don't care about extended attributes can leave this nil, in
	// which case the trailing '*' is treated as part of a plain token.
	Extended func(key string) bool
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// Walk returns a lazy iterator over every attribute in header, decoded the
// same way Run's Value callback would decode it (extended attributes
// included, under their bare name with the trailing '*' stripped).
// Malformed attributes end the walk early, same as Run.
func Walk(header string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		ok := true

		Run(header, Visitor{
			Attribute: func(string) bool { return true },
			Extended:  func(string) bool { return true },
			Value: func(key, value string) {
				if ok {
					ok = yield(key, value)
				}
			},
		})
	}
}

// Run parses header and drives v. Parsing stops at the first malformed
// parameter rather than erroring; any attributes already visited remain
// valid. An extended value whose charset or percent-encoding can't be
// decoded is skipped without a Value call, and parsing goes on after it.
func Run(header string, v Visitor) {
	typeEnd := strings.IndexByte(header, ';')
	if typeEnd < 0 {
		if v.Type != nil {
			v.Type(header)
		}
		return
	}

	if v.Type != nil {
		v.Type(header[:typeEnd])
	}

	pos := typeEnd + 1
	for pos < len(header) {
		for pos < len(header) && isSpace(header[pos]) {
			pos++
		}

		eq := strings.IndexByte(header[pos:], '=')
		if eq < 0 {
			return
		}
		eq += pos

		attribute := header[pos:eq]
		extended := strings.HasSuffix(attribute, "*") && v.Extended != nil && v.Extended(strings.TrimSuffix(attribute, "*"))

		key := attribute
		if extended {
			key = attribute[:len(attribute)-1]
		}

		wantValue := v.Attribute != nil && v.Attribute(key)

		value, valueEnd, ok := parseValue(header, eq+1, extended, wantValue)
		if !ok && valueEnd == 0 {
			return
		}

		if ok && wantValue && v.Value != nil {
			v.Value(key, value)
		}

		pos = valueEnd + 1
	}
}

// parseValue parses the value starting at start, returning the decoded
// value (when want is true), the exclusive end of the value (before the
// separating ';', if any), and whether a value was produced. ok == false
// with end == 0 means parsing cannot continue; ok == false with a non-zero
// end means only this attribute is skipped and parsing resumes after end.
func parseValue(header string, start int, extended, want bool) (value string, end int, ok bool) {
	switch {
	case extended:
		return parseExtendedValue(header, start, want)
	case start < len(header) && header[start] == '"':
		return parseQuotedValue(header, start, want)
	default:
		return parseTokenValue(header, start, want)
	}
}

func parseExtendedValue(header string, start int, want bool) (string, int, bool) {
	firstQuote := strings.IndexByte(header[start:], '\'')
	if firstQuote < 0 {
		return "", 0, false
	}
	firstQuote += start

	secondQuote := strings.IndexByte(header[firstQuote+1:], '\'')
	if secondQuote < 0 {
		return "", 0, false
	}
	secondQuote += firstQuote + 1

	end := len(header)
	if semi := strings.IndexByte(header[secondQuote+1:], ';'); semi >= 0 {
		end = secondQuote + 1 + semi
	}

	if !want {
		return "", end, true
	}

	charset := header[start:firstQuote]
	if charset == "" {
		charset = mime.UTF8
	}

	raw, err := url.PathUnescape(header[secondQuote+1 : end])
	if err != nil {
		return "", end, false
	}

	decoded, ok := mime.Decode(charset, uf.S2B(raw))
	if !ok {
		return "", end, false
	}

	return decoded, end, true
}

// parseQuotedValue parses a "..."-delimited value starting at the opening
// quote. A value missing its closing quote is malformed: parsing stops
// with ok == false and no value is produced for this attribute, though
// attributes already visited stay valid.
func parseQuotedValue(header string, start int, want bool) (value string, end int, ok bool) {
	var b strings.Builder
	i := start + 1
	closed := false

	for i < len(header) {
		c := header[i]

		if c == '\\' && i+1 < len(header) {
			if want {
				b.WriteByte(header[i+1])
			}
			i += 2
			continue
		}
		if c == '"' {
			closed = true
			i++
			break
		}
		if want {
			b.WriteByte(c)
		}
		i++
	}

	if !closed {
		return "", 0, false
	}

	end = len(header)
	if semi := strings.IndexByte(header[i:], ';'); semi >= 0 {
		end = i + semi
	}

	if want {
		return b.String(), end, true
	}
	return "", end, true
}

func parseTokenValue(header string, start int, want bool) (string, int, bool) {
	end := len(header)
	if semi := strings.IndexByte(header[start:], ';'); semi >= 0 {
		end = start + semi
	}

	if !want {
		return "", end, true
	}
	return header[start:end], end, true
}
