// Package mime holds the small set of MIME/charset concerns the decoder
// needs: a handful of short names for the common cases, falling back to
// the WHATWG encoding label index (golang.org/x/text/encoding/htmlindex)
// for everything else. Names outside that index, UTF32 among them, do not
// resolve.
package mime

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Charset is a charset name, as it appears in a Content-Type parameter.
type Charset = string

const (
	UTF8     Charset = "utf8"
	UTF16    Charset = "utf16"
	UTF32    Charset = "utf32"
	ASCII    Charset = "ascii"
	CP1251   Charset = "cp1251"
	CP1252   Charset = "cp1252"
	ISO88591 Charset = "iso-8859-1"
	// feel free to add more widespread charsets!
)

// aliases maps the short names above onto their IANA equivalents.
var aliases = map[string]string{
	UTF8:     "utf-8",
	UTF16:    "utf-16",
	UTF32:    "utf-32",
	ASCII:    "us-ascii",
	CP1251:   "windows-1251",
	CP1252:   "windows-1252",
	ISO88591: "iso-8859-1",
}

// Resolve validates a charset name and returns its text encoding. Unknown
// or malformed names report ok == false rather than an error, as callers
// treat an invalid charset as "skip this attribute" or as their own
// InvalidCharset condition.
func Resolve(name string) (enc encoding.Encoding, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) == 0 {
		return nil, false
	}

	if iana, found := aliases[lower]; found {
		lower = iana
	}

	enc, err := htmlindex.Get(lower)
	if err != nil {
		return nil, false
	}

	return enc, true
}

// Decode interprets b as bytes encoded under the named charset and returns
// their UTF-8 string representation.
func Decode(name string, b []byte) (string, bool) {
	enc, ok := Resolve(name)
	if !ok {
		return "", false
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}

	return string(out), true
}
