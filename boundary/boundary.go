// Package boundary generates multipart boundary tokens, for callers that
// produce multipart bodies (tests, clients) rather than only decode them.
package boundary

import "github.com/dchest/uniuri"

const randomLength = 30

// Random returns a fresh random boundary token, without the leading "--"
// that marks it on the wire.
func Random() string {
	return uniuri.NewLen(randomLength)
}

// Delimiter prefixes a boundary token with the "--" that precedes it on
// the wire, ahead of the multipart/mixed or multipart/form-data body.
func Delimiter(token string) string {
	return "--" + token
}

// CloseDelimiter prefixes and suffixes a boundary token with "--", as it
// appears terminating a multipart body.
func CloseDelimiter(token string) string {
	return "--" + token + "--"
}
