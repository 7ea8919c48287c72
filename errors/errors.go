// Package errors collects the sentinel errors returned by the decoder and
// its internal components.
package errors

import "errors"

var (
	// ErrLimitExceeded is returned by add() when, after compacting the
	// buffered window, appending the chunk would leave more unread bytes
	// than the configured undecoded limit.
	ErrLimitExceeded = errors.New("multipart: undecoded data limit exceeded")

	// ErrNoDelimiter is returned when enough data is buffered to rule out a
	// delimiter match, yet none was found where one was required.
	ErrNoDelimiter = errors.New("multipart: no multipart delimiter found")

	// ErrInvalidHeader is returned when a header line can't be split into a
	// name and a value.
	ErrInvalidHeader = errors.New("multipart: invalid header")

	// ErrUnknownTransferEncoding is returned when Content-Transfer-Encoding
	// carries a value other than 7bit, 8bit or binary.
	ErrUnknownTransferEncoding = errors.New("multipart: unknown transfer encoding")

	// ErrInvalidCharset is returned when a charset name in a header is
	// syntactically invalid or unsupported.
	ErrInvalidCharset = errors.New("multipart: invalid charset")

	// ErrNestedMixed is returned when a multipart/mixed Content-Type is
	// encountered while already inside a mixed part.
	ErrNestedMixed = errors.New("multipart: mixed multipart found in a previous mixed multipart")

	// ErrMissingBoundary is returned when a multipart/mixed Content-Type
	// lacks a boundary attribute.
	ErrMissingBoundary = errors.New("multipart: no boundary found for multipart/mixed")

	// ErrIllegalState is returned by accessors called outside of the event
	// they're only valid for (e.g. headerValue() not right after HEADER).
	ErrIllegalState = errors.New("multipart: illegal state")
)
