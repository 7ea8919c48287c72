// Package multipart is an incremental, pull-style decoder for HTTP
// multipart/form-data (and nested multipart/mixed) bodies. Callers feed it
// arbitrary byte chunks via Add and pull an event stream via Next; the
// decoder never blocks, never allocates goroutines, and tolerates input
// split at any byte boundary.
package multipart

import (
	"strings"

	"golang.org/x/text/encoding"

	"github.com/indigo-web/multipart/errors"
	"github.com/indigo-web/multipart/internal/buffer"
	"github.com/indigo-web/multipart/internal/header"
	"github.com/indigo-web/multipart/internal/params"
	"github.com/indigo-web/multipart/internal/scan"
	"github.com/indigo-web/multipart/mime"
)

// Decoder parses one multipart body from a stream of chunks. It holds
// exactly one owned input window and at most one pending payload slice at
// any time; it is not safe for concurrent use.
type Decoder struct {
	window *buffer.Window

	boundary      []byte
	mixedBoundary []byte

	headerDecoder *encoding.Decoder

	state          state
	startedContent bool

	headerName  string
	headerValue string
	lastEvent   Event

	partCharset mime.Charset

	pendingContent   []byte
	hasPendingChunk  bool
	dispositionCache *ParsedDisposition

	closed bool
}

// Add appends chunk to the decoder's buffered window. It reports
// ErrLimitExceeded, and drops chunk, if doing so would leave more than the
// configured undecoded limit unread.
func (d *Decoder) Add(chunk []byte) error {
	if d.closed {
		return errors.ErrIllegalState
	}
	if !d.window.Add(chunk) {
		return errors.ErrLimitExceeded
	}
	return nil
}

// Next advances the state machine by as much as the buffered bytes allow,
// returning the next event. None means the decoder needs more bytes before
// it can decide anything further.
func (d *Decoder) Next() (Event, error) {
	if d.closed {
		return None, errors.ErrIllegalState
	}

	for {
		var (
			ev      Event
			err     error
			advance bool
		)

		switch d.state {
		case stateHeaderDelimiter:
			ev, err, advance = d.stepHeaderDelimiter()
		case stateDisposition:
			ev, err, advance = d.stepDisposition()
		case stateContent:
			ev, err, advance = d.stepContent()
		case stateContentDone:
			d.state = stateHeaderDelimiter
			d.lastEvent = FieldComplete
			return FieldComplete, nil
		case statePreEpilogue:
			return None, nil
		}

		if advance {
			continue
		}

		if err == nil {
			d.lastEvent = ev
		}
		return ev, err
	}
}

func (d *Decoder) activeDelimiter() []byte {
	if d.mixedBoundary != nil {
		return d.mixedBoundary
	}
	return d.boundary
}

func (d *Decoder) stepHeaderDelimiter() (Event, error, bool) {
	if err := scan.SkipControlCharacters(d.window); err != nil {
		return None, nil, false
	}

	closing, err := scan.ReadDelimiter(d.window, d.activeDelimiter())
	if err == scan.ErrNotEnoughData {
		return None, nil, false
	}
	if err != nil {
		return None, errors.ErrNoDelimiter, false
	}

	if closing {
		if d.mixedBoundary != nil {
			// only the nested mixed section ends; the outer
			// form-data stream still has its own closing delimiter
			// ahead, possibly more top-level parts before it.
			d.mixedBoundary = nil
			return None, nil, true
		}
		d.state = statePreEpilogue
		return None, nil, true
	}

	d.resetPart()
	d.state = stateDisposition
	return BeginField, nil, false
}

func (d *Decoder) resetPart() {
	d.headerName = ""
	d.headerValue = ""
	d.dispositionCache = nil
	d.partCharset = ""
	d.startedContent = false
}

func (d *Decoder) stepDisposition() (Event, error, bool) {
	if scan.SkipOneLine(d.window) {
		d.state = stateContent
		d.startedContent = false
		return HeadersComplete, nil, false
	}

	line, err := scan.ReadLine(d.window, decoderOrNil(d.headerDecoder))
	if err == scan.ErrNotEnoughData {
		return None, nil, false
	}
	if err != nil {
		return None, err, false
	}

	name, value, err := header.Split(line)
	if err != nil {
		return None, err, false
	}

	if err := d.applyHeader(name, value); err != nil {
		return None, err, false
	}

	d.headerName = name
	d.headerValue = value
	d.dispositionCache = nil
	return Header, nil, false
}

// decoderOrNil adapts a possibly-nil *encoding.Decoder into scan.ReadLine's
// textDecoder interface, keeping the nil genuinely nil rather than a
// non-nil interface wrapping a nil pointer.
func decoderOrNil(dec *encoding.Decoder) interface {
	Bytes(b []byte) ([]byte, error)
} {
	if dec == nil {
		return nil
	}
	return dec
}

func (d *Decoder) stepContent() (Event, error, bool) {
	chunk, done := scan.Content(d.window, d.activeDelimiter(), d.startedContent)

	if len(chunk) == 0 && !done {
		return None, nil, false
	}

	if len(chunk) > 0 {
		d.startedContent = true
		d.pendingContent = chunk
		d.hasPendingChunk = true
	}

	if done {
		d.state = stateContentDone
		if len(chunk) > 0 {
			return Content, nil, false
		}
		return None, nil, true
	}

	return Content, nil, false
}

// applyHeader updates decoder state driven by specific header names, per
// the Content-Transfer-Encoding / Content-Type dispatch rules. All other
// header names pass through without side effects.
func (d *Decoder) applyHeader(name, value string) error {
	switch {
	case strings.EqualFold(name, "Content-Transfer-Encoding"):
		return d.applyTransferEncoding(value)
	case strings.EqualFold(name, "Content-Type"):
		return d.applyContentType(value)
	default:
		return nil
	}
}

func (d *Decoder) applyTransferEncoding(value string) error {
	var charset mime.Charset

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "7bit":
		charset = mime.ASCII
	case "8bit":
		charset = mime.ISO88591
	case "binary":
		// no charset implication
	default:
		return errors.ErrUnknownTransferEncoding
	}

	// preserves an earlier explicit charset choice; only updates the part
	// charset if one was already set.
	if charset != "" && d.partCharset != "" {
		d.partCharset = charset
	}

	return nil
}

func (d *Decoder) applyContentType(value string) error {
	var (
		isMixed     bool
		boundary    string
		hasBoundary bool
		charset     string
		hasCharset  bool
	)

	params.Run(value, params.Visitor{
		Type: func(t string) {
			isMixed = strings.EqualFold(strings.TrimSpace(t), "multipart/mixed")
		},
		Attribute: func(key string) bool {
			lower := strings.ToLower(key)
			return (isMixed && lower == "boundary") || (!isMixed && lower == "charset")
		},
		Value: func(key, v string) {
			switch strings.ToLower(key) {
			case "boundary":
				boundary, hasBoundary = v, true
			case "charset":
				charset, hasCharset = v, true
			}
		},
	})

	if isMixed {
		if d.mixedBoundary != nil {
			return errors.ErrNestedMixed
		}
		if !hasBoundary {
			return errors.ErrMissingBoundary
		}
		d.mixedBoundary = append([]byte("--"), boundary...)
		return nil
	}

	if hasCharset {
		if _, ok := mime.Resolve(charset); !ok {
			return errors.ErrInvalidCharset
		}
		d.partCharset = charset
	}

	return nil
}

// PartCharset returns the charset declared for the current part, either
// via an explicit Content-Type charset attribute or inherited from a
// Content-Transfer-Encoding of 7bit/8bit once one was already set. It
// reports false if no part charset is known; the decoder itself never
// uses this to transform content bytes — identity transfer encoding is
// the only one supported — callers that need the bytes as text use it to
// interpret DecodedContent's output themselves.
func (d *Decoder) PartCharset() (mime.Charset, bool) {
	return d.partCharset, d.partCharset != ""
}

// HeaderName returns the name of the header just emitted via Header. It is
// only valid immediately after a Header event.
func (d *Decoder) HeaderName() (string, error) {
	if d.lastEvent != Header {
		return "", errors.ErrIllegalState
	}
	return d.headerName, nil
}

// HeaderValue returns the value of the header just emitted via Header. It
// is only valid immediately after a Header event.
func (d *Decoder) HeaderValue() (string, error) {
	if d.lastEvent != Header {
		return "", errors.ErrIllegalState
	}
	return d.headerValue, nil
}

// ParsedHeaderValue returns a lazy parser over the last header's value,
// when that header was Content-Disposition; otherwise it returns nil. It
// is only valid immediately after a Header event.
func (d *Decoder) ParsedHeaderValue() (*ParsedDisposition, error) {
	if d.lastEvent != Header {
		return nil, errors.ErrIllegalState
	}
	if !strings.EqualFold(d.headerName, "Content-Disposition") {
		return nil, nil
	}
	if d.dispositionCache == nil {
		d.dispositionCache = newParsedDisposition(d.headerValue)
	}
	return d.dispositionCache, nil
}

// DecodedContent returns the payload chunk just emitted via Content,
// transferring its ownership to the caller. It is only valid immediately
// after a Content event, and only once per event.
func (d *Decoder) DecodedContent() ([]byte, error) {
	if d.lastEvent != Content || !d.hasPendingChunk {
		return nil, errors.ErrIllegalState
	}

	chunk := d.pendingContent
	d.pendingContent = nil
	d.hasPendingChunk = false
	return chunk, nil
}

// Close releases all buffered bytes and any pending payload slice. The
// Decoder is unusable afterward.
func (d *Decoder) Close() error {
	d.window.Release()
	d.pendingContent = nil
	d.hasPendingChunk = false
	d.closed = true
	return nil
}
