package multipart

import (
	"golang.org/x/text/encoding"

	"github.com/indigo-web/multipart/errors"
	"github.com/indigo-web/multipart/internal/buffer"
	"github.com/indigo-web/multipart/mime"
)

// DefaultUndecodedLimit is the undecoded-window cap a Builder starts with.
const DefaultUndecodedLimit = 4096

const initialWindowSize = 512

// Builder constructs a Decoder, chaining options the way the rest of the
// stack configures its components.
type Builder struct {
	boundary       []byte
	undecodedLimit int
	charset        mime.Charset
}

// ForMultipartBoundary starts a Builder for a top-level multipart body
// delimited by token (supplied without its leading "--").
func ForMultipartBoundary(token string) *Builder {
	return &Builder{
		boundary:       append([]byte("--"), token...),
		undecodedLimit: DefaultUndecodedLimit,
	}
}

// Charset sets the default charset headers are decoded under. Left unset,
// header lines are treated as already being valid UTF-8/ASCII text.
func (b *Builder) Charset(charset mime.Charset) *Builder {
	b.charset = charset
	return b
}

// UndecodedLimit overrides the maximum number of unread bytes the Decoder
// will hold across Add calls.
func (b *Builder) UndecodedLimit(n int) *Builder {
	b.undecodedLimit = n
	return b
}

// Build validates the accumulated options and returns a ready Decoder.
func (b *Builder) Build() (*Decoder, error) {
	var dec *encoding.Decoder

	if b.charset != "" {
		enc, ok := mime.Resolve(b.charset)
		if !ok {
			return nil, errors.ErrInvalidCharset
		}
		dec = enc.NewDecoder()
	}

	return &Decoder{
		window:        buffer.New(initialWindowSize, b.undecodedLimit),
		boundary:      b.boundary,
		headerDecoder: dec,
	}, nil
}
