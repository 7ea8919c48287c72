package multipart

import (
	"iter"

	"github.com/indigo-web/multipart/internal/params"
)

// ParsedDisposition lazily parses a Content-Disposition header value,
// exposing name and filename directly plus every attribute via Params.
// Parsing happens once, on first access; repeated calls return the same
// result.
type ParsedDisposition struct {
	raw    string
	parsed bool

	name     string
	fileName string
}

func newParsedDisposition(raw string) *ParsedDisposition {
	return &ParsedDisposition{raw: raw}
}

func (p *ParsedDisposition) parse() {
	if p.parsed {
		return
	}
	p.parsed = true

	params.Run(p.raw, params.Visitor{
		Attribute: func(key string) bool {
			return key == "filename" || key == "name"
		},
		Value: func(key, value string) {
			switch key {
			case "filename":
				p.fileName = value
			case "name":
				p.name = value
			}
		},
		Extended: func(key string) bool {
			return key == "filename" || key == "name"
		},
	})
}

// Name returns the "name" attribute, or "" if absent.
func (p *ParsedDisposition) Name() string {
	p.parse()
	return p.name
}

// FileName returns the "filename" attribute, or "" if absent.
func (p *ParsedDisposition) FileName() string {
	p.parse()
	return p.fileName
}

// Params returns a lazy iterator over every attribute of the raw
// Content-Disposition value, decoded (quoted/extended) the same way Name
// and FileName are, for callers that need attributes beyond those two.
func (p *ParsedDisposition) Params() iter.Seq2[string, string] {
	return params.Walk(p.raw)
}
