package source

import "errors"

// Document wraps one fetched form document snapshot and its origin. The raw
// payload is the full HTML page; downstream components extract the embedded
// schema and auxiliary markup from it.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: origin is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("source: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source reports where the document came from.
func (d Document) Source() Source { return d.source }

// Raw returns the document payload. Callers must treat it as read-only.
func (d Document) Raw() []byte { return d.raw }
