// Package parser converts raw schema documents into the uniform flat
// field-node collection. Each supported format implements the same Parse
// contract; the registry selects a variant by declared format, so no shared
// state or hierarchy exists between parsers.
package parser

import (
	"strings"

	"mapforge/internal/apperr"
	"mapforge/internal/common"
	"mapforge/internal/field"
)

// Format identifies a supported schema document format.
type Format int

const (
	// FormatJSONSchema covers formal JSON-Schema documents and raw example
	// JSON instances (the parser auto-detects the shape per object node).
	FormatJSONSchema Format = iota
	// FormatXSD covers XML Schema documents.
	FormatXSD
)

// String returns the canonical format name.
func (f Format) String() string {
	switch f {
	case FormatJSONSchema:
		return "jsonschema"
	case FormatXSD:
		return "xsd"
	default:
		return common.UnknownStr
	}
}

// ParseFormat resolves a format name; it accepts the common aliases used on
// ingest ("json", "json-schema", "xsd", "xml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "jsonschema", "json-schema":
		return FormatJSONSchema, nil
	case "xsd", "xml":
		return FormatXSD, nil
	default:
		return 0, apperr.Validationf("unsupported schema format %q", s)
	}
}

// Parser converts one schema document into flat field nodes connected by
// parent ids. A document declaring zero fields yields an empty list, not an
// error. Any malformed or format-mismatched input fails with a parse error
// and no nodes.
type Parser interface {
	// Format returns the format this parser accepts.
	Format() Format

	// Parse converts the document into field nodes in document order.
	Parse(data []byte) ([]field.FieldNode, error)
}

// registry is the strategy table keyed by format.
var registry = map[Format]Parser{
	FormatJSONSchema: &jsonSchemaParser{},
	FormatXSD:        &xsdParser{},
}

// ForFormat returns the parser registered for the given format.
func ForFormat(f Format) (Parser, error) {
	p, ok := registry[f]
	if !ok {
		return nil, apperr.Validationf("no parser registered for format %q", f)
	}

	return p, nil
}

// idSequence hands out the per-schema sequential node ids.
type idSequence struct {
	next int64
}

// Next returns the next id, starting at 1.
func (s *idSequence) Next() int64 {
	s.next++
	return s.next
}
