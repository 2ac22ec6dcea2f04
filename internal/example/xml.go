package example

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"mapforge/internal/field"
)

// walkXMLDocument walks every element of an XML payload. Leaf elements with
// non-blank text contribute their text at the current path, and every
// attribute contributes at the owning element's path plus the "@" step.
func walkXMLDocument(raw []byte, samples map[string][]string) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}

		if start, ok := tok.(xml.StartElement); ok {
			if err := walkXMLElement(dec, start, start.Name.Local, samples); err != nil {
				return err
			}

			sawRoot = true
		}
	}

	if !sawRoot {
		return fmt.Errorf("no XML elements in payload")
	}

	return nil
}

// walkXMLElement consumes one element and its subtree. path already includes
// the element's own name.
func walkXMLElement(dec *xml.Decoder, start xml.StartElement, path string, samples map[string][]string) error {
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}

		if value := strings.TrimSpace(attr.Value); value != "" {
			admit(samples, field.AttributePath(path, attr.Name.Local), value)
		}
	}

	var (
		text        strings.Builder
		hasChildren bool
	)

	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			hasChildren = true

			childPath := path + "." + t.Name.Local
			if err := walkXMLElement(dec, t, childPath, samples); err != nil {
				return err
			}

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			if !hasChildren {
				if value := strings.TrimSpace(text.String()); value != "" {
					admit(samples, path, value)
				}
			}

			return nil
		}
	}
}
