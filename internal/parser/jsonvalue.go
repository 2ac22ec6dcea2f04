package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"mapforge/internal/common"
)

// ValueKind classifies a decoded JSON value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// String returns the capitalized kind name used as a naive-mode data type.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindObject:
		return "Object"
	case KindArray:
		return "Array"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Boolean"
	default:
		return common.UnknownStr
	}
}

// Member is one object member in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a JSON value that preserves object member order. The standard
// map-based decoding randomizes member order, which would break the
// determinism guarantee on emitted field nodes.
type Value struct {
	Kind    ValueKind
	Members []Member // object members, document order
	Elems   []*Value // array elements
	Literal string   // scalar literal ("" for null)
}

// Member returns the value of the named object member.
func (v *Value) Member(key string) (*Value, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}

	return nil, false
}

// Has reports whether the object carries the named member.
func (v *Value) Has(key string) bool {
	_, ok := v.Member(key)
	return ok
}

// MemberLiteral returns the scalar literal of the named member, if present.
func (v *Value) MemberLiteral(key string) (string, bool) {
	m, ok := v.Member(key)
	if !ok || m.Kind == KindObject || m.Kind == KindArray || m.Kind == KindNull {
		return "", false
	}

	return m.Literal, true
}

// DecodeOrdered decodes JSON bytes into an order-preserving Value.
func DecodeOrdered(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	// Trailing garbage after the document is malformed input.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after JSON document")
	}

	return v, nil
}

// decodeValue reads one value from the token stream.
func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return decodeFromToken(dec, tok)
}

// decodeFromToken builds a Value from an already-read token.
func decodeFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return &Value{Kind: KindString, Literal: t}, nil
	case json.Number:
		return &Value{Kind: KindNumber, Literal: t.String()}, nil
	case bool:
		if t {
			return &Value{Kind: KindBool, Literal: "true"}, nil
		}

		return &Value{Kind: KindBool, Literal: "false"}, nil
	case nil:
		return &Value{Kind: KindNull}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// decodeObject reads members until the closing brace.
func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := &Value{Kind: KindObject}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}
}

// decodeArray reads elements until the closing bracket.
func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{Kind: KindArray}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}

		elem, err := decodeFromToken(dec, tok)
		if err != nil {
			return nil, err
		}

		arr.Elems = append(arr.Elems, elem)
	}
}
