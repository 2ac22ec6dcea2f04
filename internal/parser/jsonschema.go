package parser

import (
	"mapforge/internal/apperr"
	"mapforge/internal/field"
)

// jsonSchemaParser handles formal JSON-Schema documents as well as raw
// example JSON instances with no schema envelope.
//
// Shape detection is an ordered decision table evaluated once per object
// node, not incidental dispatch:
//
//  1. "properties" present        -> schema-shaped branch, recurse per property
//  2. "items" present             -> array schema, descend into the item schema
//                                    under an array-wildcard path
//  3. "type" only                 -> schema-shaped leaf, stop descending
//  4. otherwise                   -> naive raw-instance mode: every non-$ key
//                                    becomes a field typed by its value kind
type jsonSchemaParser struct{}

// Format returns FormatJSONSchema.
func (p *jsonSchemaParser) Format() Format {
	return FormatJSONSchema
}

// Parse converts the document into field nodes in document order.
// The document root is not emitted as a node: children of the root use bare
// property names, so a flat schema with N properties yields exactly N nodes.
func (p *jsonSchemaParser) Parse(data []byte) ([]field.FieldNode, error) {
	root, err := DecodeOrdered(data)
	if err != nil {
		return nil, apperr.Parse("malformed JSON document", err)
	}

	w := &jsonWalker{}

	switch root.Kind {
	case KindObject:
		w.descend(root, nil, field.JSONRoot)
	case KindArray:
		if len(root.Elems) > 0 && root.Elems[0].Kind == KindObject {
			w.descend(root.Elems[0], nil, field.ArrayPath(field.JSONRoot))
		}
	default:
		// A bare scalar document declares zero fields.
	}

	return w.nodes, nil
}

// jsonWalker accumulates emitted nodes during one parse run.
type jsonWalker struct {
	seq   idSequence
	nodes []field.FieldNode
}

// add assigns the next id and appends the node, returning its id.
func (w *jsonWalker) add(n field.FieldNode) int64 {
	n.ID = w.seq.Next()
	w.nodes = append(w.nodes, n)

	return n.ID
}

// descend applies the shape-detection table to one object node and emits
// the fields found below parentPath.
func (w *jsonWalker) descend(obj *Value, parentID *int64, parentPath string) {
	if obj == nil || obj.Kind != KindObject {
		return
	}

	switch {
	case obj.Has("properties"):
		props, _ := obj.Member("properties")
		if props.Kind != KindObject {
			return
		}

		for _, m := range props.Members {
			w.emitProperty(m.Key, m.Value, parentID, parentPath)
		}

	case obj.Has("items"):
		// Repeat here: the item schema's fields live under the wildcard path.
		w.descend(itemSchema(obj), parentID, field.ArrayPath(parentPath))

	case obj.Has("type"):
		// Schema-shaped leaf; the owning field was emitted by the caller.

	default:
		for _, m := range obj.Members {
			if len(m.Key) > 0 && m.Key[0] == '$' {
				continue
			}

			w.emitNaive(m.Key, m.Value, parentID, parentPath)
		}
	}
}

// emitProperty emits one node for a property of a schema-shaped object and
// descends into its schema.
func (w *jsonWalker) emitProperty(name string, schema *Value, parentID *int64, parentPath string) {
	path := field.ChildPath(parentPath, name)

	if schema == nil || schema.Kind != KindObject {
		// Property value is not schema-shaped; fall back to the naive rule.
		w.emitNaive(name, schema, parentID, parentPath)

		return
	}

	node := field.FieldNode{
		ParentID: parentID,
		Path:     path,
		Name:     name,
		DataType: schemaDataType(schema),
		IsArray:  schema.Has("items"),
	}

	// Example priority: explicit example first, then declared default.
	if lit, ok := schema.MemberLiteral("example"); ok {
		node.ExampleValue = &lit
	} else if lit, ok := schema.MemberLiteral("default"); ok {
		node.ExampleValue = &lit
	}

	if desc, ok := schema.MemberLiteral("description"); ok {
		node.Description = &desc
	}

	id := w.add(node)
	w.descend(schema, &id, path)
}

// emitNaive emits one node for a raw-instance member and recurses into
// composite values, re-applying the decision table per object node.
func (w *jsonWalker) emitNaive(name string, val *Value, parentID *int64, parentPath string) {
	path := field.ChildPath(parentPath, name)

	kind := KindNull
	if val != nil {
		kind = val.Kind
	}

	node := field.FieldNode{
		ParentID: parentID,
		Path:     path,
		Name:     name,
		DataType: kind.String(),
		IsArray:  kind == KindArray,
	}

	id := w.add(node)

	switch kind {
	case KindObject:
		w.descend(val, &id, path)
	case KindArray:
		if len(val.Elems) > 0 && val.Elems[0].Kind == KindObject {
			w.descend(val.Elems[0], &id, field.ArrayPath(path))
		}
	default:
	}
}

// schemaDataType resolves the declared type of a schema-shaped node,
// defaulting composites to "Object".
func schemaDataType(schema *Value) string {
	if lit, ok := schema.MemberLiteral("type"); ok {
		return lit
	}

	return "Object"
}

// itemSchema returns the schema describing array items, unwrapping the
// tuple form to its first entry.
func itemSchema(obj *Value) *Value {
	items, ok := obj.Member("items")
	if !ok {
		return nil
	}

	if items.Kind == KindArray {
		if len(items.Elems) == 0 {
			return nil
		}

		return items.Elems[0]
	}

	return items
}
