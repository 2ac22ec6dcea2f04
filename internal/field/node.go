// Package field defines the uniform field-tree model shared by the schema
// parsers, the example extractor, the matching engine, and the generators.
// One FieldNode describes one structural position inside a schema; trees are
// reassembled on demand from the flat node collection.
package field

// FieldNode is one structural position inside a parsed schema.
//
// Nodes are created in bulk by one parser run and are immutable afterwards,
// except for example enrichment performed once by the tree builder before the
// tree is exposed to any reader.
type FieldNode struct {
	// ID is unique within the owning schema, assigned sequentially by the parser.
	ID int64 `yaml:"id"`

	// ParentID references the enclosing node; nil only for roots.
	ParentID *int64 `yaml:"parentId,omitempty"`

	// Path is the structural address built from ancestor names.
	// Array steps carry the [*] marker, attribute steps the .@ prefix.
	// Unique within one schema tree, not globally.
	Path string `yaml:"path"`

	// Name is the declared field name.
	Name string `yaml:"name"`

	// DataType is taken verbatim from the schema; it is not a closed enum.
	DataType string `yaml:"dataType"`

	// Length holds a max-length restriction when the schema declares one.
	Length *int `yaml:"length,omitempty"`

	IsArray     bool `yaml:"isArray"`
	IsMandatory bool `yaml:"isMandatory"`

	Description *string `yaml:"description,omitempty"`

	// ExampleValue is a single representative literal, if any.
	ExampleValue *string `yaml:"exampleValue,omitempty"`

	// SampleValues holds up to three distinct extracted literals in discovery order.
	SampleValues []string `yaml:"sampleValues,omitempty"`

	// SchemaAttributes is an opaque serialized side-channel for
	// format-specific facets (e.g. XSD min/max occurs).
	SchemaAttributes string `yaml:"schemaAttributes,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n *FieldNode) IsRoot() bool {
	return n.ParentID == nil
}

// TreeNode is the navigable view of a FieldNode with resolved children.
// Tree nodes are value copies: enriching a TreeNode never mutates the arena.
type TreeNode struct {
	FieldNode

	Children []*TreeNode
}

// IsLeaf reports whether the node has no children in its tree.
func (t *TreeNode) IsLeaf() bool {
	return len(t.Children) == 0
}

// Walk visits t and every descendant in depth-first, document order.
func (t *TreeNode) Walk(visit func(*TreeNode)) {
	visit(t)

	for _, child := range t.Children {
		child.Walk(visit)
	}
}

// Flatten returns every node of the given trees in depth-first, document order.
func Flatten(roots []*TreeNode) []*TreeNode {
	var all []*TreeNode

	for _, root := range roots {
		root.Walk(func(t *TreeNode) {
			all = append(all, t)
		})
	}

	return all
}
