package store

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SourceRefList is the ordered source list of a field mapping. It accepts
// two YAML shapes: a sequence of plain ids (shorthand, order = position) and
// a sequence of {sourceFieldId, orderIndex} records.
type SourceRefList []SourceRef

// UnmarshalYAML implements custom YAML unmarshaling for SourceRefList.
func (l *SourceRefList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		// Single bare id.
		var id int64

		if err := node.Decode(&id); err != nil {
			return err
		}

		*l = SourceRefList{{SourceFieldID: id, OrderIndex: 0}}

		return nil
	}

	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("expected id or sequence of sources, got %v", node.Kind)
	}

	refs := make(SourceRefList, 0, len(node.Content))

	for i, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			var id int64

			if err := item.Decode(&id); err != nil {
				return err
			}

			refs = append(refs, SourceRef{SourceFieldID: id, OrderIndex: i})

		case yaml.MappingNode:
			var ref SourceRef

			if err := item.Decode(&ref); err != nil {
				return err
			}

			refs = append(refs, ref)

		default:
			return fmt.Errorf("expected id or source record in sources list, got %v", item.Kind)
		}
	}

	*l = refs

	return nil
}

// MarshalYAML implements custom YAML marshaling for SourceRefList.
// Always emits the explicit record form so order indexes survive round trips.
func (l SourceRefList) MarshalYAML() (any, error) {
	return []SourceRef(l), nil
}
